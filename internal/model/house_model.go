package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type House struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	SourceName string         `gorm:"type:varchar(512);not null"`
	Content    string         `gorm:"type:text"`
	Summary    string         `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (House) TableName() string {
	return "houses"
}
