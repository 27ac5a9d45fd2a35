package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Requirements string         `gorm:"type:text"`
	Profile      string         `gorm:"type:text"`
	CurrentRound int            `gorm:"not null;default:0"`
	Completed    bool           `gorm:"not null;default:false"`
	AgentEmail   string         `gorm:"type:varchar(255)"`
	ExternalId   string         `gorm:"type:varchar(255);index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Project) TableName() string {
	return "projects"
}
