package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Inquiry struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalId   string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	CustomerName string         `gorm:"type:varchar(255)"`
	Email        string         `gorm:"type:varchar(255)"`
	Requirements string         `gorm:"type:text"`
	RawPayload   datatypes.JSON `gorm:"type:jsonb"`
	ProjectId    *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
