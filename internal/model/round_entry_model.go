package model

import (
	"time"

	"github.com/google/uuid"
)

// RoundEntry rows are append-only per project; the unique index on
// (project_id, house_id) is the database-level backstop for the
// "no house is ever re-offered" invariant.
type RoundEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_round_entries_project_house"`
	HouseId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_round_entries_project_house"`
	Round     int       `gorm:"not null;index"`
	Rating    string    `gorm:"type:varchar(32);not null;default:''"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RoundEntry) TableName() string {
	return "round_entries"
}
