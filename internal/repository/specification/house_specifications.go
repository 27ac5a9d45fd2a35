package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByProjectID filters any project-owned table by project_id.
type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

// ByRound filters round entries by round number.
type ByRound struct {
	Round int
}

func (s ByRound) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("round = ?", s.Round)
}

// HouseNotPlaced keeps only houses with no round entry in their project,
// i.e. the unplaced pool every candidate selection draws from.
type HouseNotPlaced struct {
	ProjectID uuid.UUID
}

func (s HouseNotPlaced) Apply(db *gorm.DB) *gorm.DB {
	subQuery := db.Session(&gorm.Session{NewDB: true}).
		Table("round_entries").
		Select("house_id").
		Where("project_id = ?", s.ProjectID)
	return db.Where("houses.id NOT IN (?)", subQuery)
}

// ByExternalID filters inquiries or projects by the CRM correlation id.
type ByExternalID struct {
	ExternalID string
}

func (s ByExternalID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("external_id = ?", s.ExternalID)
}
