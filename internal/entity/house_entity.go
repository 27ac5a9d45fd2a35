package entity

import (
	"time"

	"github.com/google/uuid"
)

// House is one recommendable unit, derived from a single page of an ingested
// property document. Immutable after creation except for Summary.
type House struct {
	Id         uuid.UUID
	ProjectId  uuid.UUID
	SourceName string
	Content    string
	Summary    string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
