package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoundEntry ties a house to the round it was offered in. Created at
// placement with an unset rating; mutated exactly once when the client
// submits ratings. Never deleted individually.
type RoundEntry struct {
	Id        uuid.UUID
	ProjectId uuid.UUID
	HouseId   uuid.UUID
	Round     int
	Rating    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Rated reports whether the client has submitted a rating for this entry.
func (e *RoundEntry) Rated() bool {
	return e.Rating != ""
}
