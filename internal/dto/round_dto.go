package dto

import (
	"github.com/google/uuid"
)

// RoundHouse is one offered house as the rating UI sees it: the page text
// plus whatever rating the client already submitted.
type RoundHouse struct {
	HouseId    uuid.UUID `json:"house_id"`
	SourceName string    `json:"source_name"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary,omitempty"`
	Rating     string    `json:"rating,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

type RoundResponse struct {
	ProjectId uuid.UUID    `json:"project_id"`
	Round     int          `json:"round"`
	Completed bool         `json:"completed"`
	Houses    []RoundHouse `json:"houses"`
}

type RatingInput struct {
	HouseId uuid.UUID `json:"house_id" validate:"required"`
	Rating  string    `json:"rating" validate:"required,oneof=interested neutral not_interested"`
	Notes   string    `json:"notes"`
}

// SubmitRatingsRequest carries the full rating sheet for the current round.
// Partial sheets are rejected: advancing requires every offered house rated.
type SubmitRatingsRequest struct {
	ProjectId uuid.UUID
	Ratings   []RatingInput `json:"ratings" validate:"required,min=1,dive"`
}
