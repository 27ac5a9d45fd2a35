package dto

import (
	"github.com/google/uuid"
)

// IngestDocumentRequest carries one extracted property document. Callers send
// either Pages (already page-split) or Text (raw extraction output with
// form-feed page breaks, split server-side); every non-blank page becomes a
// house.
type IngestDocumentRequest struct {
	ProjectId  uuid.UUID
	SourceName string   `json:"source_name" validate:"required"`
	Pages      []string `json:"pages" validate:"required_without=Text"`
	Text       string   `json:"text" validate:"required_without=Pages"`
}

// PublishEmbedHouseMessage is the queue payload that triggers (re)embedding
// of one house's page text.
type PublishEmbedHouseMessage struct {
	HouseId uuid.UUID `json:"house_id"`
}

type IngestDocumentResponse struct {
	SourceName string      `json:"source_name"`
	HouseIds   []uuid.UUID `json:"house_ids"`
	Skipped    int         `json:"skipped"`
}
