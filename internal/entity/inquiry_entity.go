package entity

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a customer inquiry imported from the external CRM (SUUMO JDS).
// ExternalId is the CRM-side identifier and the dedup key for imports.
type Inquiry struct {
	Id           uuid.UUID
	ExternalId   string
	CustomerName string
	Email        string
	Requirements string
	// RawPayload keeps the scraped record as-is for auditing field mapping.
	RawPayload []byte
	ProjectId  *uuid.UUID
	CreatedAt  time.Time
}
