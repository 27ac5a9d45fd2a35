package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type InquiryInput struct {
	ExternalId   string          `json:"external_id" validate:"required"`
	CustomerName string          `json:"customer_name" validate:"required"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Requirements string          `json:"requirements"`
	RawPayload   json.RawMessage `json:"raw_payload"`
}

type ImportInquiriesRequest struct {
	Inquiries []InquiryInput `json:"inquiries" validate:"required,min=1,dive"`
}

type ImportInquiriesResponse struct {
	Imported   int         `json:"imported"`
	Duplicates int         `json:"duplicates"`
	ProjectIds []uuid.UUID `json:"project_ids"`
}
