package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id           uuid.UUID
	Name         string
	Requirements string
	Profile      string
	CurrentRound int
	Completed    bool
	// AgentEmail receives round-ready notifications. Optional.
	AgentEmail string
	// ExternalId correlates a project with the CRM inquiry it was created
	// from. Empty for manually created projects.
	ExternalId string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
