package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name         string `json:"name" validate:"required"`
	Requirements string `json:"requirements"`
	AgentEmail   string `json:"agent_email" validate:"omitempty,email"`
}

type CreateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowProjectResponse struct {
	Id           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Requirements string     `json:"requirements"`
	Profile      string     `json:"profile"`
	CurrentRound int        `json:"current_round"`
	Completed    bool       `json:"completed"`
	AgentEmail   string     `json:"agent_email"`
	HouseCount   int64      `json:"house_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type ListProjectItem struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CurrentRound int       `json:"current_round"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateProjectRequest struct {
	Id           uuid.UUID
	Name         string `json:"name" validate:"required"`
	Requirements string `json:"requirements"`
	AgentEmail   string `json:"agent_email" validate:"omitempty,email"`
}

type UpdateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}
