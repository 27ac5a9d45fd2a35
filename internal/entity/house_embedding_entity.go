package entity

import (
	"time"

	"github.com/google/uuid"
)

type HouseEmbedding struct {
	Id             uuid.UUID
	HouseId        uuid.UUID
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
