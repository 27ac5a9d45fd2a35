package contract

import (
	"context"

	"ai-homematch-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredHouse is a house id ranked by vector similarity (1.0 = identical).
type ScoredHouse struct {
	HouseId    uuid.UUID
	Similarity float64
}

type HouseEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.HouseEmbedding) error
	DeleteByHouseId(ctx context.Context, houseId uuid.UUID) error
	DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error
	FindByHouseIds(ctx context.Context, houseIds []uuid.UUID) ([]*entity.HouseEmbedding, error)
	// SearchSimilarHouses ranks the project's houses by cosine similarity to
	// the query vector, aggregated to the best-matching chunk per house,
	// skipping excluded (already placed) houses.
	SearchSimilarHouses(ctx context.Context, projectId uuid.UUID, query []float32, limit int, excludeIds []uuid.UUID) ([]*ScoredHouse, error)
}
