package mapper

import (
	"time"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type HouseEmbeddingMapper struct{}

func NewHouseEmbeddingMapper() *HouseEmbeddingMapper {
	return &HouseEmbeddingMapper{}
}

func (m *HouseEmbeddingMapper) ToEntity(e *model.HouseEmbedding) *entity.HouseEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.HouseEmbedding{
		Id:             e.Id,
		HouseId:        e.HouseId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *HouseEmbeddingMapper) ToModel(e *entity.HouseEmbedding) *model.HouseEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.HouseEmbedding{
		Id:             e.Id,
		HouseId:        e.HouseId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
