package mapper

import (
	"time"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/model"
)

type RoundEntryMapper struct{}

func NewRoundEntryMapper() *RoundEntryMapper {
	return &RoundEntryMapper{}
}

func (m *RoundEntryMapper) ToEntity(e *model.RoundEntry) *entity.RoundEntry {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.RoundEntry{
		Id:        e.Id,
		ProjectId: e.ProjectId,
		HouseId:   e.HouseId,
		Round:     e.Round,
		Rating:    e.Rating,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RoundEntryMapper) ToModel(e *entity.RoundEntry) *model.RoundEntry {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.RoundEntry{
		Id:        e.Id,
		ProjectId: e.ProjectId,
		HouseId:   e.HouseId,
		Round:     e.Round,
		Rating:    e.Rating,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RoundEntryMapper) ToEntities(entries []*model.RoundEntry) []*entity.RoundEntry {
	entities := make([]*entity.RoundEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *RoundEntryMapper) ToModels(entries []*entity.RoundEntry) []*model.RoundEntry {
	models := make([]*model.RoundEntry, len(entries))
	for i, e := range entries {
		models[i] = m.ToModel(e)
	}
	return models
}
