package mapper

import (
	"time"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/model"

	"gorm.io/gorm"
)

type HouseMapper struct{}

func NewHouseMapper() *HouseMapper {
	return &HouseMapper{}
}

func (m *HouseMapper) ToEntity(h *model.House) *entity.House {
	if h == nil {
		return nil
	}

	var deletedAt *time.Time
	if h.DeletedAt.Valid {
		t := h.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !h.UpdatedAt.IsZero() {
		t := h.UpdatedAt
		updatedAt = &t
	}

	return &entity.House{
		Id:         h.Id,
		ProjectId:  h.ProjectId,
		SourceName: h.SourceName,
		Content:    h.Content,
		Summary:    h.Summary,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  h.DeletedAt.Valid,
	}
}

func (m *HouseMapper) ToModel(h *entity.House) *model.House {
	if h == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if h.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *h.DeletedAt, Valid: true}
	} else if h.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if h.UpdatedAt != nil {
		updatedAt = *h.UpdatedAt
	}

	return &model.House{
		Id:         h.Id,
		ProjectId:  h.ProjectId,
		SourceName: h.SourceName,
		Content:    h.Content,
		Summary:    h.Summary,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *HouseMapper) ToEntities(houses []*model.House) []*entity.House {
	entities := make([]*entity.House, len(houses))
	for i, h := range houses {
		entities[i] = m.ToEntity(h)
	}
	return entities
}

func (m *HouseMapper) ToModels(houses []*entity.House) []*model.House {
	models := make([]*model.House, len(houses))
	for i, h := range houses {
		models[i] = m.ToModel(h)
	}
	return models
}
