package mapper

import (
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/model"

	"gorm.io/datatypes"
)

type InquiryMapper struct{}

func NewInquiryMapper() *InquiryMapper {
	return &InquiryMapper{}
}

func (m *InquiryMapper) ToEntity(i *model.Inquiry) *entity.Inquiry {
	if i == nil {
		return nil
	}

	return &entity.Inquiry{
		Id:           i.Id,
		ExternalId:   i.ExternalId,
		CustomerName: i.CustomerName,
		Email:        i.Email,
		Requirements: i.Requirements,
		RawPayload:   []byte(i.RawPayload),
		ProjectId:    i.ProjectId,
		CreatedAt:    i.CreatedAt,
	}
}

func (m *InquiryMapper) ToModel(i *entity.Inquiry) *model.Inquiry {
	if i == nil {
		return nil
	}

	return &model.Inquiry{
		Id:           i.Id,
		ExternalId:   i.ExternalId,
		CustomerName: i.CustomerName,
		Email:        i.Email,
		Requirements: i.Requirements,
		RawPayload:   datatypes.JSON(i.RawPayload),
		ProjectId:    i.ProjectId,
		CreatedAt:    i.CreatedAt,
	}
}

func (m *InquiryMapper) ToEntities(inquiries []*model.Inquiry) []*entity.Inquiry {
	entities := make([]*entity.Inquiry, len(inquiries))
	for i, q := range inquiries {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
