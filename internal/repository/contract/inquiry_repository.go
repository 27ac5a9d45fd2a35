package contract

import (
	"context"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/repository/specification"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.Inquiry) error
	Update(ctx context.Context, inquiry *entity.Inquiry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Inquiry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Inquiry, error)
}
