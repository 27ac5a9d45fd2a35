package contract

import (
	"context"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/repository/specification"

	"github.com/google/uuid"
)

type HouseRepository interface {
	Create(ctx context.Context, house *entity.House) error
	CreateBulk(ctx context.Context, houses []*entity.House) error
	Update(ctx context.Context, house *entity.House) error
	DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.House, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.House, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindUnplaced returns the project's houses with no round entry, reflecting
	// the ledger at call time.
	FindUnplaced(ctx context.Context, projectId uuid.UUID) ([]*entity.House, error)
	// CountDistinctSources counts unique source documents per project, used by
	// the Notion mirror to report deduplicated property counts.
	CountDistinctSources(ctx context.Context, projectId uuid.UUID) (int64, error)
}
