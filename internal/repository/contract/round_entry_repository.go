package contract

import (
	"context"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoundEntryRepository interface {
	// CreateBulk places houses into a round. The unique index on
	// (project_id, house_id) rejects re-placement at the database level.
	CreateBulk(ctx context.Context, entries []*entity.RoundEntry) error
	Update(ctx context.Context, entry *entity.RoundEntry) error
	DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoundEntry, error)
	FindByProjectAndRound(ctx context.Context, projectId uuid.UUID, round int) ([]*entity.RoundEntry, error)
	FindAllByProject(ctx context.Context, projectId uuid.UUID) ([]*entity.RoundEntry, error)
	// FindPlacedHouseIds returns the subset of houseIds that already have an
	// entry in the project, any round. Used to fail fast on contract breaches.
	FindPlacedHouseIds(ctx context.Context, projectId uuid.UUID, houseIds []uuid.UUID) ([]uuid.UUID, error)
}
