package implementation

import (
	"context"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/mapper"
	"ai-homematch-be/internal/model"
	"ai-homematch-be/internal/repository/contract"
	"ai-homematch-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoundEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoundEntryMapper
}

func NewRoundEntryRepository(db *gorm.DB) contract.RoundEntryRepository {
	return &RoundEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoundEntryMapper(),
	}
}

func (r *RoundEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RoundEntryRepositoryImpl) CreateBulk(ctx context.Context, entries []*entity.RoundEntry) error {
	if len(entries) == 0 {
		return nil
	}
	models := r.mapper.ToModels(entries)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*entries[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *RoundEntryRepositoryImpl) Update(ctx context.Context, entry *entity.RoundEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoundEntryRepositoryImpl) DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectId).Delete(&model.RoundEntry{}).Error
}

func (r *RoundEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoundEntry, error) {
	var models []*model.RoundEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RoundEntryRepositoryImpl) FindByProjectAndRound(ctx context.Context, projectId uuid.UUID, round int) ([]*entity.RoundEntry, error) {
	return r.FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.ByRound{Round: round},
		specification.OrderBy{Field: "created_at"},
	)
}

func (r *RoundEntryRepositoryImpl) FindAllByProject(ctx context.Context, projectId uuid.UUID) ([]*entity.RoundEntry, error) {
	return r.FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.OrderBy{Field: "round"},
	)
}

func (r *RoundEntryRepositoryImpl) FindPlacedHouseIds(ctx context.Context, projectId uuid.UUID, houseIds []uuid.UUID) ([]uuid.UUID, error) {
	if len(houseIds) == 0 {
		return nil, nil
	}
	var placed []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.RoundEntry{}).
		Where("project_id = ?", projectId).
		Where("house_id IN ?", houseIds).
		Pluck("house_id", &placed).Error
	if err != nil {
		return nil, err
	}
	return placed, nil
}
