package implementation

import (
	"context"
	"errors"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/mapper"
	"ai-homematch-be/internal/model"
	"ai-homematch-be/internal/repository/contract"
	"ai-homematch-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HouseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HouseMapper
}

func NewHouseRepository(db *gorm.DB) contract.HouseRepository {
	return &HouseRepositoryImpl{
		db:     db,
		mapper: mapper.NewHouseMapper(),
	}
}

func (r *HouseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HouseRepositoryImpl) Create(ctx context.Context, house *entity.House) error {
	m := r.mapper.ToModel(house)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*house = *r.mapper.ToEntity(m)
	return nil
}

func (r *HouseRepositoryImpl) CreateBulk(ctx context.Context, houses []*entity.House) error {
	if len(houses) == 0 {
		return nil
	}
	models := r.mapper.ToModels(houses)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	// Update IDs back to entities
	for i, m := range models {
		*houses[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *HouseRepositoryImpl) Update(ctx context.Context, house *entity.House) error {
	m := r.mapper.ToModel(house)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*house = *r.mapper.ToEntity(m)
	return nil
}

func (r *HouseRepositoryImpl) DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectId).Delete(&model.House{}).Error
}

func (r *HouseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.House, error) {
	var m model.House
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *HouseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.House, error) {
	var models []*model.House
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *HouseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.House{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *HouseRepositoryImpl) FindUnplaced(ctx context.Context, projectId uuid.UUID) ([]*entity.House, error) {
	return r.FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.HouseNotPlaced{ProjectID: projectId},
	)
}

func (r *HouseRepositoryImpl) CountDistinctSources(ctx context.Context, projectId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.House{}).
		Where("project_id = ?", projectId).
		Distinct("source_name").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
