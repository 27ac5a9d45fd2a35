package implementation

import (
	"context"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/mapper"
	"ai-homematch-be/internal/model"
	"ai-homematch-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type HouseEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HouseEmbeddingMapper
}

func NewHouseEmbeddingRepository(db *gorm.DB) contract.HouseEmbeddingRepository {
	return &HouseEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewHouseEmbeddingMapper(),
	}
}

func (r *HouseEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.HouseEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.HouseEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *HouseEmbeddingRepositoryImpl) DeleteByHouseId(ctx context.Context, houseId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("house_id = ?", houseId).Delete(&model.HouseEmbedding{}).Error
}

func (r *HouseEmbeddingRepositoryImpl) DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error {
	subQuery := r.db.Table("houses").Select("id").Where("project_id = ?", projectId)
	return r.db.WithContext(ctx).Where("house_id IN (?)", subQuery).Delete(&model.HouseEmbedding{}).Error
}

func (r *HouseEmbeddingRepositoryImpl) FindByHouseIds(ctx context.Context, houseIds []uuid.UUID) ([]*entity.HouseEmbedding, error) {
	if len(houseIds) == 0 {
		return nil, nil
	}
	var models []*model.HouseEmbedding
	err := r.db.WithContext(ctx).
		Where("house_id IN ?", houseIds).
		Order("house_id, chunk_index").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.HouseEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// SearchSimilarHouses ranks houses by the cosine similarity of their best
// matching chunk. Joining houses lets us scope by project and skip
// soft-deleted rows; excluded ids are filtered in SQL but callers still
// re-validate because the exclusion set can be stale by the time the
// selection is placed.
func (r *HouseEmbeddingRepositoryImpl) SearchSimilarHouses(ctx context.Context, projectId uuid.UUID, query []float32, limit int, excludeIds []uuid.UUID) ([]*contract.ScoredHouse, error) {
	if limit <= 0 {
		limit = 5
	}

	queryVector := pgvector.NewVector(query)

	type result struct {
		HouseId    uuid.UUID
		Similarity float64
	}
	var results []result

	q := r.db.WithContext(ctx).
		Table("house_embeddings").
		Select("house_embeddings.house_id, MAX(1 - (embedding_value <=> ?)) as similarity", queryVector).
		Joins("JOIN houses ON houses.id = house_embeddings.house_id").
		Where("houses.project_id = ?", projectId).
		Where("house_embeddings.deleted_at IS NULL").
		Where("houses.deleted_at IS NULL")

	if len(excludeIds) > 0 {
		q = q.Where("house_embeddings.house_id NOT IN ?", excludeIds)
	}

	err := q.Group("house_embeddings.house_id").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredHouse, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredHouse{
			HouseId:    res.HouseId,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
