package similarity

import (
	"context"
	"errors"
	"testing"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbeddingRepo struct {
	chunks      []*entity.HouseEmbedding
	scored      []*contract.ScoredHouse
	searchCalls int
	lastQuery   []float32
	searchErr   error
}

func (f *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.HouseEmbedding) error {
	return nil
}
func (f *fakeEmbeddingRepo) DeleteByHouseId(ctx context.Context, houseId uuid.UUID) error { return nil }
func (f *fakeEmbeddingRepo) DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error {
	return nil
}

func (f *fakeEmbeddingRepo) FindByHouseIds(ctx context.Context, houseIds []uuid.UUID) ([]*entity.HouseEmbedding, error) {
	wanted := make(map[uuid.UUID]bool, len(houseIds))
	for _, id := range houseIds {
		wanted[id] = true
	}
	var result []*entity.HouseEmbedding
	for _, c := range f.chunks {
		if wanted[c.HouseId] {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeEmbeddingRepo) SearchSimilarHouses(ctx context.Context, projectId uuid.UUID, query []float32, limit int, excludeIds []uuid.UUID) ([]*contract.ScoredHouse, error) {
	f.searchCalls++
	f.lastQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.scored, nil
}

func chunk(houseId uuid.UUID, values ...float32) *entity.HouseEmbedding {
	return &entity.HouseEmbedding{
		Id:             uuid.New(),
		HouseId:        houseId,
		EmbeddingValue: values,
	}
}

func TestLocalOracleCentroidOfGoodRatings(t *testing.T) {
	goodA := uuid.New()
	goodB := uuid.New()
	poor := uuid.New()
	match := uuid.New()

	repo := &fakeEmbeddingRepo{
		chunks: []*entity.HouseEmbedding{
			chunk(goodA, 1, 0),
			chunk(goodB, 0, 1),
			chunk(poor, -5, -5),
		},
		scored: []*contract.ScoredHouse{{HouseId: match, Similarity: 0.9}},
	}
	oracle := NewLocalOracle(repo)

	res, err := oracle.Rank(context.Background(), &RankRequest{
		SubjectId: uuid.New(),
		Ratings: []RatedHouse{
			{HouseId: goodA, Rating: constant.CoarseGood},
			{HouseId: goodB, Rating: constant.CoarseGood},
			{HouseId: poor, Rating: constant.CoarsePoor},
		},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, match, res.Recommendations[0].HouseId)

	// Poor ratings never contribute to the query vector.
	assert.Equal(t, []float32{0.5, 0.5}, repo.lastQuery)
}

func TestLocalOracleWidensToMediumWithoutGood(t *testing.T) {
	medium := uuid.New()
	repo := &fakeEmbeddingRepo{
		chunks: []*entity.HouseEmbedding{chunk(medium, 2, 4)},
	}
	oracle := NewLocalOracle(repo)

	_, err := oracle.Rank(context.Background(), &RankRequest{
		SubjectId: uuid.New(),
		Ratings:   []RatedHouse{{HouseId: medium, Rating: constant.CoarseMedium}},
		Limit:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searchCalls)
	assert.Equal(t, []float32{2, 4}, repo.lastQuery)
}

func TestLocalOracleNoSignalReturnsEmpty(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	oracle := NewLocalOracle(repo)

	res, err := oracle.Rank(context.Background(), &RankRequest{
		SubjectId: uuid.New(),
		Ratings:   []RatedHouse{{HouseId: uuid.New(), Rating: constant.CoarsePoor}},
		Limit:     5,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Recommendations)
	assert.Zero(t, repo.searchCalls)
}

func TestLocalOracleSearchErrorSurfaces(t *testing.T) {
	good := uuid.New()
	repo := &fakeEmbeddingRepo{
		chunks:    []*entity.HouseEmbedding{chunk(good, 1, 1)},
		searchErr: errors.New("pg down"),
	}
	oracle := NewLocalOracle(repo)

	_, err := oracle.Rank(context.Background(), &RankRequest{
		SubjectId: uuid.New(),
		Ratings:   []RatedHouse{{HouseId: good, Rating: constant.CoarseGood}},
		Limit:     5,
	})
	assert.Error(t, err)
}

func TestCachedOracleMemoizesIdenticalRequests(t *testing.T) {
	good := uuid.New()
	repo := &fakeEmbeddingRepo{
		chunks: []*entity.HouseEmbedding{chunk(good, 1, 1)},
		scored: []*contract.ScoredHouse{{HouseId: uuid.New(), Similarity: 0.7}},
	}
	oracle := NewCachedOracle(NewLocalOracle(repo), nil)

	req := &RankRequest{
		SubjectId: uuid.New(),
		Ratings:   []RatedHouse{{HouseId: good, Rating: constant.CoarseGood}},
		Limit:     10,
	}

	first, err := oracle.Rank(context.Background(), req)
	require.NoError(t, err)
	second, err := oracle.Rank(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.searchCalls)

	// Adding an exclusion changes the key and bypasses the cache.
	req.ExcludeIds = []uuid.UUID{uuid.New()}
	_, err = oracle.Rank(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searchCalls)
}
