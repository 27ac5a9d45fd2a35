package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/pkg/similarity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeHouses(n int) []*entity.House {
	houses := make([]*entity.House, n)
	for i := 0; i < n; i++ {
		houses[i] = &entity.House{
			Id:         uuid.New(),
			ProjectId:  uuid.Nil,
			SourceName: fmt.Sprintf("listing_%d.pdf", i),
			Content:    fmt.Sprintf("3LDK apartment near station %d", i),
		}
	}
	return houses
}

func makeContext(unplaced []*entity.House, rated []*RatedEntry, need int) *SelectionContext {
	placed := make([]uuid.UUID, 0, len(rated))
	for _, r := range rated {
		placed = append(placed, r.Entry.HouseId)
	}
	return &SelectionContext{
		Project: &entity.Project{
			Id:           uuid.New(),
			Requirements: "walking distance to a station, budget around 40M yen",
			Profile:      "prefers newer builds with south-facing balconies",
		},
		Round:     1,
		Unplaced:  unplaced,
		Rated:     rated,
		PlacedIds: placed,
		Need:      need,
	}
}

func rateHouses(houses []*entity.House, rating string) []*RatedEntry {
	rated := make([]*RatedEntry, len(houses))
	for i, h := range houses {
		rated[i] = &RatedEntry{
			Entry: &entity.RoundEntry{
				Id:        uuid.New(),
				ProjectId: h.ProjectId,
				HouseId:   h.Id,
				Round:     0,
				Rating:    rating,
			},
			House: h,
		}
	}
	return rated
}

// fakeOracle returns a scripted response or error.
type fakeOracle struct {
	res   *similarity.RankResponse
	err   error
	calls int
}

func (f *fakeOracle) Rank(ctx context.Context, req *similarity.RankRequest) (*similarity.RankResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func newChain(strategies ...Strategy) *Chain {
	return NewChain(logger.NewNopLogger(), strategies...)
}

func TestRandomFillOnlyNeverExceedsTarget(t *testing.T) {
	unplaced := makeHouses(25)
	sc := makeContext(unplaced, nil, 10)

	chain := newChain(NewRandomStrategyWithSeed(42))
	got := chain.Select(context.Background(), sc)

	assert.Len(t, got, 10)
	seen := map[uuid.UUID]bool{}
	for _, h := range got {
		assert.False(t, seen[h.Id], "duplicate house selected")
		seen[h.Id] = true
	}
}

func TestRandomFillShortPool(t *testing.T) {
	unplaced := makeHouses(5)
	sc := makeContext(unplaced, nil, 10)

	chain := newChain(NewRandomStrategyWithSeed(1))
	got := chain.Select(context.Background(), sc)

	assert.Len(t, got, 5)
}

func TestEmptyPoolReturnsEmptyNotError(t *testing.T) {
	sc := makeContext(nil, nil, 10)

	chain := newChain(
		NewSimilarityStrategy(&fakeOracle{}),
		NewRandomStrategyWithSeed(7),
	)
	got := chain.Select(context.Background(), sc)

	assert.Empty(t, got)
}

func TestAllOraclesDownFallsBackToRandom(t *testing.T) {
	unplaced := makeHouses(15)
	rated := rateHouses(makeHouses(10), constant.RatingInterested)
	sc := makeContext(unplaced, rated, 10)

	chain := newChain(
		NewSimilarityStrategy(&fakeOracle{err: errors.New("connection refused")}),
		NewLLMStrategy(&erroringProvider{}),
		NewRandomStrategyWithSeed(99),
	)
	got := chain.Select(context.Background(), sc)

	assert.Len(t, got, 10)
	unplacedSet := map[uuid.UUID]bool{}
	for _, h := range unplaced {
		unplacedSet[h.Id] = true
	}
	for _, h := range got {
		assert.True(t, unplacedSet[h.Id], "selected house not from unplaced pool")
	}
}

func TestSimilarityResultsValidatedAgainstUnplaced(t *testing.T) {
	unplaced := makeHouses(8)
	ratedHouses := makeHouses(3)
	rated := rateHouses(ratedHouses, constant.RatingInterested)

	// The oracle answers with two valid ids, one already-placed id and one
	// foreign id. Only the valid two may be accepted.
	oracle := &fakeOracle{
		res: &similarity.RankResponse{
			Recommendations: []similarity.Recommendation{
				{HouseId: unplaced[3].Id, Score: 0.91},
				{HouseId: ratedHouses[0].Id, Score: 0.88}, // placed: must be dropped
				{HouseId: uuid.New(), Score: 0.85},        // foreign: must be dropped
				{HouseId: unplaced[5].Id, Score: 0.80},
			},
		},
	}

	sc := makeContext(unplaced, rated, 10)
	chain := newChain(
		NewSimilarityStrategy(oracle),
		NewRandomStrategyWithSeed(3),
	)
	got := chain.Select(context.Background(), sc)

	// Random tops the selection up to 8 (pool size), but the oracle picks
	// must lead and the invalid ids must not appear.
	assert.Len(t, got, 8)
	assert.Equal(t, unplaced[3].Id, got[0].Id)
	assert.Equal(t, unplaced[5].Id, got[1].Id)
	for _, h := range got {
		assert.NotEqual(t, ratedHouses[0].Id, h.Id)
	}
}

func TestLaterStrategySkippedWhenQuotaFilled(t *testing.T) {
	unplaced := makeHouses(12)
	rated := rateHouses(makeHouses(2), constant.RatingNeutral)

	recs := make([]similarity.Recommendation, 10)
	for i := 0; i < 10; i++ {
		recs[i] = similarity.Recommendation{HouseId: unplaced[i].Id, Score: 1 - float64(i)*0.01}
	}
	oracle := &fakeOracle{res: &similarity.RankResponse{Recommendations: recs}}

	tracker := &trackingStrategy{}
	chain := newChain(
		NewSimilarityStrategy(oracle),
		tracker,
		NewRandomStrategyWithSeed(5),
	)

	sc := makeContext(unplaced, rated, 10)
	got := chain.Select(context.Background(), sc)

	assert.Len(t, got, 10)
	assert.Zero(t, tracker.calls, "later strategy must not run once quota is met")
}

func TestNoRatingsSkipsOracleStrategies(t *testing.T) {
	unplaced := makeHouses(20)
	oracle := &fakeOracle{res: &similarity.RankResponse{}}

	sc := makeContext(unplaced, nil, 10)
	chain := newChain(
		NewSimilarityStrategy(oracle),
		NewRandomStrategyWithSeed(11),
	)
	got := chain.Select(context.Background(), sc)

	assert.Len(t, got, 10)
	assert.Zero(t, oracle.calls, "similarity oracle must stay idle without ratings")
}

func TestContributionsCappedAtNeed(t *testing.T) {
	unplaced := makeHouses(30)
	rated := rateHouses(makeHouses(1), constant.RatingInterested)

	// Oracle over-answers with 30 recommendations.
	recs := make([]similarity.Recommendation, len(unplaced))
	for i, h := range unplaced {
		recs[i] = similarity.Recommendation{HouseId: h.Id}
	}
	oracle := &fakeOracle{res: &similarity.RankResponse{Recommendations: recs}}

	sc := makeContext(unplaced, rated, 10)
	chain := newChain(NewSimilarityStrategy(oracle))
	got := chain.Select(context.Background(), sc)

	assert.Len(t, got, 10)
}

// trackingStrategy counts invocations without contributing.
type trackingStrategy struct {
	calls int
}

func (t *trackingStrategy) Name() string { return "tracking" }

func (t *trackingStrategy) Contribute(ctx context.Context, sc *SelectionContext) ([]*entity.House, error) {
	t.calls++
	return nil, nil
}
