package recommend

import (
	"context"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/pkg/similarity"

	"github.com/google/uuid"
)

// SimilarityStrategy asks the similarity oracle for candidates resembling
// the positively rated history. Inactive until at least one rating exists.
type SimilarityStrategy struct {
	oracle similarity.Oracle
}

var _ Strategy = &SimilarityStrategy{}

func NewSimilarityStrategy(oracle similarity.Oracle) *SimilarityStrategy {
	return &SimilarityStrategy{oracle: oracle}
}

func (s *SimilarityStrategy) Name() string {
	return "similarity"
}

func (s *SimilarityStrategy) Contribute(ctx context.Context, sc *SelectionContext) ([]*entity.House, error) {
	if s.oracle == nil || !sc.HasRatings() {
		return nil, nil
	}

	ratings := make([]similarity.RatedHouse, 0, len(sc.Rated))
	for _, r := range sc.Rated {
		ratings = append(ratings, similarity.RatedHouse{
			HouseId: r.Entry.HouseId,
			Rating:  constant.CoarseRating(r.Entry.Rating),
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, constant.SimilarityTimeout)
	defer cancel()

	res, err := s.oracle.Rank(callCtx, &similarity.RankRequest{
		SubjectId:  sc.Project.Id,
		Ratings:    ratings,
		Limit:      sc.Need,
		ExcludeIds: sc.PlacedIds,
	})
	if err != nil {
		return nil, err
	}

	// The oracle was asked to exclude placed houses, but it is untrusted and
	// possibly stale; map back through the unplaced pool only.
	byId := make(map[uuid.UUID]*entity.House, len(sc.Unplaced))
	for _, h := range sc.Unplaced {
		byId[h.Id] = h
	}

	picked := make([]*entity.House, 0, sc.Need)
	for _, rec := range res.Recommendations {
		if h, ok := byId[rec.HouseId]; ok {
			picked = append(picked, h)
			delete(byId, rec.HouseId)
		}
		if len(picked) >= sc.Need {
			break
		}
	}
	return picked, nil
}
