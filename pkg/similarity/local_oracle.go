package similarity

import (
	"context"
	"fmt"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/repository/contract"

	"github.com/google/uuid"
)

// LocalOracle ranks houses with the project's own pgvector embeddings instead
// of a remote service. The query vector is the centroid of the "good" rated
// houses' chunk embeddings; with no positive signal yet it widens to the
// "medium" ones, and with no embeddings at all it reports zero candidates so
// the chain falls through.
type LocalOracle struct {
	embeddings contract.HouseEmbeddingRepository
}

var _ Oracle = &LocalOracle{}

func NewLocalOracle(embeddings contract.HouseEmbeddingRepository) *LocalOracle {
	return &LocalOracle{embeddings: embeddings}
}

func (o *LocalOracle) Rank(ctx context.Context, req *RankRequest) (*RankResponse, error) {
	query, err := o.queryVector(ctx, req)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return &RankResponse{}, nil
	}

	scored, err := o.embeddings.SearchSimilarHouses(ctx, req.SubjectId, query, req.Limit, req.ExcludeIds)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	res := &RankResponse{
		Recommendations: make([]Recommendation, len(scored)),
	}
	for i, s := range scored {
		res.Recommendations[i] = Recommendation{
			HouseId: s.HouseId,
			Score:   s.Similarity,
		}
	}
	return res, nil
}

func (o *LocalOracle) queryVector(ctx context.Context, req *RankRequest) ([]float32, error) {
	ids := ratedIds(req.Ratings, constant.CoarseGood)
	if len(ids) == 0 {
		ids = ratedIds(req.Ratings, constant.CoarseMedium)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	chunks, err := o.embeddings.FindByHouseIds(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load rated embeddings: %w", err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	dims := len(chunks[0].EmbeddingValue)
	centroid := make([]float32, dims)
	counted := 0
	for _, c := range chunks {
		if len(c.EmbeddingValue) != dims {
			continue
		}
		for i, v := range c.EmbeddingValue {
			centroid[i] += v
		}
		counted++
	}
	if counted == 0 {
		return nil, nil
	}
	for i := range centroid {
		centroid[i] /= float32(counted)
	}
	return centroid, nil
}

func ratedIds(ratings []RatedHouse, coarse string) []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range ratings {
		if r.Rating == coarse {
			ids = append(ids, r.HouseId)
		}
	}
	return ids
}
