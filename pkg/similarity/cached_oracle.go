package similarity

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedOracle memoizes rank responses per (project, rating-set size,
// exclusion size). Re-reads of an active round hit the cache instead of the
// oracle; any placement or rating changes the key, so staleness is bounded
// to identical requests. The cache is injected so the host owns its
// lifecycle.
type CachedOracle struct {
	inner Oracle
	store *cache.Cache
}

var _ Oracle = &CachedOracle{}

func NewCachedOracle(inner Oracle, store *cache.Cache) *CachedOracle {
	if store == nil {
		store = cache.New(5*time.Minute, 10*time.Minute)
	}
	return &CachedOracle{inner: inner, store: store}
}

func (c *CachedOracle) Rank(ctx context.Context, req *RankRequest) (*RankResponse, error) {
	key := fmt.Sprintf("rank:%s:%d:%d:%d", req.SubjectId, len(req.Ratings), len(req.ExcludeIds), req.Limit)

	if x, found := c.store.Get(key); found {
		return x.(*RankResponse), nil
	}

	res, err := c.inner.Rank(ctx, req)
	if err != nil {
		return nil, err
	}

	c.store.Set(key, res, cache.DefaultExpiration)
	return res, nil
}
