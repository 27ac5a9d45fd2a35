package recommend

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"ai-homematch-be/internal/entity"
)

// RandomStrategy fills whatever quota remains with a uniform sample of the
// unplaced pool. It is the terminal layer: it cannot fail, so the chain
// always makes forward progress even with zero rating signal or total
// oracle outage.
type RandomStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Strategy = &RandomStrategy{}

func NewRandomStrategy() *RandomStrategy {
	return NewRandomStrategyWithSeed(time.Now().UnixNano())
}

// NewRandomStrategyWithSeed fixes the shuffle order, used by tests.
func NewRandomStrategyWithSeed(seed int64) *RandomStrategy {
	return &RandomStrategy{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (s *RandomStrategy) Name() string {
	return "random"
}

func (s *RandomStrategy) Contribute(ctx context.Context, sc *SelectionContext) ([]*entity.House, error) {
	if sc.Need <= 0 || len(sc.Unplaced) == 0 {
		return nil, nil
	}

	pool := make([]*entity.House, len(sc.Unplaced))
	copy(pool, sc.Unplaced)

	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.mu.Unlock()

	if len(pool) > sc.Need {
		pool = pool[:sc.Need]
	}
	return pool, nil
}
