package recommend

import (
	"context"

	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Chain runs an ordered list of strategies until the round quota is met.
// Strategy order is strict: a later layer never runs once the quota is
// filled and never displaces earlier picks. Strategy failures are logged and
// converted to zero contribution, so selection degrades layer by layer
// instead of surfacing oracle errors to the round controller.
type Chain struct {
	strategies []Strategy
	logger     logger.ILogger
}

func NewChain(log logger.ILogger, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     log,
	}
}

// Select returns between min(target, |unplaced|) and target houses, all
// unplaced and distinct. The caller places them; Select itself is pure.
func (c *Chain) Select(ctx context.Context, sc *SelectionContext) []*entity.House {
	selected := make([]*entity.House, 0, sc.Need)

	for _, strategy := range c.strategies {
		if sc.Need <= 0 {
			break
		}
		if len(sc.Unplaced) == 0 {
			break
		}

		contributed, err := strategy.Contribute(ctx, sc)
		if err != nil {
			c.logger.Warn("RecommendChain", "Strategy failed, falling through", map[string]interface{}{
				"strategy":   strategy.Name(),
				"project_id": sc.Project.Id,
				"round":      sc.Round,
				"error":      err.Error(),
			})
			continue
		}

		accepted := c.accept(sc, selected, contributed)
		if len(accepted) > len(selected) {
			c.logger.Info("RecommendChain", "Strategy contributed candidates", map[string]interface{}{
				"strategy":   strategy.Name(),
				"project_id": sc.Project.Id,
				"round":      sc.Round,
				"count":      len(accepted) - len(selected),
			})
		}
		selected = accepted
	}

	return selected
}

// accept validates contributions against the live unplaced pool, appends the
// good ones and shrinks the context so the next strategy sees the remaining
// quota and pool.
func (c *Chain) accept(sc *SelectionContext, selected []*entity.House, contributed []*entity.House) []*entity.House {
	if len(contributed) == 0 {
		return selected
	}

	unplaced := make(map[uuid.UUID]bool, len(sc.Unplaced))
	for _, h := range sc.Unplaced {
		unplaced[h.Id] = true
	}

	taken := make(map[uuid.UUID]bool, len(contributed))
	for _, h := range contributed {
		if sc.Need <= 0 {
			break
		}
		if !unplaced[h.Id] || taken[h.Id] {
			continue
		}
		taken[h.Id] = true
		selected = append(selected, h)
		sc.Need--
		sc.PlacedIds = append(sc.PlacedIds, h.Id)
	}

	if len(taken) > 0 {
		remaining := make([]*entity.House, 0, len(sc.Unplaced)-len(taken))
		for _, h := range sc.Unplaced {
			if !taken[h.Id] {
				remaining = append(remaining, h)
			}
		}
		sc.Unplaced = remaining
	}

	return selected
}
