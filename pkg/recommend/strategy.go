package recommend

import (
	"context"

	"ai-homematch-be/internal/entity"
)

// Strategy is one layer of the candidate selection fallback chain. A
// strategy contributes up to sc.Need houses; returning fewer (or an error)
// simply hands the remainder to the next layer. Contributions are
// re-validated by the chain, so a strategy may safely rely on an untrusted
// oracle.
type Strategy interface {
	Name() string
	Contribute(ctx context.Context, sc *SelectionContext) ([]*entity.House, error)
}
