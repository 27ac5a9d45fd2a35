package recommend

import (
	"ai-homematch-be/internal/entity"

	"github.com/google/uuid"
)

// RatedEntry joins a ledger entry with the house it rated, so strategies can
// feed both the rating and the listing content to their oracle.
type RatedEntry struct {
	Entry *entity.RoundEntry
	House *entity.House
}

// SelectionContext carries everything a strategy may consult while
// contributing candidates for a round. The chain owns the context and keeps
// Unplaced, PlacedIds and Need consistent as strategies contribute.
type SelectionContext struct {
	Project *entity.Project
	Round   int

	// Unplaced is the pool every candidate must come from.
	Unplaced []*entity.House

	// Rated is the full rated history across all prior rounds.
	Rated []*RatedEntry

	// PlacedIds lists every house with a ledger entry, i.e. the exclusion
	// set forwarded to untrusted oracles.
	PlacedIds []uuid.UUID

	// Need is the remaining quota for this round.
	Need int
}

// HasRatings reports whether any prior entry carries a rating. Round 0 and
// fully unrated projects fall straight through to random fill.
func (sc *SelectionContext) HasRatings() bool {
	return len(sc.Rated) > 0
}

// excerpt truncates rune-safely; oracle prompts bound per-house content.
func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
