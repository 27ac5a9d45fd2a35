package similarity

import (
	"context"

	"github.com/google/uuid"
)

// RatedHouse is one rating on the coarse three-level scale understood by the
// oracle ("good", "medium", "poor").
type RatedHouse struct {
	HouseId uuid.UUID `json:"itemId"`
	Rating  string    `json:"rating"`
}

// RankRequest asks the oracle for up to Limit candidates similar to the
// positively rated history, excluding already placed houses. The oracle is
// best-effort: callers re-validate every returned id locally.
type RankRequest struct {
	SubjectId  uuid.UUID    `json:"subjectId"`
	Ratings    []RatedHouse `json:"ratings"`
	Limit      int          `json:"limit"`
	ExcludeIds []uuid.UUID  `json:"excludeIds"`
}

type Recommendation struct {
	HouseId uuid.UUID `json:"itemId"`
	Score   float64   `json:"score"`
}

type RankResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// Oracle ranks candidate houses by similarity to the rated history.
type Oracle interface {
	Rank(ctx context.Context, req *RankRequest) (*RankResponse, error)
}
