package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recommendation workflow. Controllers translate
// these to HTTP statuses in serverutils.ErrorHandlerMiddleware.
var (
	// ErrProjectNotFound: the project id does not exist (or was deleted).
	ErrProjectNotFound = errors.New("project not found")

	// ErrHouseNotFound: the house id does not exist.
	ErrHouseNotFound = errors.New("house not found")

	// ErrIncompleteRating: a round-advance was attempted while at least one
	// entry of the current round has no rating. No state is mutated.
	ErrIncompleteRating = errors.New("all offered houses must be rated before advancing")

	// ErrUnknownEntry: a rating was submitted for a (project, house, round)
	// triple that has no ledger entry.
	ErrUnknownEntry = errors.New("no round entry matches the submitted rating")

	// ErrDuplicatePlacement: a house already has a ledger entry in this
	// project. Callers always filter against the unplaced set, so hitting
	// this is a programming-contract failure. Fail fast, never dedupe.
	ErrDuplicatePlacement = errors.New("house already placed in a previous round")

	// ErrRoundAlreadyStarted: round 0 was requested for a project that
	// already has ledger entries. Reads of the current round are the
	// idempotent path.
	ErrRoundAlreadyStarted = errors.New("project already has a started round")

	// ErrProjectCompleted: a round operation was attempted on a terminal
	// project.
	ErrProjectCompleted = errors.New("project recommendation rounds are completed")
)

// DuplicatePlacement wraps ErrDuplicatePlacement with the offending house id.
func DuplicatePlacement(houseId string) error {
	return fmt.Errorf("%w: house %s", ErrDuplicatePlacement, houseId)
}

// UnknownEntry wraps ErrUnknownEntry with the offending house id and round.
func UnknownEntry(houseId string, round int) error {
	return fmt.Errorf("%w: house %s round %d", ErrUnknownEntry, houseId, round)
}
