package constant

import "time"

// Round progression
const (
	// RoundSize is the upper bound of a round's candidate set.
	RoundSize = 10

	// InitialRound is the unrated sampling round.
	InitialRound = 0

	// FinalRound is terminal; no round 4 is ever created.
	FinalRound = 3
)

// Ratings as submitted by the client. Unrated entries keep RatingUnset.
const (
	RatingUnset         = ""
	RatingInterested    = "interested"
	RatingNeutral       = "neutral"
	RatingNotInterested = "not_interested"
)

// Coarse scale sent to the similarity oracle.
const (
	CoarseGood   = "good"
	CoarseMedium = "medium"
	CoarsePoor   = "poor"
)

// CoarseRating maps a local rating to the oracle's three-level scale.
// Unknown values fall back to "medium" rather than failing the request.
func CoarseRating(rating string) string {
	switch rating {
	case RatingInterested:
		return CoarseGood
	case RatingNotInterested:
		return CoarsePoor
	default:
		return CoarseMedium
	}
}

// Prompt assembly bounds. Keeps oracle payloads inside context limits.
const (
	// ProfileExcerptLength bounds per-house content in profile synthesis.
	ProfileExcerptLength = 500

	// RankingExcerptLength bounds per-house content in LLM ranking.
	RankingExcerptLength = 800
)

// Oracle timeouts. Similarity is a cheap vector lookup; the LLM can be slow
// on first request due to model loading.
const (
	SimilarityTimeout = 10 * time.Second
	RankingTimeout    = 3 * time.Minute
	ProfileTimeout    = 3 * time.Minute
)

// Embedding pipeline
const (
	// EmbedChunkSize: 1500 chars (approx 375 tokens) - safe for context limits
	EmbedChunkSize    = 1500
	EmbedChunkOverlap = 200
)

// ExtractionFailedSentinel marks a house whose page text could not be
// extracted upstream. Such houses stay recommendable but carry no signal.
const ExtractionFailedSentinel = "[EXTRACTION_FAILED]"
