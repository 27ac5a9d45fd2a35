package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeRoundStarted     = "ROUND_STARTED"
	TypeProjectCompleted = "PROJECT_COMPLETED"
	TypeInquiryImported  = "INQUIRY_IMPORTED"
)

// NewRoundStarted fires after a round's candidate set is placed in the ledger.
func NewRoundStarted(projectId uuid.UUID, round int, houseCount int) Event {
	return BaseEvent{
		Type: TypeRoundStarted,
		Data: map[string]interface{}{
			"project_id":  projectId.String(),
			"round":       round,
			"house_count": houseCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewProjectCompleted fires when the final round's ratings are recorded or
// the unplaced pool empties early.
func NewProjectCompleted(projectId uuid.UUID, lastRound int) Event {
	return BaseEvent{
		Type: TypeProjectCompleted,
		Data: map[string]interface{}{
			"project_id": projectId.String(),
			"last_round": lastRound,
		},
		OccurredAt: time.Now(),
	}
}

// NewInquiryImported fires per newly imported CRM inquiry.
func NewInquiryImported(inquiryId uuid.UUID, externalId string, projectId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeInquiryImported,
		Data: map[string]interface{}{
			"inquiry_id":  inquiryId.String(),
			"external_id": externalId,
			"project_id":  projectId.String(),
		},
		OccurredAt: time.Now(),
	}
}
