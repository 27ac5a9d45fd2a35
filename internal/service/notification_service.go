package service

import (
	"context"
	"fmt"

	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/pkg/mailer"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/internal/websocket"
	"ai-homematch-be/pkg/events"
	pktNats "ai-homematch-be/pkg/nats"

	"github.com/google/uuid"
)

// RoundDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type RoundDelivery interface {
	Send(projectID uuid.UUID, update websocket.RoundUpdate)
}

// NotificationService fans round lifecycle events out to the rating UI
// (websocket) and the agent (email). It runs off the NATS event stream, so
// the round flow never blocks on delivery.
type NotificationService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pktNats.Subscriber
	delivery     RoundDelivery
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery RoundDelivery,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory:   uowFactory,
		subscriber:   sub,
		delivery:     delivery,
		emailService: emailService,
		logger:       log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	payload := event.Payload()
	projectId, err := uuid.Parse(asString(payload["project_id"]))
	if err != nil {
		// Malformed events are dropped, never retried.
		s.logger.Warn("NotificationService", "Event without a valid project_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	switch event.EventType() {
	case events.TypeRoundStarted:
		round := asInt(payload["round"])
		houseCount := asInt(payload["house_count"])

		if s.delivery != nil {
			s.delivery.Send(projectId, websocket.RoundUpdate{
				Type:       "round_started",
				ProjectId:  projectId,
				Round:      round,
				HouseCount: houseCount,
			})
		}
		return s.mailAgent(ctx, projectId, func(email, name string) error {
			return s.emailService.SendRoundReady(email, name, round, houseCount)
		})

	case events.TypeProjectCompleted:
		if s.delivery != nil {
			s.delivery.Send(projectId, websocket.RoundUpdate{
				Type:      "project_completed",
				ProjectId: projectId,
				Round:     asInt(payload["last_round"]),
				Completed: true,
			})
		}
		return s.mailAgent(ctx, projectId, func(email, name string) error {
			return s.emailService.SendProjectCompleted(email, name)
		})
	}

	return nil
}

// mailAgent looks the project up and mails its agent, if one is set.
// Mail failures are logged and swallowed: the event is already handled.
func (s *NotificationService) mailAgent(ctx context.Context, projectId uuid.UUID, send func(email, name string) error) error {
	if s.emailService == nil {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil || project == nil || project.AgentEmail == "" {
		return nil
	}

	if err := send(project.AgentEmail, project.Name); err != nil {
		s.logger.Warn("NotificationService", "Failed to send agent mail", map[string]interface{}{
			"project_id": projectId,
			"error":      err.Error(),
		})
	}
	return nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt tolerates both int and float64; JSON round-trips numbers as float64.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
