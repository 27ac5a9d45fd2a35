package service

import (
	"context"
	"time"

	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/pkg/events"

	"github.com/google/uuid"
)

type IInquiryService interface {
	// Import takes a batch of CRM inquiries, skips ones already imported
	// (by external id) and creates one project per new inquiry.
	Import(ctx context.Context, req *dto.ImportInquiriesRequest) (*dto.ImportInquiriesResponse, error)
}

type inquiryService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IEventPublisher
	logger     logger.ILogger
}

func NewInquiryService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IEventPublisher,
	log logger.ILogger,
) IInquiryService {
	return &inquiryService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *inquiryService) Import(ctx context.Context, req *dto.ImportInquiriesRequest) (*dto.ImportInquiriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	res := &dto.ImportInquiriesResponse{
		ProjectIds: make([]uuid.UUID, 0, len(req.Inquiries)),
	}

	for _, input := range req.Inquiries {
		existing, err := uow.InquiryRepository().FindOne(ctx, specification.ByExternalID{ExternalID: input.ExternalId})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.Duplicates++
			continue
		}

		project := &entity.Project{
			Id:           uuid.New(),
			Name:         input.CustomerName,
			Requirements: input.Requirements,
			AgentEmail:   input.Email,
			ExternalId:   input.ExternalId,
			CreatedAt:    time.Now(),
		}
		inquiry := &entity.Inquiry{
			Id:           uuid.New(),
			ExternalId:   input.ExternalId,
			CustomerName: input.CustomerName,
			Email:        input.Email,
			Requirements: input.Requirements,
			RawPayload:   input.RawPayload,
			ProjectId:    &project.Id,
			CreatedAt:    time.Now(),
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		if err := uow.ProjectRepository().Create(ctx, project); err != nil {
			uow.Rollback()
			return nil, err
		}
		if err := uow.InquiryRepository().Create(ctx, inquiry); err != nil {
			uow.Rollback()
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		res.Imported++
		res.ProjectIds = append(res.ProjectIds, project.Id)

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, events.NewInquiryImported(inquiry.Id, inquiry.ExternalId, project.Id)); err != nil {
				s.logger.Warn("InquiryService", "Failed to publish import event", map[string]interface{}{
					"external_id": inquiry.ExternalId,
					"error":       err.Error(),
				})
			}
		}
	}

	s.logger.Info("InquiryService", "Inquiry batch imported", map[string]interface{}{
		"imported":   res.Imported,
		"duplicates": res.Duplicates,
	})
	return res, nil
}
