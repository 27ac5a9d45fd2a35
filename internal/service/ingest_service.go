package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/pkg/splitter"

	"github.com/google/uuid"
)

type IIngestService interface {
	IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
}

type ingestService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

// IngestDocument turns every non-blank page of an extracted property document
// into one house. Pages whose extraction failed upstream come in as the
// sentinel text and are kept: they stay recommendable, just without signal.
func (s *ingestService) IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: req.ProjectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrProjectNotFound
	}
	if project.Completed {
		return nil, apperror.ErrProjectCompleted
	}

	pages := req.Pages
	if len(pages) == 0 {
		pages = splitter.SplitPages(req.Text)
	}

	houses := make([]*entity.House, 0, len(pages))
	skipped := 0
	for _, page := range pages {
		content := strings.TrimSpace(page)
		if content == "" {
			skipped++
			continue
		}

		houses = append(houses, &entity.House{
			Id:         uuid.New(),
			ProjectId:  req.ProjectId,
			SourceName: req.SourceName,
			Content:    content,
			CreatedAt:  time.Now(),
		})
	}

	if len(houses) > 0 {
		if err := uow.HouseRepository().CreateBulk(ctx, houses); err != nil {
			return nil, err
		}
	}

	houseIds := make([]uuid.UUID, 0, len(houses))
	for _, house := range houses {
		houseIds = append(houseIds, house.Id)

		if house.Content == constant.ExtractionFailedSentinel {
			continue
		}

		msgJson, err := json.Marshal(dto.PublishEmbedHouseMessage{HouseId: house.Id})
		if err != nil {
			continue
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			// Embeddings are an enhancement; ingestion already succeeded.
			s.logger.Warn("IngestService", "Failed to publish embed job", map[string]interface{}{
				"house_id": house.Id,
				"error":    err.Error(),
			})
		}
	}

	s.logger.Info("IngestService", "Document ingested", map[string]interface{}{
		"project_id":  req.ProjectId,
		"source_name": req.SourceName,
		"houses":      len(houses),
		"skipped":     skipped,
	})

	return &dto.IngestDocumentResponse{
		SourceName: req.SourceName,
		HouseIds:   houseIds,
		Skipped:    skipped,
	}, nil
}
