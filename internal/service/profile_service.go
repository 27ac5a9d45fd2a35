package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/pkg/llm"

	"github.com/google/uuid"
)

type IProfileService interface {
	// BuildProfile re-synthesizes the project's preference profile from its
	// requirements and all rated entries, and persists it.
	BuildProfile(ctx context.Context, projectId uuid.UUID) (string, error)
}

type profileService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IProfileService {
	return &profileService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		logger:      log,
	}
}

func (s *profileService) BuildProfile(ctx context.Context, projectId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", apperror.ErrProjectNotFound
	}

	entries, err := uow.RoundEntryRepository().FindAllByProject(ctx, projectId)
	if err != nil {
		return "", err
	}

	rated := make([]*entity.RoundEntry, 0, len(entries))
	houseIds := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if entry.Rated() {
			rated = append(rated, entry)
			houseIds = append(houseIds, entry.HouseId)
		}
	}
	if len(rated) == 0 && project.Requirements == "" {
		// Nothing to synthesize from; keep whatever profile exists.
		return project.Profile, nil
	}

	houses := make(map[uuid.UUID]*entity.House, len(houseIds))
	if len(houseIds) > 0 {
		found, err := uow.HouseRepository().FindAll(ctx, specification.ByIDs{IDs: houseIds})
		if err != nil {
			return "", err
		}
		for _, house := range found {
			houses[house.Id] = house
		}
	}

	var sb strings.Builder
	for _, entry := range rated {
		house, ok := houses[entry.HouseId]
		if !ok || house.Content == constant.ExtractionFailedSentinel {
			continue
		}
		excerpt := house.Content
		if runes := []rune(excerpt); len(runes) > constant.ProfileExcerptLength {
			excerpt = string(runes[:constant.ProfileExcerptLength])
		}
		fmt.Fprintf(&sb, "[%s] %s\n", entry.Rating, excerpt)
		if entry.Notes != "" {
			fmt.Fprintf(&sb, "  customer note: %s\n", entry.Notes)
		}
		sb.WriteString("\n")
	}

	ratedBlock := sb.String()
	if ratedBlock == "" {
		ratedBlock = "(no rated properties yet)"
	}

	prompt := fmt.Sprintf(constant.ProfilePromptTemplate, project.Requirements, ratedBlock)

	llmCtx, cancel := context.WithTimeout(ctx, constant.ProfileTimeout)
	defer cancel()

	profile, err := s.llmProvider.Generate(llmCtx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		// Stale profile beats no profile; the caller treats this as
		// best effort.
		return project.Profile, fmt.Errorf("profile synthesis failed: %w", err)
	}
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return project.Profile, nil
	}

	now := time.Now()
	project.Profile = profile
	project.UpdatedAt = &now
	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return "", err
	}

	s.logger.Info("ProfileService", "Profile rebuilt", map[string]interface{}{
		"project_id":  projectId,
		"rated_count": len(rated),
	})
	return profile, nil
}
