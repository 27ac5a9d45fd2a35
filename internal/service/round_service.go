package service

import (
	"context"
	"sync"
	"time"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/pkg/events"
	"ai-homematch-be/pkg/recommend"

	"github.com/google/uuid"
)

type IRoundService interface {
	// StartInitialRound creates round 0 for a project that has no ledger
	// entries yet. Not idempotent: a second call returns
	// apperror.ErrRoundAlreadyStarted; reads go through GetCurrentRound.
	StartInitialRound(ctx context.Context, projectId uuid.UUID) (*dto.RoundResponse, error)

	// GetCurrentRound returns the current round's houses with any ratings
	// already submitted. Pure read.
	GetCurrentRound(ctx context.Context, projectId uuid.UUID) (*dto.RoundResponse, error)

	// SubmitRatings records the full rating sheet for the current round and
	// advances the project: next round's candidates are selected and placed,
	// or the project completes after the final round (or when the pool
	// empties). Returns the new current round.
	SubmitRatings(ctx context.Context, req *dto.SubmitRatingsRequest) (*dto.RoundResponse, error)
}

// IEventPublisher is the slice of the NATS publisher the round flow needs.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type roundService struct {
	uowFactory     unitofwork.RepositoryFactory
	chain          *recommend.Chain
	profileService IProfileService
	publisher      IEventPublisher
	logger         logger.ILogger

	// mu guards locks; each project gets its own mutex so round mutations
	// for one project serialize without blocking other projects.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewRoundService(
	uowFactory unitofwork.RepositoryFactory,
	chain *recommend.Chain,
	profileService IProfileService,
	publisher IEventPublisher,
	log logger.ILogger,
) IRoundService {
	return &roundService{
		uowFactory:     uowFactory,
		chain:          chain,
		profileService: profileService,
		publisher:      publisher,
		logger:         log,
		locks:          make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *roundService) projectLock(projectId uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[projectId]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectId] = lock
	}
	return lock
}

func (s *roundService) StartInitialRound(ctx context.Context, projectId uuid.UUID) (*dto.RoundResponse, error) {
	lock := s.projectLock(projectId)
	lock.Lock()
	defer lock.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrProjectNotFound
	}
	if project.Completed {
		return nil, apperror.ErrProjectCompleted
	}

	existing, err := uow.RoundEntryRepository().FindAllByProject(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperror.ErrRoundAlreadyStarted
	}

	unplaced, err := uow.HouseRepository().FindUnplaced(ctx, projectId)
	if err != nil {
		return nil, err
	}

	// Round 0 has no ratings to learn from; the chain falls straight
	// through to random fill.
	sc := &recommend.SelectionContext{
		Project:  project,
		Round:    constant.InitialRound,
		Unplaced: unplaced,
		Need:     constant.RoundSize,
	}
	selected := s.chain.Select(ctx, sc)

	if err := s.placeRound(ctx, uow, project, constant.InitialRound, selected); err != nil {
		return nil, err
	}

	s.afterRoundStarted(ctx, project, constant.InitialRound, len(selected))

	return s.buildResponse(ctx, uow, project, constant.InitialRound)
}

func (s *roundService) GetCurrentRound(ctx context.Context, projectId uuid.UUID) (*dto.RoundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrProjectNotFound
	}

	return s.buildResponse(ctx, uow, project, project.CurrentRound)
}

func (s *roundService) SubmitRatings(ctx context.Context, req *dto.SubmitRatingsRequest) (*dto.RoundResponse, error) {
	lock := s.projectLock(req.ProjectId)
	lock.Lock()
	defer lock.Unlock()

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

	allEntries, err := uow.RoundEntryRepository().FindAllByProject(ctx, req.ProjectId)
	if err != nil {
		return nil, err
	}

	current := make(map[uuid.UUID]*entity.RoundEntry)
	for _, entry := range allEntries {
		if entry.Round == project.CurrentRound {
			current[entry.HouseId] = entry
		}
	}
	if len(current) == 0 {
		return nil, apperror.UnknownEntry(uuid.Nil.String(), project.CurrentRound)
	}

	// Validate before mutating: every submitted id must belong to the
	// current round, and after applying the sheet every entry must carry a
	// rating. An incomplete sheet changes nothing.
	final := make(map[uuid.UUID]string, len(current))
	for houseId, entry := range current {
		final[houseId] = entry.Rating
	}
	for _, rating := range req.Ratings {
		if _, ok := current[rating.HouseId]; !ok {
			return nil, apperror.UnknownEntry(rating.HouseId.String(), project.CurrentRound)
		}
		final[rating.HouseId] = rating.Rating
	}
	for _, rating := range final {
		if rating == constant.RatingUnset {
			return nil, apperror.ErrIncompleteRating
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	for _, input := range req.Ratings {
		entry := current[input.HouseId]
		entry.Rating = input.Rating
		entry.Notes = input.Notes
		entry.UpdatedAt = &now
		if err := uow.RoundEntryRepository().Update(ctx, entry); err != nil {
			uow.Rollback()
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Fresh ratings change the inferred preferences; rebuild before the
	// next selection so the ranking prompt sees them. Best effort.
	if s.profileService != nil {
		if profile, err := s.profileService.BuildProfile(ctx, project.Id); err != nil {
			s.logger.Warn("RoundService", "Profile rebuild failed, keeping previous profile", map[string]interface{}{
				"project_id": project.Id,
				"error":      err.Error(),
			})
		} else {
			project.Profile = profile
		}
	}

	return s.advance(ctx, uow, project, allEntries)
}

// advance moves a fully rated project to its next state: the next round's
// placements, or completion after the final round or an exhausted pool.
func (s *roundService) advance(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project, allEntries []*entity.RoundEntry) (*dto.RoundResponse, error) {
	if project.CurrentRound >= constant.FinalRound {
		if err := s.complete(ctx, uow, project); err != nil {
			return nil, err
		}
		return s.buildResponse(ctx, uow, project, project.CurrentRound)
	}

	unplaced, err := uow.HouseRepository().FindUnplaced(ctx, project.Id)
	if err != nil {
		return nil, err
	}
	if len(unplaced) == 0 {
		if err := s.complete(ctx, uow, project); err != nil {
			return nil, err
		}
		return s.buildResponse(ctx, uow, project, project.CurrentRound)
	}

	rated, placedIds, err := s.ratedHistory(ctx, uow, allEntries)
	if err != nil {
		return nil, err
	}

	next := project.CurrentRound + 1
	sc := &recommend.SelectionContext{
		Project:   project,
		Round:     next,
		Unplaced:  unplaced,
		Rated:     rated,
		PlacedIds: placedIds,
		Need:      constant.RoundSize,
	}
	selected := s.chain.Select(ctx, sc)

	if err := s.placeRound(ctx, uow, project, next, selected); err != nil {
		return nil, err
	}

	s.afterRoundStarted(ctx, project, next, len(selected))

	return s.buildResponse(ctx, uow, project, next)
}

// ratedHistory joins every rated ledger entry with its house.
func (s *roundService) ratedHistory(ctx context.Context, uow unitofwork.UnitOfWork, allEntries []*entity.RoundEntry) ([]*recommend.RatedEntry, []uuid.UUID, error) {
	placedIds := make([]uuid.UUID, 0, len(allEntries))
	ratedEntries := make([]*entity.RoundEntry, 0, len(allEntries))
	for _, entry := range allEntries {
		placedIds = append(placedIds, entry.HouseId)
		if entry.Rated() {
			ratedEntries = append(ratedEntries, entry)
		}
	}

	if len(ratedEntries) == 0 {
		return nil, placedIds, nil
	}

	ids := make([]uuid.UUID, 0, len(ratedEntries))
	for _, entry := range ratedEntries {
		ids = append(ids, entry.HouseId)
	}
	houses, err := uow.HouseRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, nil, err
	}
	byId := make(map[uuid.UUID]*entity.House, len(houses))
	for _, house := range houses {
		byId[house.Id] = house
	}

	rated := make([]*recommend.RatedEntry, 0, len(ratedEntries))
	for _, entry := range ratedEntries {
		house, ok := byId[entry.HouseId]
		if !ok {
			continue
		}
		rated = append(rated, &recommend.RatedEntry{Entry: entry, House: house})
	}
	return rated, placedIds, nil
}

// placeRound writes the round's ledger entries in one transaction, updating
// the project row alongside. Selection already filtered against the unplaced
// pool; a hit on the placement check means a caller bug, so fail loudly
// instead of silently deduping.
func (s *roundService) placeRound(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project, round int, selected []*entity.House) error {
	selectedIds := make([]uuid.UUID, 0, len(selected))
	for _, house := range selected {
		selectedIds = append(selectedIds, house.Id)
	}

	if len(selectedIds) > 0 {
		placed, err := uow.RoundEntryRepository().FindPlacedHouseIds(ctx, project.Id, selectedIds)
		if err != nil {
			return err
		}
		if len(placed) > 0 {
			return apperror.DuplicatePlacement(placed[0].String())
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if len(selected) > 0 {
		entries := make([]*entity.RoundEntry, 0, len(selected))
		for _, house := range selected {
			entries = append(entries, &entity.RoundEntry{
				Id:        uuid.New(),
				ProjectId: project.Id,
				HouseId:   house.Id,
				Round:     round,
				Rating:    constant.RatingUnset,
				CreatedAt: time.Now(),
			})
		}
		if err := uow.RoundEntryRepository().CreateBulk(ctx, entries); err != nil {
			return err
		}
	}

	now := time.Now()
	project.CurrentRound = round
	project.UpdatedAt = &now
	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *roundService) complete(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project) error {
	now := time.Now()
	project.Completed = true
	project.UpdatedAt = &now
	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewProjectCompleted(project.Id, project.CurrentRound)); err != nil {
			s.logger.Warn("RoundService", "Failed to publish completion event", map[string]interface{}{
				"project_id": project.Id,
				"error":      err.Error(),
			})
		}
	}

	s.logger.Info("RoundService", "Project completed", map[string]interface{}{
		"project_id": project.Id,
		"last_round": project.CurrentRound,
	})
	return nil
}

func (s *roundService) afterRoundStarted(ctx context.Context, project *entity.Project, round int, houseCount int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewRoundStarted(project.Id, round, houseCount)); err != nil {
		s.logger.Warn("RoundService", "Failed to publish round event", map[string]interface{}{
			"project_id": project.Id,
			"round":      round,
			"error":      err.Error(),
		})
	}
}

// buildResponse assembles the round view: entries of the given round joined
// with their houses, in placement order.
func (s *roundService) buildResponse(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project, round int) (*dto.RoundResponse, error) {
	entries, err := uow.RoundEntryRepository().FindByProjectAndRound(ctx, project.Id, round)
	if err != nil {
		return nil, err
	}

	res := &dto.RoundResponse{
		ProjectId: project.Id,
		Round:     round,
		Completed: project.Completed,
		Houses:    make([]dto.RoundHouse, 0, len(entries)),
	}
	if len(entries) == 0 {
		return res, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.HouseId)
	}
	houses, err := uow.HouseRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.House, len(houses))
	for _, house := range houses {
		byId[house.Id] = house
	}

	for _, entry := range entries {
		house, ok := byId[entry.HouseId]
		if !ok {
			continue
		}
		res.Houses = append(res.Houses, dto.RoundHouse{
			HouseId:    house.Id,
			SourceName: house.SourceName,
			Content:    house.Content,
			Summary:    house.Summary,
			Rating:     entry.Rating,
			Notes:      entry.Notes,
		})
	}
	return res, nil
}
