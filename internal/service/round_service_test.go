package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/repository/contract"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/pkg/recommend"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a single in-memory backing shared by every fake repository,
// so transactional wiring stays out of the way and tests assert on state.
type fakeStore struct {
	mu        sync.Mutex
	projects  map[uuid.UUID]*entity.Project
	houses    map[uuid.UUID]*entity.House
	entries   []*entity.RoundEntry
	inquiries map[uuid.UUID]*entity.Inquiry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects:  make(map[uuid.UUID]*entity.Project),
		houses:    make(map[uuid.UUID]*entity.House),
		inquiries: make(map[uuid.UUID]*entity.Inquiry),
	}
}

type fakeUow struct {
	store *fakeStore
}

func (f *fakeUow) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f }

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) ProjectRepository() contract.ProjectRepository {
	return &fakeProjectRepo{store: f.store}
}
func (f *fakeUow) HouseRepository() contract.HouseRepository {
	return &fakeHouseRepo{store: f.store}
}
func (f *fakeUow) RoundEntryRepository() contract.RoundEntryRepository {
	return &fakeRoundEntryRepo{store: f.store}
}
func (f *fakeUow) HouseEmbeddingRepository() contract.HouseEmbeddingRepository { return nil }
func (f *fakeUow) InquiryRepository() contract.InquiryRepository {
	return &fakeInquiryRepo{store: f.store}
}

type fakeInquiryRepo struct{ store *fakeStore }

func (r *fakeInquiryRepo) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.inquiries[inquiry.Id] = inquiry
	return nil
}

func (r *fakeInquiryRepo) Update(ctx context.Context, inquiry *entity.Inquiry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.inquiries[inquiry.Id] = inquiry
	return nil
}

func (r *fakeInquiryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Inquiry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range specs {
		if sp, ok := s.(specification.ByExternalID); ok {
			for _, inq := range r.store.inquiries {
				if inq.ExternalId == sp.ExternalID {
					return inq, nil
				}
			}
			return nil, nil
		}
	}
	return nil, errors.New("fake: unsupported query")
}

func (r *fakeInquiryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Inquiry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Inquiry, 0, len(r.store.inquiries))
	for _, inq := range r.store.inquiries {
		all = append(all, inq)
	}
	return all, nil
}

// idFilter digs the ByID / ByIDs specs out of a spec list; the fakes only
// understand those two.
func idFilter(specs []specification.Specification) (single *uuid.UUID, multi []uuid.UUID) {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			id := sp.ID
			single = &id
		case specification.ByIDs:
			multi = sp.IDs
		}
	}
	return
}

type fakeProjectRepo struct{ store *fakeStore }

func (r *fakeProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.projects[project.Id] = project
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.projects[project.Id] = project
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.projects, id)
	return nil
}

func (r *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	single, _ := idFilter(specs)
	if single == nil {
		return nil, errors.New("fake: unsupported query")
	}
	return r.store.projects[*single], nil
}

func (r *fakeProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Project, 0, len(r.store.projects))
	for _, p := range r.store.projects {
		all = append(all, p)
	}
	return all, nil
}

func (r *fakeProjectRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.projects)), nil
}

type fakeHouseRepo struct{ store *fakeStore }

func (r *fakeHouseRepo) Create(ctx context.Context, house *entity.House) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.houses[house.Id] = house
	return nil
}

func (r *fakeHouseRepo) CreateBulk(ctx context.Context, houses []*entity.House) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, h := range houses {
		r.store.houses[h.Id] = h
	}
	return nil
}

func (r *fakeHouseRepo) Update(ctx context.Context, house *entity.House) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.houses[house.Id] = house
	return nil
}

func (r *fakeHouseRepo) DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, h := range r.store.houses {
		if h.ProjectId == projectId {
			delete(r.store.houses, id)
		}
	}
	return nil
}

func (r *fakeHouseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.House, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	single, _ := idFilter(specs)
	if single == nil {
		return nil, errors.New("fake: unsupported query")
	}
	return r.store.houses[*single], nil
}

func (r *fakeHouseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.House, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, multi := idFilter(specs)
	result := make([]*entity.House, 0)
	if multi != nil {
		for _, id := range multi {
			if h, ok := r.store.houses[id]; ok {
				result = append(result, h)
			}
		}
		return result, nil
	}
	for _, h := range r.store.houses {
		result = append(result, h)
	}
	return result, nil
}

func (r *fakeHouseRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.houses)), nil
}

func (r *fakeHouseRepo) FindUnplaced(ctx context.Context, projectId uuid.UUID) ([]*entity.House, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	placed := make(map[uuid.UUID]bool, len(r.store.entries))
	for _, e := range r.store.entries {
		if e.ProjectId == projectId {
			placed[e.HouseId] = true
		}
	}
	result := make([]*entity.House, 0)
	for _, h := range r.store.houses {
		if h.ProjectId == projectId && !placed[h.Id] {
			result = append(result, h)
		}
	}
	return result, nil
}

func (r *fakeHouseRepo) CountDistinctSources(ctx context.Context, projectId uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sources := make(map[string]bool)
	for _, h := range r.store.houses {
		if h.ProjectId == projectId {
			sources[h.SourceName] = true
		}
	}
	return int64(len(sources)), nil
}

type fakeRoundEntryRepo struct{ store *fakeStore }

func (r *fakeRoundEntryRepo) CreateBulk(ctx context.Context, entries []*entity.RoundEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range entries {
		for _, existing := range r.store.entries {
			if existing.ProjectId == e.ProjectId && existing.HouseId == e.HouseId {
				return fmt.Errorf("duplicate key: house %s", e.HouseId)
			}
		}
		r.store.entries = append(r.store.entries, e)
	}
	return nil
}

func (r *fakeRoundEntryRepo) Update(ctx context.Context, entry *entity.RoundEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, e := range r.store.entries {
		if e.Id == entry.Id {
			r.store.entries[i] = entry
			return nil
		}
	}
	return errors.New("fake: entry not found")
}

func (r *fakeRoundEntryRepo) DeleteByProjectId(ctx context.Context, projectId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.entries[:0]
	for _, e := range r.store.entries {
		if e.ProjectId != projectId {
			kept = append(kept, e)
		}
	}
	r.store.entries = kept
	return nil
}

func (r *fakeRoundEntryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoundEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.RoundEntry(nil), r.store.entries...), nil
}

func (r *fakeRoundEntryRepo) FindByProjectAndRound(ctx context.Context, projectId uuid.UUID, round int) ([]*entity.RoundEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.RoundEntry, 0)
	for _, e := range r.store.entries {
		if e.ProjectId == projectId && e.Round == round {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeRoundEntryRepo) FindAllByProject(ctx context.Context, projectId uuid.UUID) ([]*entity.RoundEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.RoundEntry, 0)
	for _, e := range r.store.entries {
		if e.ProjectId == projectId {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeRoundEntryRepo) FindPlacedHouseIds(ctx context.Context, projectId uuid.UUID, houseIds []uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(houseIds))
	for _, id := range houseIds {
		wanted[id] = true
	}
	result := make([]uuid.UUID, 0)
	for _, e := range r.store.entries {
		if e.ProjectId == projectId && wanted[e.HouseId] {
			result = append(result, e.HouseId)
		}
	}
	return result, nil
}

func seedProject(store *fakeStore, houseCount int) *entity.Project {
	project := &entity.Project{
		Id:        uuid.New(),
		Name:      "Tanaka family",
		CreatedAt: time.Now(),
	}
	store.projects[project.Id] = project
	for i := 0; i < houseCount; i++ {
		h := &entity.House{
			Id:         uuid.New(),
			ProjectId:  project.Id,
			SourceName: "suumo-export.pdf",
			Content:    fmt.Sprintf("Listing %d: 2LDK near the station", i),
			CreatedAt:  time.Now(),
		}
		store.houses[h.Id] = h
	}
	return project
}

func newTestRoundService(store *fakeStore) IRoundService {
	chain := recommend.NewChain(
		logger.NewNopLogger(),
		recommend.NewRandomStrategyWithSeed(42),
	)
	return NewRoundService(&fakeUow{store: store}, chain, nil, nil, logger.NewNopLogger())
}

func rateAll(t *testing.T, svc IRoundService, projectId uuid.UUID, res *dto.RoundResponse, rating string) *dto.RoundResponse {
	t.Helper()
	req := &dto.SubmitRatingsRequest{ProjectId: projectId}
	for _, h := range res.Houses {
		req.Ratings = append(req.Ratings, dto.RatingInput{HouseId: h.HouseId, Rating: rating})
	}
	next, err := svc.SubmitRatings(context.Background(), req)
	require.NoError(t, err)
	return next
}

func TestStartInitialRoundCapsAtRoundSize(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 25)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Round)
	assert.False(t, res.Completed)
	assert.Len(t, res.Houses, constant.RoundSize)
	for _, h := range res.Houses {
		assert.Empty(t, h.Rating)
	}
}

func TestStartInitialRoundShortPool(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 4)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)
	assert.Len(t, res.Houses, 4)
}

func TestStartInitialRoundTwiceRejected(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 12)
	svc := newTestRoundService(store)

	_, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)

	_, err = svc.StartInitialRound(context.Background(), project.Id)
	assert.ErrorIs(t, err, apperror.ErrRoundAlreadyStarted)
}

func TestStartInitialRoundUnknownProject(t *testing.T) {
	svc := newTestRoundService(newFakeStore())

	_, err := svc.StartInitialRound(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)
}

func TestSubmitRatingsIncompleteRejected(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 15)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)
	require.Len(t, res.Houses, constant.RoundSize)

	// Rate all but one.
	req := &dto.SubmitRatingsRequest{ProjectId: project.Id}
	for _, h := range res.Houses[:constant.RoundSize-1] {
		req.Ratings = append(req.Ratings, dto.RatingInput{HouseId: h.HouseId, Rating: constant.RatingNeutral})
	}
	_, err = svc.SubmitRatings(context.Background(), req)
	assert.ErrorIs(t, err, apperror.ErrIncompleteRating)

	// Nothing moved: same round, still unrated.
	current, err := svc.GetCurrentRound(context.Background(), project.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Round)
	for _, h := range current.Houses {
		assert.Empty(t, h.Rating)
	}
}

func TestSubmitRatingsUnknownHouseRejected(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 15)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)

	req := &dto.SubmitRatingsRequest{ProjectId: project.Id}
	for _, h := range res.Houses {
		req.Ratings = append(req.Ratings, dto.RatingInput{HouseId: h.HouseId, Rating: constant.RatingInterested})
	}
	// One rating for a house never offered.
	req.Ratings = append(req.Ratings, dto.RatingInput{HouseId: uuid.New(), Rating: constant.RatingNeutral})

	_, err = svc.SubmitRatings(context.Background(), req)
	assert.ErrorIs(t, err, apperror.ErrUnknownEntry)
}

func TestFullWalkthroughPoolExhaustsEarly(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 25)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)
	require.Len(t, res.Houses, 10)

	// Round 0 -> 1: another full 10.
	res = rateAll(t, svc, project.Id, res, constant.RatingNeutral)
	assert.Equal(t, 1, res.Round)
	assert.Len(t, res.Houses, 10)

	// Round 1 -> 2: only 5 remain.
	res = rateAll(t, svc, project.Id, res, constant.RatingInterested)
	assert.Equal(t, 2, res.Round)
	assert.Len(t, res.Houses, 5)

	// Rating the short round drains the pool: the project completes early,
	// no round 3 is created.
	res = rateAll(t, svc, project.Id, res, constant.RatingNotInterested)
	assert.True(t, res.Completed)
	assert.Equal(t, 2, res.Round)

	seen := make(map[uuid.UUID]bool)
	for _, e := range store.entries {
		assert.False(t, seen[e.HouseId], "house %s placed twice", e.HouseId)
		seen[e.HouseId] = true
	}
	assert.Len(t, store.entries, 25)

	_, err = svc.SubmitRatings(context.Background(), &dto.SubmitRatingsRequest{
		ProjectId: project.Id,
		Ratings:   []dto.RatingInput{{HouseId: res.Houses[0].HouseId, Rating: constant.RatingNeutral}},
	})
	assert.ErrorIs(t, err, apperror.ErrProjectCompleted)
}

func TestFinalRoundCompletesProject(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 60)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)

	for round := 0; round < constant.FinalRound; round++ {
		res = rateAll(t, svc, project.Id, res, constant.RatingNeutral)
		assert.Equal(t, round+1, res.Round)
		assert.Len(t, res.Houses, constant.RoundSize)
	}

	// Rating the final round terminates the project; no round 4 exists.
	res = rateAll(t, svc, project.Id, res, constant.RatingInterested)
	assert.True(t, res.Completed)
	assert.Equal(t, constant.FinalRound, res.Round)
	assert.Len(t, store.entries, constant.RoundSize*(constant.FinalRound+1))
	for _, e := range store.entries {
		assert.LessOrEqual(t, e.Round, constant.FinalRound)
	}
}

func TestGetCurrentRoundShowsSubmittedRatings(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 10)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)
	require.Len(t, res.Houses, 10)

	// 10 houses, all placed in round 0: rating them exhausts the pool.
	rateAll(t, svc, project.Id, res, constant.RatingInterested)

	current, err := svc.GetCurrentRound(context.Background(), project.Id)
	require.NoError(t, err)
	assert.True(t, current.Completed)
	for _, h := range current.Houses {
		assert.Equal(t, constant.RatingInterested, h.Rating)
	}
}

func TestSubmitRatingsKeepsNotes(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 12)
	svc := newTestRoundService(store)

	res, err := svc.StartInitialRound(context.Background(), project.Id)
	require.NoError(t, err)

	req := &dto.SubmitRatingsRequest{ProjectId: project.Id}
	for i, h := range res.Houses {
		input := dto.RatingInput{HouseId: h.HouseId, Rating: constant.RatingNeutral}
		if i == 0 {
			input.Rating = constant.RatingInterested
			input.Notes = "loves the balcony"
		}
		req.Ratings = append(req.Ratings, input)
	}
	_, err = svc.SubmitRatings(context.Background(), req)
	require.NoError(t, err)

	noted := 0
	for _, e := range store.entries {
		if e.Notes == "loves the balcony" {
			noted++
			assert.Equal(t, constant.RatingInterested, e.Rating)
		}
	}
	assert.Equal(t, 1, noted)
}
