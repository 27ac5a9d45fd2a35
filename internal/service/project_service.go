package service

import (
	"context"
	"time"

	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProjectService interface {
	GetAll(ctx context.Context) ([]*dto.ListProjectItem, error)
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error)
	Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.UpdateProjectResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory) IProjectService {
	return &projectService{
		uowFactory: uowFactory,
	}
}

func (s *projectService) GetAll(ctx context.Context) ([]*dto.ListProjectItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ListProjectItem, 0, len(projects))
	for _, project := range projects {
		result = append(result, &dto.ListProjectItem{
			Id:           project.Id,
			Name:         project.Name,
			CurrentRound: project.CurrentRound,
			Completed:    project.Completed,
			CreatedAt:    project.CreatedAt,
		})
	}
	return result, nil
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project := entity.Project{
		Id:           uuid.New(),
		Name:         req.Name,
		Requirements: req.Requirements,
		AgentEmail:   req.AgentEmail,
		CurrentRound: 0,
		CreatedAt:    time.Now(),
	}

	err := uow.ProjectRepository().Create(ctx, &project)
	if err != nil {
		return nil, err
	}

	return &dto.CreateProjectResponse{
		Id: project.Id,
	}, nil
}

func (s *projectService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrProjectNotFound
	}

	houseCount, err := uow.HouseRepository().Count(ctx, specification.ByProjectID{ProjectID: id})
	if err != nil {
		return nil, err
	}

	return &dto.ShowProjectResponse{
		Id:           project.Id,
		Name:         project.Name,
		Requirements: project.Requirements,
		Profile:      project.Profile,
		CurrentRound: project.CurrentRound,
		Completed:    project.Completed,
		AgentEmail:   project.AgentEmail,
		HouseCount:   houseCount,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
	}, nil
}

func (s *projectService) Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.UpdateProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrProjectNotFound
	}

	now := time.Now()
	project.Name = req.Name
	project.Requirements = req.Requirements
	project.AgentEmail = req.AgentEmail
	project.UpdatedAt = &now

	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}

	return &dto.UpdateProjectResponse{
		Id: project.Id,
	}, nil
}

// Delete removes the project and everything hanging off it: round entries,
// embeddings, houses. One transaction so a crash never strands orphans.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if project == nil {
		return apperror.ErrProjectNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RoundEntryRepository().DeleteByProjectId(ctx, id); err != nil {
		return err
	}
	if err := uow.HouseEmbeddingRepository().DeleteByProjectId(ctx, id); err != nil {
		return err
	}
	if err := uow.HouseRepository().DeleteByProjectId(ctx, id); err != nil {
		return err
	}
	if err := uow.ProjectRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
