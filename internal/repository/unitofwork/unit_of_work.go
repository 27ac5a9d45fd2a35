package unitofwork

import (
	"context"

	"ai-homematch-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProjectRepository() contract.ProjectRepository
	HouseRepository() contract.HouseRepository
	RoundEntryRepository() contract.RoundEntryRepository
	HouseEmbeddingRepository() contract.HouseEmbeddingRepository
	InquiryRepository() contract.InquiryRepository
}
