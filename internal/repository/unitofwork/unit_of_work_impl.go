package unitofwork

import (
	"context"
	"fmt"

	"ai-homematch-be/internal/repository/contract"
	"ai-homematch-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ProjectRepository() contract.ProjectRepository {
	return implementation.NewProjectRepository(u.getDB())
}

func (u *UnitOfWorkImpl) HouseRepository() contract.HouseRepository {
	return implementation.NewHouseRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RoundEntryRepository() contract.RoundEntryRepository {
	return implementation.NewRoundEntryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) HouseEmbeddingRepository() contract.HouseEmbeddingRepository {
	return implementation.NewHouseEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) InquiryRepository() contract.InquiryRepository {
	return implementation.NewInquiryRepository(u.getDB())
}
