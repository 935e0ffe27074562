// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern over step state. A unit of work wraps one database
// transaction so an outcome and the re-derived pointer land atomically, or
// not at all.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db, scope)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	states := uow.StepStates()
//	if err := states.SaveOutcome(ctx, stage.Review, outcome); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds its own transaction; concurrent operations
// must use separate instances from the factory.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/steprepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using a shared GORM
// database connection. Every instance reads and writes the given scope.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	scope string
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB, scope string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, scope: scope}
}

// Create produces a fresh UnitOfWork with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:    f.db,
		scope: f.scope,
	}
}

// GormUnitOfWork coordinates one database transaction over step state.
// Repeated Begin calls on the same instance are no-ops; Commit and Rollback
// close the transaction and the instance must not be reused afterwards.
type GormUnitOfWork struct {
	db    *gorm.DB
	tx    *gorm.DB
	scope string
}

// Begin initiates a new database transaction for the unit of work.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// StepStates returns a step state store bound to the current transaction,
// or to the main connection when no transaction is active.
func (uow *GormUnitOfWork) StepStates() ports.StepStateStore {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return steprepo.NewGormStepStateRepository(db, uow.scope)
}
