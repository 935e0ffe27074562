package memstore

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/core/ports"
)

// ErrNoActiveTransaction is returned when Commit or Rollback runs without a
// preceding Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates in-memory UnitOfWork instances over a shared
// store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory over the given store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a fresh UnitOfWork with no open transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork implements transactions over the in-memory store by taking a
// snapshot on Begin and restoring it on Rollback. Writes apply to the store
// immediately; Commit just drops the snapshot.
type UnitOfWork struct {
	store *Store

	active           bool
	snapshotOutcomes map[stage.Stage]step.Outcome
	snapshotPointer  *step.Pointer
}

// Begin snapshots the store. Repeated calls are no-ops.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.snapshotOutcomes, uow.snapshotPointer = uow.store.snapshot()
	uow.active = true
	return nil
}

// Commit keeps all writes made since Begin.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.active = false
	uow.snapshotOutcomes = nil
	uow.snapshotPointer = nil
	return nil
}

// Rollback restores the store to its state at Begin.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.store.restore(uow.snapshotOutcomes, uow.snapshotPointer)
	uow.active = false
	uow.snapshotOutcomes = nil
	uow.snapshotPointer = nil
	return nil
}

// StepStates returns the store the transaction operates on.
func (uow *UnitOfWork) StepStates() ports.StepStateStore {
	return uow.store
}
