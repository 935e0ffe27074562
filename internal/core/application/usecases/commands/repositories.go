// Package commands contains business operations that modify step state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure outcome and pointer writes land atomically.
type (
	// TxManager handles storage transaction lifecycle.
	// Ensures atomic operations across multiple store calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// StepStateFactory provides access to the step state store within a transaction.
	StepStateFactory interface {
		StepStates() ports.StepStateStore
	}

	// StepUoW manages transactions over step state.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   states := uow.StepStates()
	//   // ... record outcome, move pointer
	//
	//   err = uow.Commit(ctx)
	StepUoW interface {
		TxManager
		StepStateFactory
	}

	// StepUoWFactory creates new step unit of work instances.
	StepUoWFactory interface {
		Create() StepUoW
	}
)
