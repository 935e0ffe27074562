package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
)

// StepStateStore is the single seam through which all persisted step state
// flows: per-stage outcome records and the current-stage pointer.
//
// Absent records are reported as nil values, not errors; a store
// implementation that finds a stale or corrupt record treats it as absent so
// the flow falls back to defaults instead of failing. Outcome records are
// overwritten in place and never deleted.
type StepStateStore interface {
	// Outcome returns the persisted outcome for a stage, or nil when none
	// has been recorded.
	Outcome(ctx context.Context, s stage.Stage) (*step.Outcome, error)

	// SaveOutcome persists the outcome for a stage, overwriting any prior
	// record.
	SaveOutcome(ctx context.Context, s stage.Stage, outcome step.Outcome) error

	// Pointer returns the persisted current-stage pointer, or nil when none
	// has been recorded.
	Pointer(ctx context.Context) (*step.Pointer, error)

	// SavePointer persists the current-stage pointer, overwriting any prior
	// record.
	SavePointer(ctx context.Context, p step.Pointer) error
}
