package services

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
)

var (
	// ErrCannotReturnToPriorStage is returned when an advance targets the
	// current stage or one before it. The pointer is never decremented.
	ErrCannotReturnToPriorStage = errors.New("cannot return to a prior stage")

	// ErrMustAdvanceInOrder is returned when an advance skips ahead of the
	// next stage in the sequence.
	ErrMustAdvanceInOrder = errors.New("stages must be activated in order")
)

// StepStateReader provides the read access the sequencer needs over
// persisted step state. ports.StepStateStore satisfies it.
type StepStateReader interface {
	// Outcome returns the persisted outcome for a stage, or nil when none
	// has been recorded.
	Outcome(ctx context.Context, s stage.Stage) (*step.Outcome, error)

	// Pointer returns the persisted current-stage pointer, or nil when none
	// has been recorded.
	Pointer(ctx context.Context) (*step.Pointer, error)
}

// StepStateWriter extends the reader with pointer persistence, the only
// write the sequencer performs.
type StepStateWriter interface {
	StepStateReader
	SavePointer(ctx context.Context, p step.Pointer) error
}

// StepSequencer computes and advances the current-stage pointer.
//
// The pointer is the single source of truth for where the flow sits. The
// sequencer enforces the strict sequential rule on the four basic stages: a
// requested stage must be exactly one past the current one; both skipping
// ahead and moving backward are rejected with distinguishing reasons.
// Exception views are exempt; they are projections, not progressions.
//
// The advance guard is advisory-protective: it prevents operator error, not
// malicious tampering. It is enforced purely by re-reading current state
// before each write.
type StepSequencer struct{}

// NewStepSequencer creates a sequencer.
func NewStepSequencer() *StepSequencer {
	return &StepSequencer{}
}

// CurrentStage derives the current-stage pointer from the store.
//
// The persisted pointer wins when present. Otherwise the pointer is inferred
// from which outcomes exist, furthest first: a Delivered outcome puts the
// flow at Delivered, a Confirmed outcome at Shipped (the confirmed work is
// pending dispatch), a Review outcome at Confirmed (the reviewed order is
// pending the seller). With no persisted state at all, the flow defaults to
// Review. This reconstructs a sane pointer after partial failures.
func (sq *StepSequencer) CurrentStage(ctx context.Context, store StepStateReader) (step.Pointer, error) {
	saved, err := store.Pointer(ctx)
	if err != nil {
		return step.Pointer{}, err
	}
	if saved != nil {
		return *saved, nil
	}

	inferred := []struct {
		outcome stage.Stage
		implies stage.Stage
	}{
		{stage.Delivered, stage.Delivered},
		{stage.Confirmed, stage.Shipped},
		{stage.Review, stage.Confirmed},
	}

	for _, rule := range inferred {
		outcome, outcomeErr := store.Outcome(ctx, rule.outcome)
		if outcomeErr != nil {
			return step.Pointer{}, outcomeErr
		}
		if outcome != nil {
			return step.NewPointer(rule.implies)
		}
	}

	return step.NewPointer(stage.Review)
}

// RepairPointer derives the current stage and persists it, making the
// inferred pointer explicit. Run once at startup so the inference never sits
// on the hot path.
func (sq *StepSequencer) RepairPointer(ctx context.Context, store StepStateWriter) (step.Pointer, error) {
	p, err := sq.CurrentStage(ctx, store)
	if err != nil {
		return step.Pointer{}, err
	}

	if err = store.SavePointer(ctx, p); err != nil {
		return step.Pointer{}, err
	}
	return p, nil
}

// RequestAdvance moves the pointer to the target stage.
//
// For the four sequential stages the target's order number must equal the
// current order plus one: targets at or before the current stage fail with
// ErrCannotReturnToPriorStage, targets further ahead fail with
// ErrMustAdvanceInOrder, and in both cases the pointer is unchanged.
// Exception-view targets bypass the rule entirely.
//
// On success the new pointer is persisted and becomes the current stage.
func (sq *StepSequencer) RequestAdvance(
	ctx context.Context,
	store StepStateWriter,
	target stage.Stage,
) (step.Pointer, error) {
	if err := target.Validate(); err != nil {
		return step.Pointer{}, err
	}

	if target.IsSequential() {
		current, err := sq.CurrentStage(ctx, store)
		if err != nil {
			return step.Pointer{}, err
		}

		requested, active := target.SequenceNo(), current.SequenceNo()
		if requested != active+1 {
			if requested <= active {
				return step.Pointer{}, fmt.Errorf(
					"advance from %s to %s: %w", current.Stage(), target, ErrCannotReturnToPriorStage)
			}
			return step.Pointer{}, fmt.Errorf(
				"advance from %s to %s: %w", current.Stage(), target, ErrMustAdvanceInOrder)
		}
	}

	p, err := step.NewPointer(target)
	if err != nil {
		return step.Pointer{}, err
	}

	if err = store.SavePointer(ctx, p); err != nil {
		return step.Pointer{}, err
	}
	return p, nil
}
