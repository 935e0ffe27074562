package step

import (
	"errors"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrPointerIsNotConstructed is returned when a Pointer instance was not
	// created through NewPointer.
	ErrPointerIsNotConstructed = errors.New("Pointer must be created via NewPointer")
)

// PointerStatusActive is the status recorded for the stage the flow
// currently sits at. The status field exists for forward compatibility with
// richer pointer states; today every persisted pointer is active.
const PointerStatusActive = "active"

// Pointer is the single source of truth for "where is this order now".
// It is created with the default Review stage on first load, advanced only
// through the sequencer's authorized-transition path, and never decremented.
type Pointer struct {
	stage  stage.Stage
	status string

	guard guard.ConstructorGuard
}

// NewPointer creates an active pointer at the given stage.
func NewPointer(s stage.Stage) (Pointer, error) {
	if err := s.Validate(); err != nil {
		return Pointer{}, err
	}

	return Pointer{
		stage:  s,
		status: PointerStatusActive,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Pointer was created through NewPointer.
func (p Pointer) Validate() error {
	return p.guard.Validate(ErrPointerIsNotConstructed)
}

// Stage returns the stage the pointer sits at.
func (p Pointer) Stage() stage.Stage {
	return p.stage
}

// SequenceNo returns the order number of the pointed-at stage.
func (p Pointer) SequenceNo() int {
	return p.stage.SequenceNo()
}

// Status returns the pointer status, currently always "active".
func (p Pointer) Status() string {
	return p.status
}

// IsEqual compares two pointers by stage and status.
func (p Pointer) IsEqual(other Pointer) bool {
	return p.stage == other.stage && p.status == other.status
}
