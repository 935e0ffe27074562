package stage

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Stage represents one step of the order-fulfillment flow.
//
// The first four stages form a strict forward-only sequence:
//
//	Review(1) ──> Confirmed(2) ──> Shipped(3) ──> Delivered(4)
//
// The remaining three are exception views: read-only projections of the
// complement of an owning stage's decision. They carry order numbers for
// display purposes but are never advanced into through the sequential rule.
//
// Stage is a value object that validates itself and provides the string IDs
// used for persistence and transport.
type Stage int

const (
	// Unknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	Unknown Stage = iota

	// Review is the initial stage: the buyer reviews the order items and
	// keeps or drops each one.
	Review

	// Confirmed is the seller's stage: the seller accepts or rejects the
	// items the buyer kept.
	Confirmed

	// Shipped marks dispatch of the items the seller agreed to fulfill.
	Shipped

	// Delivered is the receipt-confirmation stage: the buyer or courier
	// confirms delivery of exactly what the seller promised.
	Delivered

	// Cancelled is the exception view showing items the buyer dropped
	// during Review.
	Cancelled

	// Rejected is the exception view showing items the seller refused
	// during Confirmed.
	Rejected

	// Returned is the exception view showing items not confirmed as
	// received during Delivered.
	Returned
)

// Wire identifiers, shared with the persisted state and the HTTP surface.
func getStageIDs() map[Stage]string {
	return map[Stage]string{
		Review:    "step-review",
		Confirmed: "step-confirmed",
		Shipped:   "step-shipped",
		Delivered: "step-delivered",
		Cancelled: "step-cancelled",
		Rejected:  "step-rejected",
		Returned:  "step-returned",
	}
}

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		Unknown:   "Unknown",
		Review:    "Review",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Rejected:  "Rejected",
		Returned:  "Returned",
	}
}

// All returns every valid stage in display order: the four sequential stages
// followed by the three exception views.
func All() []Stage {
	return []Stage{Review, Confirmed, Shipped, Delivered, Cancelled, Rejected, Returned}
}

// Sequential returns the four stages subject to the forward-only rule, in order.
func Sequential() []Stage {
	return []Stage{Review, Confirmed, Shipped, Delivered}
}

// FromID parses a wire identifier such as "step-review" back into a Stage.
// Returns an error for unknown identifiers.
func FromID(id string) (Stage, error) {
	for s, sid := range getStageIDs() {
		if sid == id {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"stage id",
		fmt.Errorf("%q is not a known stage id", id),
	)
}

// Validate checks that the Stage value is one of the seven defined stages.
// Unknown (0) and any other values are invalid.
func (s Stage) Validate() error {
	if _, ok := getStageIDs()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%d is not a valid stage", s),
		)
	}
	return nil
}

// String returns the human-readable name of the stage.
// Safe to call on any Stage value, including invalid ones.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ID returns the wire identifier of the stage, e.g. "step-review".
// Returns an empty string for invalid stages.
func (s Stage) ID() string {
	return getStageIDs()[s]
}

// SequenceNo returns the stage's order number. Order numbers are unique and
// dense starting at 1, with the exception views following the sequential
// stages.
func (s Stage) SequenceNo() int {
	return int(s)
}

// IsSequential reports whether the stage is part of the strict
// Review -> Confirmed -> Shipped -> Delivered sequence.
func (s Stage) IsSequential() bool {
	return s >= Review && s <= Delivered
}

// IsExceptionView reports whether the stage is one of the read-only
// complement projections (Cancelled, Rejected, Returned).
func (s Stage) IsExceptionView() bool {
	return s >= Cancelled && s <= Returned
}

// OwningStage returns the sequential stage whose rejected set an exception
// view projects: Cancelled shows Review's complement, Rejected shows
// Confirmed's, Returned shows Delivered's.
//
// Returns an error when called on a non-exception stage.
func (s Stage) OwningStage() (Stage, error) {
	switch s {
	case Cancelled:
		return Review, nil
	case Rejected:
		return Confirmed, nil
	case Returned:
		return Delivered, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not an exception view", s.String()),
		)
	}
}
