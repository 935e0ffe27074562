package step

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOutcomeIsNotConstructed is returned when an Outcome instance was not
	// created through NewOutcome or RestoreOutcome.
	ErrOutcomeIsNotConstructed = errors.New("Outcome must be created via NewOutcome or RestoreOutcome")
)

// Outcome is the persisted record of one stage's decision: the subset of the
// stage's candidate items the actor accepted, and the complement the actor
// implicitly rejected.
//
// Outcome maintains the closed-world invariant of the decision model:
//
//	accepted ∪ rejected == candidate set at the moment of the decision
//	accepted ∩ rejected == ∅
//
// Outcomes are created the first time an actor decides a stage, overwritten
// in place on every subsequent toggle, and never deleted; the accumulated
// records form the audit trail the exception views are projected from.
type Outcome struct {
	accepted  kernel.KeySet
	rejected  kernel.KeySet
	decidedAt time.Time

	guard guard.ConstructorGuard
}

// NewOutcome records a decision over a candidate set. Every candidate key the
// actor chose goes to the accepted set and the complement to the rejected
// set; anything not explicitly chosen is rejected.
//
// Returns an error when chosen contains keys outside the candidate set.
func NewOutcome(candidate, chosen kernel.KeySet, decidedAt time.Time) (Outcome, error) {
	if !chosen.IsSubsetOf(candidate) {
		return Outcome{}, errs.NewValueIsInvalidErrorWithCause(
			"chosen keys",
			fmt.Errorf("chosen keys %v are not a subset of the candidate set %v",
				chosen.Strings(), candidate.Strings()),
		)
	}

	return Outcome{
		accepted:  chosen,
		rejected:  candidate.Subtract(chosen),
		decidedAt: decidedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreOutcome reconstructs an Outcome from persistence. The stored sets
// must still be disjoint; overlapping sets indicate a corrupt record and are
// rejected rather than repaired.
func RestoreOutcome(accepted, rejected kernel.KeySet, decidedAt time.Time) (Outcome, error) {
	if !accepted.IsDisjointFrom(rejected) {
		return Outcome{}, errs.NewValueIsInvalidErrorWithCause(
			"outcome sets",
			fmt.Errorf("accepted %v and rejected %v overlap", accepted.Strings(), rejected.Strings()),
		)
	}

	return Outcome{
		accepted:  accepted,
		rejected:  rejected,
		decidedAt: decidedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Outcome was created through a constructor.
func (o Outcome) Validate() error {
	return o.guard.Validate(ErrOutcomeIsNotConstructed)
}

// Accepted returns the keys the actor kept.
func (o Outcome) Accepted() kernel.KeySet {
	return o.accepted
}

// Rejected returns the complement: candidate keys the actor did not keep.
func (o Outcome) Rejected() kernel.KeySet {
	return o.rejected
}

// Candidate returns the full set the decision partitioned,
// i.e. accepted ∪ rejected.
func (o Outcome) Candidate() kernel.KeySet {
	return o.accepted.Union(o.rejected)
}

// DecidedAt returns the time of the last toggle that produced this record.
func (o Outcome) DecidedAt() time.Time {
	return o.decidedAt
}
