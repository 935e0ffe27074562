package services

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/role"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/pkg/errs"
)

// ItemSelectionEngine derives the candidate item set for each stage and
// applies an actor's include/exclude decisions over it.
//
// Candidate sets shrink monotonically through the sequence: each stage
// inherits the prior stage's accepted set, filtered to the acting role's
// ownership. The complements of the decisions feed the exception views.
type ItemSelectionEngine struct{}

// NewItemSelectionEngine creates an engine.
func NewItemSelectionEngine() *ItemSelectionEngine {
	return &ItemSelectionEngine{}
}

// CandidateSet computes the items eligible for decision at a sequential
// stage, for the given actor and role over the order graph.
//
// Per-stage derivation:
//   - Review: items the actor owns in their role (buyer: own orders' items;
//     seller: own items; courier: items assigned for delivery; admin: all).
//   - Confirmed: the acting seller's items intersected with Review's
//     accepted set; a seller never sees items the buyer already dropped.
//     Empty while no Review outcome exists.
//   - Shipped and Delivered: Confirmed's accepted set, what the seller
//     agreed to fulfill.
func (e *ItemSelectionEngine) CandidateSet(
	ctx context.Context,
	store StepStateReader,
	s stage.Stage,
	actor kernel.ActorKey,
	r role.Role,
	graph order.Graph,
) (kernel.KeySet, error) {
	if !s.IsSequential() {
		return kernel.KeySet{}, errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s has no candidate set; it is a projection", s.String()),
		)
	}

	switch s {
	case stage.Review:
		return e.reviewCandidates(actor, r, graph), nil

	case stage.Confirmed:
		reviewOutcome, err := store.Outcome(ctx, stage.Review)
		if err != nil {
			return kernel.KeySet{}, err
		}
		if reviewOutcome == nil {
			return kernel.NewKeySet(), nil
		}

		owned := graph.ItemsOwnedBySeller(actor)
		if r == role.Admin {
			owned = graph.AllItems()
		}
		return owned.Intersect(reviewOutcome.Accepted()), nil

	default: // Shipped, Delivered
		confirmedOutcome, err := store.Outcome(ctx, stage.Confirmed)
		if err != nil {
			return kernel.KeySet{}, err
		}
		if confirmedOutcome == nil {
			return kernel.NewKeySet(), nil
		}
		return confirmedOutcome.Accepted(), nil
	}
}

func (e *ItemSelectionEngine) reviewCandidates(
	actor kernel.ActorKey,
	r role.Role,
	graph order.Graph,
) kernel.KeySet {
	switch r {
	case role.Buyer:
		return graph.ItemsOwnedByBuyer(actor)
	case role.Seller:
		return graph.ItemsOwnedBySeller(actor)
	case role.Courier:
		return graph.ItemsAssignedToCourier(actor)
	case role.Admin:
		return graph.AllItems()
	default:
		return kernel.NewKeySet()
	}
}

// PreviouslyAccepted returns the accepted set of the stage's persisted
// outcome, or the full candidate set when no outcome exists yet: with no
// prior decision, every candidate starts accepted, and excluding an item
// requires an explicit action.
func (e *ItemSelectionEngine) PreviouslyAccepted(
	ctx context.Context,
	store StepStateReader,
	s stage.Stage,
	candidate kernel.KeySet,
) (kernel.KeySet, error) {
	outcome, err := store.Outcome(ctx, s)
	if err != nil {
		return kernel.KeySet{}, err
	}
	if outcome == nil {
		return candidate, nil
	}
	return outcome.Accepted(), nil
}

// ApplyDecision partitions the candidate set by the actor's chosen keys:
// chosen keys are accepted and the complement is rejected. The two sets are
// disjoint and together cover the candidate set exactly.
func (e *ItemSelectionEngine) ApplyDecision(
	candidate, chosen kernel.KeySet,
	decidedAt time.Time,
) (step.Outcome, error) {
	return step.NewOutcome(candidate, chosen, decidedAt)
}

// ExceptionView projects the complement set an exception view displays: the
// rejected keys of the view's owning stage. Absent outcomes project an empty
// set.
func (e *ItemSelectionEngine) ExceptionView(
	ctx context.Context,
	store StepStateReader,
	view stage.Stage,
) (kernel.KeySet, error) {
	owner, err := view.OwningStage()
	if err != nil {
		return kernel.KeySet{}, err
	}

	outcome, err := store.Outcome(ctx, owner)
	if err != nil {
		return kernel.KeySet{}, err
	}
	if outcome == nil {
		return kernel.NewKeySet(), nil
	}
	return outcome.Rejected(), nil
}
