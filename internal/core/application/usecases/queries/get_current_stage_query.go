// Package queries contains read-side operations over step state.
// Query handlers read through the step state store directly; writes stay in
// the commands package per the CQRS split.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/role"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCurrentStageQueryIsNotConstructed = errors.New(
	"GetCurrentStageQuery must be created via NewGetCurrentStageQuery constructor",
)

// GetCurrentStageQuery retrieves the current-stage pointer together with the
// acting user's role and the stages that role may open.
//
// Example:
//
//	query, _ := NewGetCurrentStageQuery("buyer-7")
//	handler := NewGetCurrentStageQueryHandler(store, resolver, gate, sequencer, graph)
//
//	current, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get current stage: %w", err)
//	}
//	fmt.Printf("%s is at %s\n", current.Role, current.Stage)
type GetCurrentStageQuery struct { //nolint:recvcheck //using for validation
	actor kernel.ActorKey

	guard guard.ConstructorGuard
}

// NewGetCurrentStageQuery creates a query for the given actor.
func NewGetCurrentStageQuery(actor kernel.ActorKey) (GetCurrentStageQuery, error) {
	query := GetCurrentStageQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setActor(actor); err != nil {
		return GetCurrentStageQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCurrentStageQueryIsNotConstructed if validation fails.
func (q GetCurrentStageQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentStageQueryIsNotConstructed)
}

// Actor returns the key of the acting user.
func (q GetCurrentStageQuery) Actor() kernel.ActorKey {
	return q.actor
}

func (q *GetCurrentStageQuery) setActor(actor kernel.ActorKey) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// GetCurrentStageQueryResponse describes where the flow sits for an actor.
type GetCurrentStageQueryResponse struct {
	Stage         stage.Stage
	Role          role.Role
	AllowedStages []stage.Stage
}
