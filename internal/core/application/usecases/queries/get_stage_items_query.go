package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetStageItemsQueryIsNotConstructed = errors.New(
		"GetStageItemsQuery must be created via NewGetStageItemsQuery constructor",
	)
	ErrStageHasNoItemList = errors.New("item lists exist only for sequential stages")
)

// GetStageItemsQuery retrieves the candidate items of a sequential stage for
// an actor, along with which of them are currently accepted and whether the
// list is open for decisions.
//
// Example:
//
//	query, _ := NewGetStageItemsQuery("seller-3", stage.Confirmed)
//	handler := NewGetStageItemsQueryHandler(store, resolver, gate, selection, sequencer, graph)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get stage items: %w", err)
//	}
//	fmt.Printf("%d candidates, locked=%v\n", items.Candidate.Len(), items.Locked)
type GetStageItemsQuery struct { //nolint:recvcheck //using for validation
	actor kernel.ActorKey
	stage stage.Stage

	guard guard.ConstructorGuard
}

// NewGetStageItemsQuery creates an item-list query. The stage must be one of
// the four sequential stages; exception views are served by
// GetExceptionItemsQuery.
func NewGetStageItemsQuery(actor kernel.ActorKey, s stage.Stage) (GetStageItemsQuery, error) {
	query := GetStageItemsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setActor(actor),
		query.setStage(s),
	); err != nil {
		return GetStageItemsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStageItemsQueryIsNotConstructed if validation fails.
func (q GetStageItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetStageItemsQueryIsNotConstructed)
}

// Actor returns the key of the acting user.
func (q GetStageItemsQuery) Actor() kernel.ActorKey {
	return q.actor
}

// Stage returns the sequential stage whose items are requested.
func (q GetStageItemsQuery) Stage() stage.Stage {
	return q.stage
}

func (q *GetStageItemsQuery) setActor(actor kernel.ActorKey) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

func (q *GetStageItemsQuery) setStage(s stage.Stage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.IsSequential() {
		return ErrStageHasNoItemList
	}

	q.stage = s
	return nil
}

// GetStageItemsQueryResponse carries a stage's item list for rendering.
// PreviouslyAccepted is the full candidate set when no decision has been
// recorded yet. Locked means the list renders read-only even for an author.
type GetStageItemsQueryResponse struct {
	Stage              stage.Stage
	Candidate          kernel.KeySet
	PreviouslyAccepted kernel.KeySet
	Locked             bool
	CanDecide          bool
}
