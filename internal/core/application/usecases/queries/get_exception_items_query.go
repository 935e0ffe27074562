package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetExceptionItemsQueryIsNotConstructed = errors.New(
		"GetExceptionItemsQuery must be created via NewGetExceptionItemsQuery constructor",
	)
	ErrStageIsNotExceptionView = errors.New("stage is not an exception view")
)

// GetExceptionItemsQuery retrieves the complement items an exception view
// displays: the keys rejected at the view's owning stage.
type GetExceptionItemsQuery struct { //nolint:recvcheck //using for validation
	actor kernel.ActorKey
	view  stage.Stage

	guard guard.ConstructorGuard
}

// NewGetExceptionItemsQuery creates an exception-view query. The view must
// be Cancelled, Rejected, or Returned.
func NewGetExceptionItemsQuery(actor kernel.ActorKey, view stage.Stage) (GetExceptionItemsQuery, error) {
	query := GetExceptionItemsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setActor(actor),
		query.setView(view),
	); err != nil {
		return GetExceptionItemsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetExceptionItemsQueryIsNotConstructed if validation fails.
func (q GetExceptionItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetExceptionItemsQueryIsNotConstructed)
}

// Actor returns the key of the acting user.
func (q GetExceptionItemsQuery) Actor() kernel.ActorKey {
	return q.actor
}

// View returns the exception view being opened.
func (q GetExceptionItemsQuery) View() stage.Stage {
	return q.view
}

func (q *GetExceptionItemsQuery) setActor(actor kernel.ActorKey) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

func (q *GetExceptionItemsQuery) setView(view stage.Stage) error {
	if err := view.Validate(); err != nil {
		return err
	}
	if !view.IsExceptionView() {
		return ErrStageIsNotExceptionView
	}

	q.view = view
	return nil
}

// GetExceptionItemsQueryResponse carries an exception view's complement
// keys. The list is always read-only.
type GetExceptionItemsQueryResponse struct {
	View stage.Stage
	Keys kernel.KeySet
}
