package queries

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetExceptionItemsQueryHandler projects an exception view. The view carries
// no state of its own; its keys are the rejected complement recorded at the
// owning stage.
type GetExceptionItemsQueryHandler struct {
	store     ports.StepStateStore
	resolver  *services.RoleResolver
	gate      *services.PermissionGate
	selection *services.ItemSelectionEngine
	graph     order.Graph
}

// NewGetExceptionItemsQueryHandler creates a handler for exception views.
func NewGetExceptionItemsQueryHandler(
	store ports.StepStateStore,
	resolver *services.RoleResolver,
	gate *services.PermissionGate,
	selection *services.ItemSelectionEngine,
	graph order.Graph,
) GetExceptionItemsQueryHandler {
	return GetExceptionItemsQueryHandler{
		store:     store,
		resolver:  resolver,
		gate:      gate,
		selection: selection,
		graph:     graph,
	}
}

// Handle executes the query. An owning stage with no recorded outcome
// projects an empty view.
func (h GetExceptionItemsQueryHandler) Handle(
	ctx context.Context,
	query GetExceptionItemsQuery,
) (GetExceptionItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetExceptionItemsQueryResponse{}, err
	}

	actorRole, err := h.resolver.Resolve(query.Actor(), h.graph)
	if err != nil {
		return GetExceptionItemsQueryResponse{}, err
	}

	if !h.gate.CanOpen(actorRole, query.View()) {
		return GetExceptionItemsQueryResponse{}, fmt.Errorf(
			"%s at %s: %w", actorRole, query.View(), ErrStageNotOpenable)
	}

	keys, err := h.selection.ExceptionView(ctx, h.store, query.View())
	if err != nil {
		return GetExceptionItemsQueryResponse{}, err
	}

	return GetExceptionItemsQueryResponse{
		View: query.View(),
		Keys: keys,
	}, nil
}
