package queries

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ErrStageNotOpenable indicates the acting role may not open the requested
// stage.
var ErrStageNotOpenable = errors.New("role may not open this stage")

// GetStageItemsQueryHandler assembles a sequential stage's item list: the
// candidate set for the actor's role, the subset currently accepted, and the
// locked and decidable flags the renderer needs.
type GetStageItemsQueryHandler struct {
	store     ports.StepStateStore
	resolver  *services.RoleResolver
	gate      *services.PermissionGate
	selection *services.ItemSelectionEngine
	sequencer *services.StepSequencer
	graph     order.Graph
}

// NewGetStageItemsQueryHandler creates a handler for stage item lists.
func NewGetStageItemsQueryHandler(
	store ports.StepStateStore,
	resolver *services.RoleResolver,
	gate *services.PermissionGate,
	selection *services.ItemSelectionEngine,
	sequencer *services.StepSequencer,
	graph order.Graph,
) GetStageItemsQueryHandler {
	return GetStageItemsQueryHandler{
		store:     store,
		resolver:  resolver,
		gate:      gate,
		selection: selection,
		sequencer: sequencer,
		graph:     graph,
	}
}

// Handle executes the query.
// The review list locks once the flow has reached dispatch: reopening the
// buyer's selection after goods have shipped would desynchronize every
// later stage.
func (h GetStageItemsQueryHandler) Handle(
	ctx context.Context,
	query GetStageItemsQuery,
) (GetStageItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStageItemsQueryResponse{}, err
	}

	actorRole, err := h.resolver.Resolve(query.Actor(), h.graph)
	if err != nil {
		return GetStageItemsQueryResponse{}, err
	}

	if !h.gate.CanOpen(actorRole, query.Stage()) {
		return GetStageItemsQueryResponse{}, fmt.Errorf(
			"%s at %s: %w", actorRole, query.Stage(), ErrStageNotOpenable)
	}

	candidate, err := h.selection.CandidateSet(
		ctx, h.store, query.Stage(), query.Actor(), actorRole, h.graph)
	if err != nil {
		return GetStageItemsQueryResponse{}, err
	}

	accepted, err := h.selection.PreviouslyAccepted(ctx, h.store, query.Stage(), candidate)
	if err != nil {
		return GetStageItemsQueryResponse{}, err
	}

	pointer, err := h.sequencer.CurrentStage(ctx, h.store)
	if err != nil {
		return GetStageItemsQueryResponse{}, err
	}

	locked := query.Stage() == stage.Review &&
		pointer.SequenceNo() >= stage.Shipped.SequenceNo()

	return GetStageItemsQueryResponse{
		Stage:              query.Stage(),
		Candidate:          candidate,
		PreviouslyAccepted: accepted,
		Locked:             locked,
		CanDecide:          h.gate.CanDecide(actorRole, query.Stage()) && !locked,
	}, nil
}
