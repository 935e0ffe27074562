package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetCurrentStageQueryHandler derives the current stage for an actor.
// Reads through the step state store without a transaction; the derivation
// never writes.
type GetCurrentStageQueryHandler struct {
	store     ports.StepStateStore
	resolver  *services.RoleResolver
	gate      *services.PermissionGate
	sequencer *services.StepSequencer
	graph     order.Graph
}

// NewGetCurrentStageQueryHandler creates a handler for current-stage lookups.
func NewGetCurrentStageQueryHandler(
	store ports.StepStateStore,
	resolver *services.RoleResolver,
	gate *services.PermissionGate,
	sequencer *services.StepSequencer,
	graph order.Graph,
) GetCurrentStageQueryHandler {
	return GetCurrentStageQueryHandler{
		store:     store,
		resolver:  resolver,
		gate:      gate,
		sequencer: sequencer,
		graph:     graph,
	}
}

// Handle executes the query. The pointer comes from the store when explicit
// and is inferred from recorded outcomes otherwise.
func (h GetCurrentStageQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentStageQuery,
) (GetCurrentStageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentStageQueryResponse{}, err
	}

	actorRole, err := h.resolver.Resolve(query.Actor(), h.graph)
	if err != nil {
		return GetCurrentStageQueryResponse{}, err
	}

	pointer, err := h.sequencer.CurrentStage(ctx, h.store)
	if err != nil {
		return GetCurrentStageQueryResponse{}, err
	}

	return GetCurrentStageQueryResponse{
		Stage:         pointer.Stage(),
		Role:          actorRole,
		AllowedStages: h.gate.AllowedStages(actorRole),
	}, nil
}
