package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ErrStageNotPermitted indicates the acting role may not open the requested
// stage at all.
var ErrStageNotPermitted = errors.New("role may not open this stage")

// AdvanceStageCommandHandler handles explicit pointer moves. The sequential
// advance rule lives in the sequencer; this handler adds the role check and
// the transaction boundary.
type AdvanceStageCommandHandler struct {
	uowFactory StepUoWFactory
	resolver   *services.RoleResolver
	gate       *services.PermissionGate
	sequencer  *services.StepSequencer
	graph      order.Graph
}

// NewAdvanceStageCommandHandler creates a handler for stage activation.
func NewAdvanceStageCommandHandler(
	uowFactory StepUoWFactory,
	resolver *services.RoleResolver,
	gate *services.PermissionGate,
	sequencer *services.StepSequencer,
	graph order.Graph,
) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		gate:       gate,
		sequencer:  sequencer,
		graph:      graph,
	}
}

// Handle processes the advance command.
// The target must be openable by the actor's role. A rejected advance leaves
// the pointer untouched and surfaces the sequencer's reason.
func (h *AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actorRole, err := h.resolver.Resolve(cmd.Actor(), h.graph)
	if err != nil {
		return err
	}

	if !h.gate.CanOpen(actorRole, cmd.Target()) {
		return fmt.Errorf("%s at %s: %w", actorRole, cmd.Target(), ErrStageNotPermitted)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = h.sequencer.RequestAdvance(ctx, uow.StepStates(), cmd.Target()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
