package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ErrDecisionNotPermitted indicates the acting role may not author a
// decision at the requested stage.
var ErrDecisionNotPermitted = errors.New("role may not decide at this stage")

// ApplyDecisionCommandHandler handles the business logic for recording an
// item decision. Partitions the stage's candidate set by the chosen keys and
// persists the resulting outcome together with the re-derived current-stage
// pointer in a single transaction.
//
// Example:
//
//	handler := NewApplyDecisionCommandHandler(uowFactory, resolver, gate, selection, sequencer, graph)
//	cmd, _ := NewApplyDecisionCommand("seller-3", stage.Confirmed, chosen, true)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("decision failed: %w", err)
//	}
//	// Outcome recorded; Confirmed is now the current stage
type ApplyDecisionCommandHandler struct {
	uowFactory StepUoWFactory
	resolver   *services.RoleResolver
	gate       *services.PermissionGate
	selection  *services.ItemSelectionEngine
	sequencer  *services.StepSequencer
	graph      order.Graph

	now func() time.Time
}

// NewApplyDecisionCommandHandler creates a handler for decision operations.
// The order graph is the process-wide graph loaded at startup.
func NewApplyDecisionCommandHandler(
	uowFactory StepUoWFactory,
	resolver *services.RoleResolver,
	gate *services.PermissionGate,
	selection *services.ItemSelectionEngine,
	sequencer *services.StepSequencer,
	graph order.Graph,
) ApplyDecisionCommandHandler {
	return ApplyDecisionCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		gate:       gate,
		selection:  selection,
		sequencer:  sequencer,
		graph:      graph,
		now:        time.Now,
	}
}

// Handle processes the decision command.
// Resolves the actor's role, checks decision authorship, derives the
// candidate set inside the transaction, and persists outcome and pointer
// atomically. When the command requests activation, the pointer moves
// through the sequential advance rule; otherwise the current pointer is
// re-derived and persisted as-is.
func (h *ApplyDecisionCommandHandler) Handle(ctx context.Context, cmd ApplyDecisionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actorRole, err := h.resolver.Resolve(cmd.Actor(), h.graph)
	if err != nil {
		return err
	}

	if !h.gate.CanDecide(actorRole, cmd.Stage()) {
		return fmt.Errorf("%s at %s: %w", actorRole, cmd.Stage(), ErrDecisionNotPermitted)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	states := uow.StepStates()

	candidate, err := h.selection.CandidateSet(ctx, states, cmd.Stage(), cmd.Actor(), actorRole, h.graph)
	if err != nil {
		return err
	}

	outcome, err := h.selection.ApplyDecision(candidate, cmd.Chosen(), h.now().UTC())
	if err != nil {
		return err
	}

	if err = states.SaveOutcome(ctx, cmd.Stage(), outcome); err != nil {
		return err
	}

	if cmd.ActivateStage() {
		if _, err = h.sequencer.RequestAdvance(ctx, states, cmd.Stage()); err != nil {
			return err
		}
	} else if _, err = h.sequencer.RepairPointer(ctx, states); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
