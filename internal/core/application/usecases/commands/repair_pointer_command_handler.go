package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// RepairPointerCommandHandler re-derives and persists the current-stage
// pointer. Invoked from startup and from the recurring repair job.
type RepairPointerCommandHandler struct {
	uowFactory StepUoWFactory
	sequencer  *services.StepSequencer
}

// NewRepairPointerCommandHandler creates a handler for pointer repair.
func NewRepairPointerCommandHandler(
	uowFactory StepUoWFactory,
	sequencer *services.StepSequencer,
) RepairPointerCommandHandler {
	return RepairPointerCommandHandler{
		uowFactory: uowFactory,
		sequencer:  sequencer,
	}
}

// Handle processes the repair command. Idempotent: repairing an already
// explicit pointer rewrites the same value.
func (h *RepairPointerCommandHandler) Handle(ctx context.Context, cmd RepairPointerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := h.sequencer.RepairPointer(ctx, uow.StepStates()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
