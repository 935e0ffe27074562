package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
)

// AdvanceStageCommand represents a request to make a stage the current
// stage. Sequential targets are subject to the strict one-step advance rule;
// exception views activate freely.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	actor  kernel.ActorKey
	target stage.Stage

	guard guard.ConstructorGuard
}

// NewAdvanceStageCommand creates a command moving the current-stage pointer
// to the target stage. Validates the actor key and the target stage.
func NewAdvanceStageCommand(actor kernel.ActorKey, target stage.Stage) (AdvanceStageCommand, error) {
	advanceCommand := AdvanceStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setActor(actor),
		advanceCommand.setTarget(target),
	); err != nil {
		return AdvanceStageCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceStageCommandIsNotConstructed if validation fails.
func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

// Actor returns the key of the actor requesting the advance.
func (c AdvanceStageCommand) Actor() kernel.ActorKey {
	return c.actor
}

// Target returns the stage to activate.
func (c AdvanceStageCommand) Target() stage.Stage {
	return c.target
}

func (c *AdvanceStageCommand) setActor(actor kernel.ActorKey) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AdvanceStageCommand) setTarget(target stage.Stage) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
