package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApplyDecisionCommandIsNotConstructed = errors.New(
		"ApplyDecisionCommand must be created via NewApplyDecisionCommand constructor",
	)
	ErrStageIsNotDecidable = errors.New("decisions can only target a sequential stage")
)

// ApplyDecisionCommand represents an actor's include/exclude decision over a
// stage's candidate items. Chosen keys are accepted; the rest of the
// candidate set is rejected and feeds the stage's exception view.
//
// Example:
//
//	chosen := kernel.KeySetFromStrings([]string{"p-100", "p-200"})
//	cmd, err := NewApplyDecisionCommand("buyer-7", stage.Review, chosen, false)
//	if err != nil {
//	    return fmt.Errorf("invalid decision: %w", err)
//	}
//
//	handler := NewApplyDecisionCommandHandler(uowFactory, resolver, gate, selection, sequencer, graph)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to apply decision: %w", err)
//	}
type ApplyDecisionCommand struct { //nolint:recvcheck //using for validation
	actor         kernel.ActorKey
	stage         stage.Stage
	chosen        kernel.KeySet
	activateStage bool

	guard guard.ConstructorGuard
}

// NewApplyDecisionCommand creates a command recording the actor's decision
// at a stage. Validates that the actor key is present and the stage is one
// of the four sequential stages. An empty chosen set is a valid decision
// that rejects every candidate.
func NewApplyDecisionCommand(
	actor kernel.ActorKey,
	s stage.Stage,
	chosen kernel.KeySet,
	activateStage bool,
) (ApplyDecisionCommand, error) {
	decisionCommand := ApplyDecisionCommand{
		chosen:        chosen,
		activateStage: activateStage,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		decisionCommand.setActor(actor),
		decisionCommand.setStage(s),
	); err != nil {
		return ApplyDecisionCommand{}, err
	}

	return decisionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyDecisionCommandIsNotConstructed if validation fails.
func (c ApplyDecisionCommand) Validate() error {
	return c.guard.Validate(ErrApplyDecisionCommandIsNotConstructed)
}

// Actor returns the key of the actor making the decision.
func (c ApplyDecisionCommand) Actor() kernel.ActorKey {
	return c.actor
}

// Stage returns the sequential stage the decision targets.
func (c ApplyDecisionCommand) Stage() stage.Stage {
	return c.stage
}

// Chosen returns the keys the actor kept accepted.
func (c ApplyDecisionCommand) Chosen() kernel.KeySet {
	return c.chosen
}

// ActivateStage reports whether the decision also requests that the decided
// stage become the current stage.
func (c ApplyDecisionCommand) ActivateStage() bool {
	return c.activateStage
}

func (c *ApplyDecisionCommand) setActor(actor kernel.ActorKey) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ApplyDecisionCommand) setStage(s stage.Stage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.IsSequential() {
		return ErrStageIsNotDecidable
	}

	c.stage = s
	return nil
}
