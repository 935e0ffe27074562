package ports

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
)

// Decision is what a presenter returns from an interactive item selection.
type Decision struct {
	// Chosen holds the keys the actor kept accepted. Ignored when Cancelled.
	Chosen kernel.KeySet

	// Cancelled reports that the actor dismissed the selection without
	// deciding. Nothing is persisted.
	Cancelled bool

	// ActivateStage requests that the decided stage also become the current
	// stage. Activation is still subject to the sequential advance rule.
	ActivateStage bool
}

// SelectionPrompt describes an interactive selection over a stage's
// candidate items.
type SelectionPrompt struct {
	Stage stage.Stage

	// Candidate is the full set the actor may decide over.
	Candidate kernel.KeySet

	// PreviouslyAccepted marks which candidates start checked.
	PreviouslyAccepted kernel.KeySet

	// Locked renders the selection read-only even for an author, e.g. the
	// first stage once the flow has moved past dispatch.
	Locked bool
}

// Presenter is the outbound port the stepper controller talks to. Drivers
// render however they like: an HTTP adapter maps these calls onto response
// DTOs, tests plug in a recording fake.
type Presenter interface {
	// PresentSelection shows an interactive selection and blocks for the
	// actor's decision. Implementations return a cancelled Decision when the
	// prompt is locked.
	PresentSelection(prompt SelectionPrompt) (Decision, error)

	// PresentReadOnlyList shows a non-interactive item list, used for
	// exception views and for actors without authoring rights.
	PresentReadOnlyList(s stage.Stage, keys kernel.KeySet) error

	// ConfirmExclusion asks the actor to confirm dropping items that were
	// accepted before. Returning false abandons the whole decision.
	ConfirmExclusion(s stage.Stage, excluded kernel.KeySet) (bool, error)

	// PresentDenied tells the actor the stage is not available to their role.
	PresentDenied(s stage.Stage) error

	// PresentNotice shows a transient informational message.
	PresentNotice(message string) error
}
