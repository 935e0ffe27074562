// Package stepper orchestrates the interactive stage flow: it mediates
// between an actor selecting stages, the command and query handlers, and a
// presenter that renders lists and prompts.
package stepper

import (
	"context"
	"errors"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/role"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// denialWindow suppresses repeated denial notices from rapid re-selection
// of a forbidden stage.
const denialWindow = 3 * time.Second

// EventKind classifies controller events.
type EventKind int

const (
	// EventStageChanged fires when the current-stage pointer moves or the
	// current stage is re-rendered.
	EventStageChanged EventKind = iota + 1

	// EventDecisionSaved fires after an outcome is persisted.
	EventDecisionSaved
)

// Event notifies listeners of a flow change.
type Event struct {
	Kind  EventKind
	Stage stage.Stage
}

// Controller drives one actor's session over the stage flow. The actor's
// role is resolved once at construction; a role conflict or a missing role
// aborts construction, never degrades to a default.
type Controller struct {
	actor     kernel.ActorKey
	actorRole role.Role

	gate      *services.PermissionGate
	presenter ports.Presenter

	applyDecision commands.ApplyDecisionCommandHandler
	repairPointer commands.RepairPointerCommandHandler

	stageItems     queries.GetStageItemsQueryHandler
	exceptionItems queries.GetExceptionItemsQueryHandler
	currentStage   queries.GetCurrentStageQueryHandler

	now func() time.Time

	mu         sync.Mutex
	lastDenial time.Time
	listeners  []func(Event)
}

// NewController creates a session controller for the actor. Role resolution
// runs here and its errors propagate; callers must treat them as fatal.
func NewController(
	actor kernel.ActorKey,
	graph order.Graph,
	resolver *services.RoleResolver,
	gate *services.PermissionGate,
	presenter ports.Presenter,
	applyDecision commands.ApplyDecisionCommandHandler,
	repairPointer commands.RepairPointerCommandHandler,
	stageItems queries.GetStageItemsQueryHandler,
	exceptionItems queries.GetExceptionItemsQueryHandler,
	currentStage queries.GetCurrentStageQueryHandler,
) (*Controller, error) {
	actorRole, err := resolver.Resolve(actor, graph)
	if err != nil {
		return nil, err
	}

	return &Controller{
		actor:          actor,
		actorRole:      actorRole,
		gate:           gate,
		presenter:      presenter,
		applyDecision:  applyDecision,
		repairPointer:  repairPointer,
		stageItems:     stageItems,
		exceptionItems: exceptionItems,
		currentStage:   currentStage,
		now:            time.Now,
	}, nil
}

// Role returns the role resolved for the session's actor.
func (c *Controller) Role() role.Role {
	return c.actorRole
}

// Subscribe registers a listener for controller events. Listeners run
// synchronously in selection order.
func (c *Controller) Subscribe(listener func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Controller) emit(e Event) {
	c.mu.Lock()
	listeners := make([]func(Event), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}

// OnStageSelected handles the actor opening a stage.
//
// A stage the role may not open produces a denial notice, rate limited to
// one per denialWindow. Exception views and locked or non-authorable lists
// render read-only. Authors get an interactive selection; unchecking a
// previously accepted item requires confirmation before anything persists,
// and a confirmed decision is written atomically with the pointer. A
// decision may also request activation of its stage; when the sequential
// rule rejects the activation, nothing is persisted and the reason surfaces
// as a transient notice.
func (c *Controller) OnStageSelected(ctx context.Context, s stage.Stage) error {
	if !c.gate.CanOpen(c.actorRole, s) {
		return c.presentDenied(s)
	}

	if s.IsExceptionView() {
		return c.openExceptionView(ctx, s)
	}

	return c.openSequentialStage(ctx, s)
}

func (c *Controller) presentDenied(s stage.Stage) error {
	c.mu.Lock()
	suppressed := c.now().Sub(c.lastDenial) < denialWindow
	if !suppressed {
		c.lastDenial = c.now()
	}
	c.mu.Unlock()

	if suppressed {
		return nil
	}
	return c.presenter.PresentDenied(s)
}

func (c *Controller) openExceptionView(ctx context.Context, view stage.Stage) error {
	query, err := queries.NewGetExceptionItemsQuery(c.actor, view)
	if err != nil {
		return err
	}

	resp, err := c.exceptionItems.Handle(ctx, query)
	if err != nil {
		return err
	}

	return c.presenter.PresentReadOnlyList(view, resp.Keys)
}

func (c *Controller) openSequentialStage(ctx context.Context, s stage.Stage) error {
	query, err := queries.NewGetStageItemsQuery(c.actor, s)
	if err != nil {
		return err
	}

	items, err := c.stageItems.Handle(ctx, query)
	if err != nil {
		return err
	}

	if !items.CanDecide {
		return c.presenter.PresentReadOnlyList(s, items.PreviouslyAccepted)
	}

	decision, err := c.presenter.PresentSelection(ports.SelectionPrompt{
		Stage:              s,
		Candidate:          items.Candidate,
		PreviouslyAccepted: items.PreviouslyAccepted,
		Locked:             items.Locked,
	})
	if err != nil {
		return err
	}
	if decision.Cancelled {
		return nil
	}

	excluded := items.PreviouslyAccepted.Subtract(decision.Chosen)
	if !excluded.IsEmpty() {
		confirmed, confirmErr := c.presenter.ConfirmExclusion(s, excluded)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			return nil
		}
	}

	cmd, err := commands.NewApplyDecisionCommand(c.actor, s, decision.Chosen, decision.ActivateStage)
	if err != nil {
		return err
	}

	if err = c.applyDecision.Handle(ctx, cmd); err != nil {
		if errors.Is(err, services.ErrMustAdvanceInOrder) ||
			errors.Is(err, services.ErrCannotReturnToPriorStage) {
			return c.presenter.PresentNotice(err.Error())
		}
		return err
	}

	c.emit(Event{Kind: EventDecisionSaved, Stage: s})
	if decision.ActivateStage {
		c.emit(Event{Kind: EventStageChanged, Stage: s})
	}
	return nil
}

// RenderCurrentStage makes the derived pointer explicit and announces the
// current stage. Safe to call repeatedly; re-rendering an unchanged stage
// rewrites the same pointer and fires the same event.
func (c *Controller) RenderCurrentStage(ctx context.Context) (stage.Stage, error) {
	repairCmd, err := commands.NewRepairPointerCommand()
	if err != nil {
		return stage.Unknown, err
	}
	if err = c.repairPointer.Handle(ctx, repairCmd); err != nil {
		return stage.Unknown, err
	}

	query, err := queries.NewGetCurrentStageQuery(c.actor)
	if err != nil {
		return stage.Unknown, err
	}

	resp, err := c.currentStage.Handle(ctx, query)
	if err != nil {
		return stage.Unknown, err
	}

	c.emit(Event{Kind: EventStageChanged, Stage: resp.Stage})
	return resp.Stage, nil
}
