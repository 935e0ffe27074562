package cmd

import (
	"log/slog"

	"fulfillment/internal/core/application/stepper"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/role"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
)

// CompositionRoot wires stores, domain services, and use case handlers.
// The store and unit of work factory are driver-specific and injected by
// main; everything above them is driver-agnostic.
type CompositionRoot struct {
	store      ports.StepStateStore
	uowFactory ports.UnitOfWorkFactory
	graph      order.Graph

	resolver  *services.RoleResolver
	gate      *services.PermissionGate
	selection *services.ItemSelectionEngine
	sequencer *services.StepSequencer
}

// NewCompositionRoot assembles the application graph. The openable table
// comes from the control document; passing nil keeps the default table.
func NewCompositionRoot(
	config Config,
	graph order.Graph,
	openable map[role.Role][]stage.Stage,
	store ports.StepStateStore,
	uowFactory ports.UnitOfWorkFactory,
) CompositionRoot {
	admins := make([]kernel.ActorKey, 0, len(config.AdminKeys))
	for _, k := range config.AdminKeys {
		admins = append(admins, kernel.ActorKey(k))
	}

	gate := services.NewPermissionGate()
	if openable != nil {
		gate = services.NewPermissionGateWithOpenable(openable)
	}

	return CompositionRoot{
		store:      store,
		uowFactory: uowFactory,
		graph:      graph,
		resolver:   services.NewRoleResolver(admins),
		gate:       gate,
		selection:  services.NewItemSelectionEngine(),
		sequencer:  services.NewStepSequencer(),
	}
}

func (c *CompositionRoot) stepUoWFactory() commands.StepUoWFactory {
	return FuncStepUoWFactory(func() commands.StepUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateApplyDecisionCommandHandler() commands.ApplyDecisionCommandHandler {
	return commands.NewApplyDecisionCommandHandler(
		c.stepUoWFactory(), c.resolver, c.gate, c.selection, c.sequencer, c.graph)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	return commands.NewAdvanceStageCommandHandler(
		c.stepUoWFactory(), c.resolver, c.gate, c.sequencer, c.graph)
}

func (c *CompositionRoot) CreateRepairPointerCommandHandler() commands.RepairPointerCommandHandler {
	return commands.NewRepairPointerCommandHandler(c.stepUoWFactory(), c.sequencer)
}

func (c *CompositionRoot) CreateGetCurrentStageQueryHandler() queries.GetCurrentStageQueryHandler {
	return queries.NewGetCurrentStageQueryHandler(
		c.store, c.resolver, c.gate, c.sequencer, c.graph)
}

func (c *CompositionRoot) CreateGetStageItemsQueryHandler() queries.GetStageItemsQueryHandler {
	return queries.NewGetStageItemsQueryHandler(
		c.store, c.resolver, c.gate, c.selection, c.sequencer, c.graph)
}

func (c *CompositionRoot) CreateGetExceptionItemsQueryHandler() queries.GetExceptionItemsQueryHandler {
	return queries.NewGetExceptionItemsQueryHandler(
		c.store, c.resolver, c.gate, c.selection, c.graph)
}

// CreateController builds a session controller for the given actor and
// presenter. Role resolution errors propagate unchanged.
func (c *CompositionRoot) CreateController(
	actor kernel.ActorKey,
	presenter ports.Presenter,
) (*stepper.Controller, error) {
	return stepper.NewController(
		actor,
		c.graph,
		c.resolver,
		c.gate,
		presenter,
		c.CreateApplyDecisionCommandHandler(),
		c.CreateRepairPointerCommandHandler(),
		c.CreateGetStageItemsQueryHandler(),
		c.CreateGetExceptionItemsQueryHandler(),
		c.CreateGetCurrentStageQueryHandler(),
	)
}

// CreateJobManager builds the background job set.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRepairPointerCommandHandler(), logger)
}

type FuncStepUoWFactory func() commands.StepUoW

func (f FuncStepUoWFactory) Create() commands.StepUoW {
	return f()
}
