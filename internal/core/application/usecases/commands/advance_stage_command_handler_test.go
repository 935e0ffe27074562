package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdvanceStageHandler(
	t *testing.T,
	factory commands.StepUoWFactory,
) commands.AdvanceStageCommandHandler {
	t.Helper()

	return commands.NewAdvanceStageCommandHandler(
		factory,
		services.NewRoleResolver([]kernel.ActorKey{"admin_key_1"}),
		services.NewPermissionGate(),
		services.NewStepSequencer(),
		marketGraph(t),
	)
}

func TestAdvanceStageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	states := newFakeStepStates()
	states.setPointer(t, stage.Review)

	uow := new(MockStepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StepStates").Return(states).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAdvanceStageHandler(t, factory)
	cmd, err := commands.NewAdvanceStageCommand("seller_key_1", stage.Confirmed)
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))

	pointer, err := states.Pointer(ctx)
	require.NoError(t, err)
	require.NotNil(t, pointer)
	assert.Equal(t, stage.Confirmed, pointer.Stage())

	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceStageCommandHandler_Handle_SkipAhead(t *testing.T) {
	ctx := t.Context()
	states := newFakeStepStates()
	states.setPointer(t, stage.Review)

	uow := new(MockStepUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StepStates").Return(states).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockStepUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAdvanceStageHandler(t, factory)
	cmd, err := commands.NewAdvanceStageCommand("seller_key_1", stage.Shipped)
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrMustAdvanceInOrder)
	uow.AssertNotCalled(t, "Commit", ctx)

	pointer, err := states.Pointer(ctx)
	require.NoError(t, err)
	assert.Equal(t, stage.Review, pointer.Stage(), "rejected advance leaves the pointer")
}

func TestAdvanceStageCommandHandler_Handle_NotPermitted(t *testing.T) {
	ctx := t.Context()
	factory := new(MockStepUoWFactory)

	h := newAdvanceStageHandler(t, factory)
	cmd, err := commands.NewAdvanceStageCommand("delivery_key_1", stage.Confirmed)
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrStageNotPermitted)
	factory.AssertNotCalled(t, "Create")
}

func TestAdvanceStageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockStepUoWFactory)

	h := newAdvanceStageHandler(t, factory)

	err := h.Handle(ctx, commands.AdvanceStageCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAdvanceStageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
