package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeStepStates is an in-memory StepStateStore; command handler tests mock
// the transaction boundary and verify persisted state through this fake.
type fakeStepStates struct {
	outcomes map[stage.Stage]step.Outcome
	pointer  *step.Pointer
}

func newFakeStepStates() *fakeStepStates {
	return &fakeStepStates{outcomes: make(map[stage.Stage]step.Outcome)}
}

func (f *fakeStepStates) Outcome(_ context.Context, s stage.Stage) (*step.Outcome, error) {
	outcome, ok := f.outcomes[s]
	if !ok {
		return nil, nil
	}
	return &outcome, nil
}

func (f *fakeStepStates) SaveOutcome(_ context.Context, s stage.Stage, outcome step.Outcome) error {
	f.outcomes[s] = outcome
	return nil
}

func (f *fakeStepStates) Pointer(_ context.Context) (*step.Pointer, error) {
	if f.pointer == nil {
		return nil, nil
	}
	p := *f.pointer
	return &p, nil
}

func (f *fakeStepStates) SavePointer(_ context.Context, p step.Pointer) error {
	f.pointer = &p
	return nil
}

func (f *fakeStepStates) setPointer(t *testing.T, s stage.Stage) {
	t.Helper()

	p, err := step.NewPointer(s)
	require.NoError(t, err)
	f.pointer = &p
}

type MockStepUoW struct{ mock.Mock }

func (m *MockStepUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStepUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStepUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStepUoW) StepStates() ports.StepStateStore {
	args := m.Called()
	return args.Get(0).(ports.StepStateStore)
}

type MockStepUoWFactory struct{ mock.Mock }

func (m *MockStepUoWFactory) Create() commands.StepUoW {
	args := m.Called()
	return args.Get(0).(commands.StepUoW)
}

func mustItem(t *testing.T, product, seller string, couriers ...string) order.Item {
	t.Helper()

	keys := make([]kernel.ActorKey, 0, len(couriers))
	for _, c := range couriers {
		keys = append(keys, kernel.ActorKey(c))
	}

	item, err := order.NewItem(kernel.ProductKey(product), kernel.ActorKey(seller), keys...)
	require.NoError(t, err)
	return item
}

func marketGraph(t *testing.T) order.Graph {
	t.Helper()

	o, err := order.NewOrder("order_key_1", "buyer_key_1", []order.Item{
		mustItem(t, "product_key_1", "seller_key_1", "delivery_key_1"),
		mustItem(t, "product_key_2", "seller_key_1", "delivery_key_2"),
		mustItem(t, "product_key_3", "seller_key_2", "delivery_key_2"),
	})
	require.NoError(t, err)

	return order.Graph{o}
}
