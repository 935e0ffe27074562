package services_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"

	"github.com/stretchr/testify/require"
)

// fakeStepState is an in-memory StepStateReader/StepStateWriter for service
// tests.
type fakeStepState struct {
	outcomes map[stage.Stage]step.Outcome
	pointer  *step.Pointer
}

func newFakeStepState() *fakeStepState {
	return &fakeStepState{outcomes: make(map[stage.Stage]step.Outcome)}
}

func (f *fakeStepState) Outcome(_ context.Context, s stage.Stage) (*step.Outcome, error) {
	outcome, ok := f.outcomes[s]
	if !ok {
		return nil, nil
	}
	return &outcome, nil
}

func (f *fakeStepState) Pointer(_ context.Context) (*step.Pointer, error) {
	if f.pointer == nil {
		return nil, nil
	}
	p := *f.pointer
	return &p, nil
}

func (f *fakeStepState) SavePointer(_ context.Context, p step.Pointer) error {
	f.pointer = &p
	return nil
}

func (f *fakeStepState) setOutcome(t *testing.T, s stage.Stage, accepted, rejected []string) {
	t.Helper()

	outcome, err := step.RestoreOutcome(
		kernel.KeySetFromStrings(accepted),
		kernel.KeySetFromStrings(rejected),
		time.Date(2025, 11, 25, 18, 24, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	f.outcomes[s] = outcome
}

func (f *fakeStepState) setPointer(t *testing.T, s stage.Stage) {
	t.Helper()

	p, err := step.NewPointer(s)
	require.NoError(t, err)
	f.pointer = &p
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

// marketGraph models one buyer ordering from two sellers, with two couriers
// splitting the deliveries.
func marketGraph(t *testing.T) order.Graph {
	t.Helper()

	o, err := order.NewOrder("order_key_1", "buyer_key_1", []order.Item{
		mustItem(t, "product_key_1", "seller_key_1", "delivery_key_1"),
		mustItem(t, "product_key_2", "seller_key_1", "delivery_key_1", "delivery_key_2"),
		mustItem(t, "product_key_3", "seller_key_2", "delivery_key_2"),
	})
	require.NoError(t, err)

	return order.Graph{o}
}
