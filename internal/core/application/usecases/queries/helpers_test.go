package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memstore"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

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

func newResolver() *services.RoleResolver {
	return services.NewRoleResolver([]kernel.ActorKey{"admin_key_1"})
}

func saveOutcome(t *testing.T, store *memstore.Store, s stage.Stage, candidate, chosen kernel.KeySet) {
	t.Helper()

	outcome, err := step.NewOutcome(candidate, chosen, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, store.SaveOutcome(t.Context(), s, outcome))
}

func savePointer(t *testing.T, store *memstore.Store, s stage.Stage) {
	t.Helper()

	p, err := step.NewPointer(s)
	require.NoError(t, err)
	require.NoError(t, store.SavePointer(t.Context(), p))
}
