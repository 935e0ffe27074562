package controlfile_test

import (
	"path/filepath"
	"testing"

	"fulfillment/internal/adapters/out/controlfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrderGraph(t *testing.T) {
	t.Run("should parse the marketplace export", func(t *testing.T) {
		path := writeFile(t, "orders.json", `[
  {
    "order_key": "order_key_1",
    "user_key": "buyer_key_1",
    "order_items": [
      {
        "product_key": "product_key_1",
        "seller_key": "seller_key_1",
        "supplier_delivery": {"delivery_key": "delivery_key_1"}
      },
      {
        "product_key": "product_key_2",
        "seller_key": "seller_key_2",
        "supplier_delivery": {"delivery_key": ["delivery_key_1", "delivery_key_2"]}
      }
    ]
  }
]`)

		graph, err := controlfile.LoadOrderGraph(path)

		require.NoError(t, err)
		require.Len(t, graph, 1)
		assert.True(t, graph.HasBuyer("buyer_key_1"))
		assert.True(t, graph.HasSeller("seller_key_2"))
		assert.True(t, graph.HasCourier("delivery_key_2"))
		assert.Equal(t, []string{"product_key_1", "product_key_2"},
			graph.ItemsAssignedToCourier("delivery_key_1").Strings())
	})

	t.Run("should accept both spellings of delivery_key", func(t *testing.T) {
		var single, many controlfile.DeliveryKeys

		require.NoError(t, single.UnmarshalJSON([]byte(`"delivery_key_1"`)))
		require.NoError(t, many.UnmarshalJSON([]byte(`["delivery_key_1", "delivery_key_2"]`)))

		assert.Equal(t, controlfile.DeliveryKeys{"delivery_key_1"}, single)
		assert.Equal(t, controlfile.DeliveryKeys{"delivery_key_1", "delivery_key_2"}, many)
	})

	t.Run("should reject a delivery_key of the wrong shape", func(t *testing.T) {
		var keys controlfile.DeliveryKeys

		err := keys.UnmarshalJSON([]byte(`{"id": "delivery_key_1"}`))

		require.Error(t, err)
	})

	t.Run("should fail for an order without items", func(t *testing.T) {
		path := writeFile(t, "orders.json", `[
  {"order_key": "order_key_1", "user_key": "buyer_key_1", "order_items": []}
]`)

		_, err := controlfile.LoadOrderGraph(path)

		require.Error(t, err)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		_, err := controlfile.LoadOrderGraph(filepath.Join(t.TempDir(), "absent.json"))

		require.Error(t, err)
	})

	t.Run("should fail for malformed json", func(t *testing.T) {
		path := writeFile(t, "orders.json", `{"not": "a list"}`)

		_, err := controlfile.LoadOrderGraph(path)

		require.Error(t, err)
	})
}
