package controlfile

import (
	"encoding/json"
	"fmt"
	"os"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// DeliveryKeys accepts the marketplace export's two spellings of a delivery
// assignment: a single key or a list of keys.
type DeliveryKeys []string

// UnmarshalJSON decodes either a JSON string or a JSON array of strings.
func (d *DeliveryKeys) UnmarshalJSON(raw []byte) error {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		*d = DeliveryKeys{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return fmt.Errorf("delivery_key must be a string or a list of strings: %w", err)
	}
	*d = DeliveryKeys(many)
	return nil
}

type orderRecord struct {
	OrderKey   string       `json:"order_key"`
	UserKey    string       `json:"user_key"`
	OrderItems []itemRecord `json:"order_items"`
}

type itemRecord struct {
	ProductKey       string `json:"product_key"`
	SellerKey        string `json:"seller_key"`
	SupplierDelivery struct {
		DeliveryKey DeliveryKeys `json:"delivery_key"`
	} `json:"supplier_delivery"`
}

// LoadOrderGraph reads and parses the JSON order export into the domain
// graph.
func LoadOrderGraph(path string) (order.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read order graph %s: %w", path, err)
	}

	var records []orderRecord
	if err = json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse order graph %s: %w", path, err)
	}

	graph := make(order.Graph, 0, len(records))
	for _, rec := range records {
		items := make([]order.Item, 0, len(rec.OrderItems))
		for _, ir := range rec.OrderItems {
			couriers := make([]kernel.ActorKey, 0, len(ir.SupplierDelivery.DeliveryKey))
			for _, k := range ir.SupplierDelivery.DeliveryKey {
				couriers = append(couriers, kernel.ActorKey(k))
			}

			item, itemErr := order.NewItem(
				kernel.ProductKey(ir.ProductKey),
				kernel.ActorKey(ir.SellerKey),
				couriers...,
			)
			if itemErr != nil {
				return nil, fmt.Errorf("order %s item %s: %w", rec.OrderKey, ir.ProductKey, itemErr)
			}
			items = append(items, item)
		}

		o, orderErr := order.NewOrder(
			kernel.OrderKey(rec.OrderKey),
			kernel.ActorKey(rec.UserKey),
			items,
		)
		if orderErr != nil {
			return nil, fmt.Errorf("order %s: %w", rec.OrderKey, orderErr)
		}
		graph = append(graph, o)
	}

	return graph, nil
}
