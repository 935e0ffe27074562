package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is one buyer's order within the graph the fulfillment flow operates
// on. It is owned by exactly one buyer and contains an ordered list of items.
//
// Order follows these invariants:
//   - Must have a valid unique key
//   - Must reference a valid buyer
//   - Must contain at least one item
//   - Can only be created through NewOrder constructor
//
// Orders arrive fully formed from the host environment; the fulfillment core
// never creates or mutates them, it only reads ownership and item membership
// from them.
type Order struct {
	// key is the opaque identifier of the order
	key kernel.OrderKey

	// buyerKey identifies the buyer owning the order
	buyerKey kernel.ActorKey

	// items is the ordered list of order lines
	items []Item

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates an Order with validation. This is the only way to create
// a valid Order, ensuring all business invariants are maintained.
func NewOrder(key kernel.OrderKey, buyerKey kernel.ActorKey, items []Item) (*Order, error) {
	if err := errors.Join(
		key.Validate(),
		buyerKey.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		key:           key,
		buyerKey:      buyerKey,
		items:         append([]Item(nil), items...),
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their keys.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.key == other.key
}

// Key returns the order's unique identifier.
func (o *Order) Key() kernel.OrderKey {
	return o.key
}

// BuyerKey returns the identifier of the buyer owning the order.
func (o *Order) BuyerKey() kernel.ActorKey {
	return o.buyerKey
}

// Items returns the order lines. The slice is a copy; mutating it does not
// affect the order.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}
