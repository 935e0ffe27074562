package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not
	// created through the NewItem factory method.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is a single order line. It references exactly one seller and zero or
// more couriers; the courier relation is one-to-many to model shared or
// alternate delivery assignment. An Item belongs to its Order for lifetime
// purposes and does not exist independently.
type Item struct {
	productKey  kernel.ProductKey
	sellerKey   kernel.ActorKey
	courierKeys []kernel.ActorKey

	isConstructed bool
}

// NewItem creates an order line with validation. The product and seller keys
// are required; the courier list may be empty when no delivery assignment
// exists yet.
func NewItem(
	productKey kernel.ProductKey,
	sellerKey kernel.ActorKey,
	courierKeys ...kernel.ActorKey,
) (Item, error) {
	if err := errors.Join(
		productKey.Validate(),
		sellerKey.Validate(),
	); err != nil {
		return Item{}, err
	}

	for _, c := range courierKeys {
		if err := c.Validate(); err != nil {
			return Item{}, err
		}
	}

	return Item{
		productKey:    productKey,
		sellerKey:     sellerKey,
		courierKeys:   append([]kernel.ActorKey(nil), courierKeys...),
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductKey returns the item's product identifier.
func (i Item) ProductKey() kernel.ProductKey {
	return i.productKey
}

// SellerKey returns the identifier of the item's seller.
func (i Item) SellerKey() kernel.ActorKey {
	return i.sellerKey
}

// CourierKeys returns the couriers assigned to deliver the item.
// The slice is a copy; mutating it does not affect the item.
func (i Item) CourierKeys() []kernel.ActorKey {
	return append([]kernel.ActorKey(nil), i.courierKeys...)
}

// IsDeliveredBy reports whether the actor appears among the item's assigned
// couriers.
func (i Item) IsDeliveredBy(actor kernel.ActorKey) bool {
	for _, c := range i.courierKeys {
		if c == actor {
			return true
		}
	}
	return false
}
