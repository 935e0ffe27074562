package order

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// Graph is the set of orders the fulfillment session operates on. It is the
// read-only input from which roles are derived and per-role candidate item
// sets are computed.
type Graph []*Order

// Validate checks every order in the graph.
func (g Graph) Validate() error {
	for _, o := range g {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasBuyer reports whether any order in the graph is owned by the actor.
func (g Graph) HasBuyer(actor kernel.ActorKey) bool {
	for _, o := range g {
		if o.BuyerKey() == actor {
			return true
		}
	}
	return false
}

// HasSeller reports whether any item in the graph is sold by the actor.
func (g Graph) HasSeller(actor kernel.ActorKey) bool {
	for _, o := range g {
		for _, item := range o.Items() {
			if item.SellerKey() == actor {
				return true
			}
		}
	}
	return false
}

// HasCourier reports whether any item in the graph is assigned to the actor
// for delivery.
func (g Graph) HasCourier(actor kernel.ActorKey) bool {
	for _, o := range g {
		for _, item := range o.Items() {
			if item.IsDeliveredBy(actor) {
				return true
			}
		}
	}
	return false
}

// ItemsOwnedByBuyer returns the product keys of every item in orders the
// actor owns as a buyer.
func (g Graph) ItemsOwnedByBuyer(actor kernel.ActorKey) kernel.KeySet {
	var keys []kernel.ProductKey
	for _, o := range g {
		if o.BuyerKey() != actor {
			continue
		}
		for _, item := range o.Items() {
			keys = append(keys, item.ProductKey())
		}
	}
	return kernel.NewKeySet(keys...)
}

// ItemsOwnedBySeller returns the product keys of every item the actor sells.
func (g Graph) ItemsOwnedBySeller(actor kernel.ActorKey) kernel.KeySet {
	var keys []kernel.ProductKey
	for _, o := range g {
		for _, item := range o.Items() {
			if item.SellerKey() == actor {
				keys = append(keys, item.ProductKey())
			}
		}
	}
	return kernel.NewKeySet(keys...)
}

// ItemsAssignedToCourier returns the product keys of every item the actor is
// assigned to deliver, supporting both single and shared delivery
// assignments.
func (g Graph) ItemsAssignedToCourier(actor kernel.ActorKey) kernel.KeySet {
	var keys []kernel.ProductKey
	for _, o := range g {
		for _, item := range o.Items() {
			if item.IsDeliveredBy(actor) {
				keys = append(keys, item.ProductKey())
			}
		}
	}
	return kernel.NewKeySet(keys...)
}

// AllItems returns the product keys of every item in the graph.
func (g Graph) AllItems() kernel.KeySet {
	var keys []kernel.ProductKey
	for _, o := range g {
		for _, item := range o.Items() {
			keys = append(keys, item.ProductKey())
		}
	}
	return kernel.NewKeySet(keys...)
}
