package kernel

import (
	"fulfillment/internal/pkg/errs"
)

// ProductKey is the opaque identifier of an order item. It is unique within
// the scope of a single fulfillment review.
type ProductKey string

// Validate checks that the product key is not empty.
func (k ProductKey) Validate() error {
	if k == "" {
		return errs.NewValueIsRequiredError("product key")
	}
	return nil
}

// String returns the raw key value.
func (k ProductKey) String() string {
	return string(k)
}

// ActorKey identifies a participant in the fulfillment flow: a buyer, a
// seller, a courier, or an admin. The same key space is shared by all roles;
// which role a key plays is derived from the order graph and the admin
// allow-list, never from the key itself.
type ActorKey string

// Validate checks that the actor key is not empty.
func (k ActorKey) Validate() error {
	if k == "" {
		return errs.NewValueIsRequiredError("actor key")
	}
	return nil
}

// String returns the raw key value.
func (k ActorKey) String() string {
	return string(k)
}

// OrderKey is the opaque identifier of an order.
type OrderKey string

// Validate checks that the order key is not empty.
func (k OrderKey) Validate() error {
	if k == "" {
		return errs.NewValueIsRequiredError("order key")
	}
	return nil
}

// String returns the raw key value.
func (k OrderKey) String() string {
	return string(k)
}
