// Package role defines the closed set of actor roles in the fulfillment
// flow. Roles are mutually exclusive except for Admin, which is determined by
// an external allow-list independent of order participation.
package role

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role is the capacity in which an actor participates in the flow. It is
// derived from the order graph and the admin allow-list; it is never stored
// on the actor itself.
type Role int

const (
	// Unknown represents an invalid or undetermined role.
	// This value (0) helps catch uninitialized Role values.
	Unknown Role = iota

	// Admin is granted by the allow-list and overrides graph-derived roles.
	Admin

	// Seller owns items in the order graph through their seller key.
	Seller

	// Buyer owns orders in the graph through their user key.
	Buyer

	// Courier is assigned to items through their delivery key.
	Courier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown: "Unknown",
		Admin:   "admin",
		Seller:  "seller",
		Buyer:   "buyer",
		Courier: "courier",
	}
}

// FromString parses a role name such as "buyer" back into a Role.
func FromString(s string) (Role, error) {
	for r, str := range getRoleStrings() {
		if r != Unknown && str == s {
			return r, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a known role", s),
	)
}

// Validate checks that the Role value is one of the four defined roles.
func (r Role) Validate() error {
	if r < Admin || r > Courier {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the lower-case role name used in configuration and
// transport. Safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
