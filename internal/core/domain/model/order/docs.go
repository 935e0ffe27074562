// Package order provides the read-side order model the fulfillment flow
// operates on. It implements the Order aggregate and the Graph lookups that
// derive roles and per-role item sets.
//
// The package includes:
//   - Order: a buyer-owned order with its list of items
//   - Item: one order line, referencing a seller and zero or more couriers
//   - Graph: the full set of orders with ownership and membership queries
//
// Key business rules:
//   - Orders are owned by exactly one buyer and hold at least one item
//   - Items reference exactly one seller; delivery assignment is one-to-many
//   - The graph is read-only input supplied by the host environment
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
