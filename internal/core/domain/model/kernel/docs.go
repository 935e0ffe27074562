// Package kernel provides core domain primitives for the fulfillment system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - ProductKey, ActorKey, OrderKey: opaque identifier value objects
//   - KeySet: an immutable set of product keys with the set algebra
//     (union, intersection, difference) underpinning stage decisions
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
