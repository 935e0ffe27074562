// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - RoleResolver: derives the acting user's role from the order graph and
//     the admin allow-list, enforcing role exclusivity
//   - PermissionGate: maps (role, stage) to the stages a role may open and
//     the stages it may author decisions at
//   - ItemSelectionEngine: derives per-stage candidate item sets and applies
//     accept/reject decisions over them
//   - StepSequencer: derives the current stage from persisted state and
//     enforces strict forward-only, no-skip advancement
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
