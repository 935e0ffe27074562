package services

import (
	"fulfillment/internal/core/domain/model/role"
	"fulfillment/internal/core/domain/model/stage"
)

// PermissionGate maps (role, stage) to the rights a role holds over that
// stage. It answers two separate questions:
//
//   - may this role open the stage at all (view its contents), and
//   - may this role author a decision at the stage (toggle items).
//
// Exception views are open to every role that may open them but are never
// authorable; they only display complements computed by the owning stage.
type PermissionGate struct {
	openable map[role.Role]map[stage.Stage]struct{}
}

// Default openable-stage table. Buyers never open Confirmed or Shipped,
// sellers never open Delivered, couriers never open Confirmed.
func defaultOpenableStages() map[role.Role][]stage.Stage {
	return map[role.Role][]stage.Stage{
		role.Buyer: {
			stage.Review, stage.Delivered,
			stage.Cancelled, stage.Rejected, stage.Returned,
		},
		role.Seller: {
			stage.Review, stage.Confirmed, stage.Shipped,
			stage.Cancelled, stage.Rejected, stage.Returned,
		},
		role.Courier: {
			stage.Review, stage.Shipped, stage.Delivered,
			stage.Cancelled, stage.Rejected, stage.Returned,
		},
		role.Admin: stage.All(),
	}
}

// Decision authorship is a closed table: it reflects who the decision at a
// stage belongs to in the business flow and is not configurable.
func decisionAuthors() map[stage.Stage][]role.Role {
	return map[stage.Stage][]role.Role{
		stage.Review:    {role.Buyer},
		stage.Confirmed: {role.Seller},
		stage.Shipped:   {role.Seller, role.Courier},
		stage.Delivered: {role.Buyer, role.Courier},
	}
}

// NewPermissionGate creates a gate with the default openable-stage table.
func NewPermissionGate() *PermissionGate {
	return newGate(defaultOpenableStages())
}

// NewPermissionGateWithOpenable creates a gate whose openable sets come from
// host configuration (the control document's allowedSteps), falling back to
// the default table for roles the configuration does not mention. The
// decision-authorship table is not configurable.
func NewPermissionGateWithOpenable(openable map[role.Role][]stage.Stage) *PermissionGate {
	merged := defaultOpenableStages()
	for r, stages := range openable {
		merged[r] = stages
	}
	return newGate(merged)
}

func newGate(openable map[role.Role][]stage.Stage) *PermissionGate {
	g := &PermissionGate{openable: make(map[role.Role]map[stage.Stage]struct{}, len(openable))}
	for r, stages := range openable {
		set := make(map[stage.Stage]struct{}, len(stages))
		for _, s := range stages {
			set[s] = struct{}{}
		}
		g.openable[r] = set
	}
	return g
}

// AllowedStages returns the stages the role may open, in display order.
func (g *PermissionGate) AllowedStages(r role.Role) []stage.Stage {
	allowed := g.openable[r]
	out := make([]stage.Stage, 0, len(allowed))
	for _, s := range stage.All() {
		if _, ok := allowed[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// CanOpen reports whether the role may open the stage.
func (g *PermissionGate) CanOpen(r role.Role, s stage.Stage) bool {
	allowed, ok := g.openable[r]
	if !ok {
		return false
	}
	_, ok = allowed[s]
	return ok
}

// CanDecide reports whether the role may author a decision at the stage.
// Exception views never accept decisions. Admin may author any sequential
// stage it can open.
func (g *PermissionGate) CanDecide(r role.Role, s stage.Stage) bool {
	if !s.IsSequential() || !g.CanOpen(r, s) {
		return false
	}

	if r == role.Admin {
		return true
	}

	for _, author := range decisionAuthors()[s] {
		if author == r {
			return true
		}
	}
	return false
}
