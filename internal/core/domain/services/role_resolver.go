package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/role"
)

var (
	// ErrActorRoleConflict indicates that the same actor key appears both as
	// a buyer and as a seller in the order graph. The data model guarantees
	// these identities are disjoint, so this is a fatal data-consistency
	// condition: the resolver aborts rather than guessing a role.
	ErrActorRoleConflict = errors.New("actor cannot be both buyer and seller")

	// ErrNoRoleForActor indicates that the actor matches no role at all in
	// the order graph or admin allow-list. Initialization must not proceed
	// without a role.
	ErrNoRoleForActor = errors.New("no role found for actor")
)

// RoleResolver derives the acting user's role from the order graph and a
// static admin allow-list.
//
// Resolution is a pure function over the supplied graph: admins are
// recognized from the allow-list before any graph inspection, and the
// remaining roles are matched by scanning order ownership, item sellers, and
// delivery assignments. An actor appearing as both buyer and seller is a
// fatal inconsistency, not a tie to break.
type RoleResolver struct {
	admins map[kernel.ActorKey]struct{}
}

// NewRoleResolver creates a resolver recognizing the given actor keys as
// admins.
func NewRoleResolver(adminKeys []kernel.ActorKey) *RoleResolver {
	admins := make(map[kernel.ActorKey]struct{}, len(adminKeys))
	for _, k := range adminKeys {
		admins[k] = struct{}{}
	}
	return &RoleResolver{admins: admins}
}

// Resolve determines the role the actor plays over the given order graph.
//
// The admin allow-list short-circuits every other check. Otherwise the graph
// is scanned for buyer, seller, and courier membership; when more than one
// non-conflicting role matches, priority is Seller > Buyer > Courier.
//
// Returns ErrActorRoleConflict when the actor is both a buyer and a seller,
// and ErrNoRoleForActor when nothing matches. Both are fatal to
// initialization; callers must not fall back to a default role.
func (r *RoleResolver) Resolve(actor kernel.ActorKey, graph order.Graph) (role.Role, error) {
	if err := actor.Validate(); err != nil {
		return role.Unknown, err
	}

	if _, ok := r.admins[actor]; ok {
		return role.Admin, nil
	}

	isBuyer := graph.HasBuyer(actor)
	isSeller := graph.HasSeller(actor)
	isCourier := graph.HasCourier(actor)

	if isBuyer && isSeller {
		return role.Unknown, fmt.Errorf("actor %q: %w", actor, ErrActorRoleConflict)
	}

	switch {
	case isSeller:
		return role.Seller, nil
	case isBuyer:
		return role.Buyer, nil
	case isCourier:
		return role.Courier, nil
	default:
		return role.Unknown, fmt.Errorf("actor %q: %w", actor, ErrNoRoleForActor)
	}
}
