package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRepairPointerCommandIsNotConstructed = errors.New(
	"RepairPointerCommand must be created via NewRepairPointerCommand constructor",
)

// RepairPointerCommand requests that the current-stage pointer be re-derived
// from persisted outcomes and written back. Run at startup and periodically
// so a pointer lost to a partial write is reconstructed.
type RepairPointerCommand struct {
	guard guard.ConstructorGuard
}

// NewRepairPointerCommand creates a pointer repair command.
func NewRepairPointerCommand() (RepairPointerCommand, error) {
	return RepairPointerCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRepairPointerCommandIsNotConstructed if validation fails.
func (c RepairPointerCommand) Validate() error {
	return c.guard.Validate(ErrRepairPointerCommandIsNotConstructed)
}
