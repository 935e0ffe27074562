// Package steprepo provides data transfer objects and mapping functions for
// step state persistence. It implements the repository side of the step
// state store over relational tables: one row per stage outcome plus a
// single pointer row per scope.
package steprepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OutcomeDTO represents the database structure for persisting stage
// outcomes. Accepted and rejected keys are stored as text arrays; the
// (scope, stage_id) pair identifies the record and is overwritten in place
// on every re-decision.
type OutcomeDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Scope     string         `gorm:"uniqueIndex:idx_outcome_scope_stage"`
	StageID   string         `gorm:"uniqueIndex:idx_outcome_scope_stage"`
	Accepted  pq.StringArray `gorm:"type:text[]"`
	Rejected  pq.StringArray `gorm:"type:text[]"`
	DecidedAt time.Time
}

// TableName specifies the database table name for outcome records.
func (OutcomeDTO) TableName() string {
	return "step_outcomes"
}

// PointerDTO represents the persisted current-stage pointer. One row per
// scope.
type PointerDTO struct {
	Scope     string `gorm:"primaryKey"`
	StageID   string
	Status    string
	UpdatedAt time.Time
}

// TableName specifies the database table name for pointer records.
func (PointerDTO) TableName() string {
	return "step_pointers"
}

// outcomeFromDomain converts an outcome to its database representation.
func outcomeFromDomain(scope string, s stage.Stage, outcome step.Outcome) OutcomeDTO {
	return OutcomeDTO{
		ID:        uuid.New(),
		Scope:     scope,
		StageID:   s.ID(),
		Accepted:  pq.StringArray(outcome.Accepted().Strings()),
		Rejected:  pq.StringArray(outcome.Rejected().Strings()),
		DecidedAt: outcome.DecidedAt(),
	}
}

// outcomeToDomain converts a database row back to an outcome.
func outcomeToDomain(dto OutcomeDTO) (step.Outcome, error) {
	return step.RestoreOutcome(
		kernel.KeySetFromStrings(dto.Accepted),
		kernel.KeySetFromStrings(dto.Rejected),
		dto.DecidedAt,
	)
}

// pointerToDomain converts a database row back to a pointer.
func pointerToDomain(dto PointerDTO) (step.Pointer, error) {
	s, err := stage.FromID(dto.StageID)
	if err != nil {
		return step.Pointer{}, err
	}
	return step.NewPointer(s)
}
