package steprepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStepStateRepository implements StepStateStore using GORM. All records
// are partitioned by scope so several flows can share the same tables.
//
// A row that fails domain restoration is reported as absent rather than as
// an error; the flow then falls back to its defaults.
type GormStepStateRepository struct {
	db    *gorm.DB
	scope string
}

// NewGormStepStateRepository creates a new GORM step state repository bound
// to the given scope.
func NewGormStepStateRepository(db *gorm.DB, scope string) *GormStepStateRepository {
	return &GormStepStateRepository{
		db:    db,
		scope: scope,
	}
}

// Outcome retrieves the outcome recorded for a stage, or nil when none
// exists.
func (r *GormStepStateRepository) Outcome(ctx context.Context, s stage.Stage) (*step.Outcome, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var dto OutcomeDTO
	err := r.db.WithContext(ctx).
		First(&dto, "scope = ? AND stage_id = ?", r.scope, s.ID()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	outcome, err := outcomeToDomain(dto)
	if err != nil {
		return nil, nil
	}
	return &outcome, nil
}

// SaveOutcome upserts the outcome for a stage.
func (r *GormStepStateRepository) SaveOutcome(ctx context.Context, s stage.Stage, outcome step.Outcome) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := outcome.Validate(); err != nil {
		return err
	}

	dto := outcomeFromDomain(r.scope, s, outcome)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "stage_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"accepted", "rejected", "decided_at"}),
		}).
		Create(&dto).Error
}

// Pointer retrieves the current-stage pointer, or nil when none exists.
func (r *GormStepStateRepository) Pointer(ctx context.Context) (*step.Pointer, error) {
	var dto PointerDTO
	err := r.db.WithContext(ctx).First(&dto, "scope = ?", r.scope).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	pointer, err := pointerToDomain(dto)
	if err != nil {
		return nil, nil
	}
	return &pointer, nil
}

// SavePointer upserts the current-stage pointer.
func (r *GormStepStateRepository) SavePointer(ctx context.Context, p step.Pointer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := PointerDTO{
		Scope:   r.scope,
		StageID: p.Stage().ID(),
		Status:  p.Status(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}},
			DoUpdates: clause.AssignmentColumns([]string{"stage_id", "status", "updated_at"}),
		}).
		Create(&dto).Error
}
