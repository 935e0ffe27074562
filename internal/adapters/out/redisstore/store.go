// Package redisstore provides the Redis implementation of the step state
// store. Records are JSON values under keys that keep the legacy naming:
// "<scope>:<stage-id>_state" for outcomes and "<scope>:current_step_state"
// for the pointer.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"

	"github.com/redis/go-redis/v9"
)

type outcomeRecord struct {
	Accepted  []string  `json:"accepted"`
	Rejected  []string  `json:"rejected"`
	DecidedAt time.Time `json:"decided_at"`
}

type pointerRecord struct {
	StageID string `json:"stage_id"`
	Status  string `json:"status"`
}

func outcomeKey(scope string, s stage.Stage) string {
	return scope + ":" + s.ID() + "_state"
}

func pointerKey(scope string) string {
	return scope + ":current_step_state"
}

func recordFromOutcome(outcome step.Outcome) outcomeRecord {
	return outcomeRecord{
		Accepted:  outcome.Accepted().Strings(),
		Rejected:  outcome.Rejected().Strings(),
		DecidedAt: outcome.DecidedAt(),
	}
}

func recordToOutcome(rec outcomeRecord) (step.Outcome, error) {
	return step.RestoreOutcome(
		kernel.KeySetFromStrings(rec.Accepted),
		kernel.KeySetFromStrings(rec.Rejected),
		rec.DecidedAt,
	)
}

func recordToPointer(rec pointerRecord) (step.Pointer, error) {
	s, err := stage.FromID(rec.StageID)
	if err != nil {
		return step.Pointer{}, err
	}
	return step.NewPointer(s)
}

// Store implements StepStateStore over a Redis client with immediate
// writes. Corrupt or unparseable values are reported as absent so the flow
// falls back to defaults.
type Store struct {
	client *redis.Client
	scope  string
}

// NewStore creates a Redis-backed step state store bound to the given
// scope.
func NewStore(client *redis.Client, scope string) *Store {
	return &Store{
		client: client,
		scope:  scope,
	}
}

// Outcome retrieves the outcome recorded for a stage, or nil when none
// exists.
func (s *Store) Outcome(ctx context.Context, st stage.Stage) (*step.Outcome, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, outcomeKey(s.scope, st)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec outcomeRecord
	if err = json.Unmarshal(raw, &rec); err != nil {
		return nil, nil
	}

	outcome, err := recordToOutcome(rec)
	if err != nil {
		return nil, nil
	}
	return &outcome, nil
}

// SaveOutcome persists the outcome for a stage, overwriting any prior
// record.
func (s *Store) SaveOutcome(ctx context.Context, st stage.Stage, outcome step.Outcome) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if err := outcome.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(recordFromOutcome(outcome))
	if err != nil {
		return err
	}

	return s.client.Set(ctx, outcomeKey(s.scope, st), raw, 0).Err()
}

// Pointer retrieves the current-stage pointer, or nil when none exists.
func (s *Store) Pointer(ctx context.Context) (*step.Pointer, error) {
	raw, err := s.client.Get(ctx, pointerKey(s.scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec pointerRecord
	if err = json.Unmarshal(raw, &rec); err != nil {
		return nil, nil
	}

	pointer, err := recordToPointer(rec)
	if err != nil {
		return nil, nil
	}
	return &pointer, nil
}

// SavePointer persists the current-stage pointer, overwriting any prior
// record.
func (s *Store) SavePointer(ctx context.Context, p step.Pointer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(pointerRecord{
		StageID: p.Stage().ID(),
		Status:  p.Status(),
	})
	if err != nil {
		return err
	}

	return s.client.Set(ctx, pointerKey(s.scope), raw, 0).Err()
}
