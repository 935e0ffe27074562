// Package memstore provides an in-memory step state store and unit of work.
// It is the default driver for local runs and the fixture store in tests.
package memstore

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
)

// Store holds step state in process memory, safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	outcomes map[stage.Stage]step.Outcome
	pointer  *step.Pointer
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		outcomes: make(map[stage.Stage]step.Outcome),
	}
}

// Outcome retrieves the outcome recorded for a stage, or nil when none
// exists.
func (s *Store) Outcome(_ context.Context, st stage.Stage) (*step.Outcome, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	outcome, ok := s.outcomes[st]
	if !ok {
		return nil, nil
	}
	return &outcome, nil
}

// SaveOutcome persists the outcome for a stage, overwriting any prior
// record.
func (s *Store) SaveOutcome(_ context.Context, st stage.Stage, outcome step.Outcome) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if err := outcome.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes[st] = outcome
	return nil
}

// Pointer retrieves the current-stage pointer, or nil when none exists.
func (s *Store) Pointer(_ context.Context) (*step.Pointer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pointer == nil {
		return nil, nil
	}
	p := *s.pointer
	return &p, nil
}

// SavePointer persists the current-stage pointer, overwriting any prior
// record.
func (s *Store) SavePointer(_ context.Context, p step.Pointer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pointer = &p
	return nil
}

func (s *Store) snapshot() (map[stage.Stage]step.Outcome, *step.Pointer) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outcomes := make(map[stage.Stage]step.Outcome, len(s.outcomes))
	for st, outcome := range s.outcomes {
		outcomes[st] = outcome
	}

	var pointer *step.Pointer
	if s.pointer != nil {
		p := *s.pointer
		pointer = &p
	}
	return outcomes, pointer
}

func (s *Store) restore(outcomes map[stage.Stage]step.Outcome, pointer *step.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes = outcomes
	s.pointer = pointer
}
