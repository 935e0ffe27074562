package redisstore

import (
	"context"
	"encoding/json"
	"errors"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// ErrNoActiveTransaction is returned when Commit or Rollback runs without a
// preceding Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates Redis-backed UnitOfWork instances sharing one
// client and scope.
type UnitOfWorkFactory struct {
	client *redis.Client
	scope  string
}

// NewUnitOfWorkFactory creates a factory for Redis unit of work instances.
func NewUnitOfWorkFactory(client *redis.Client, scope string) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{client: client, scope: scope}
}

// Create produces a fresh UnitOfWork with no open transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		client: f.client,
		scope:  f.scope,
	}
}

// UnitOfWork buffers writes and flushes them in a single MULTI/EXEC pipeline
// on Commit. Reads inside the transaction see the buffered writes first and
// fall through to Redis for everything else, so derivations over
// just-written state behave as they would after commit.
type UnitOfWork struct {
	client *redis.Client
	scope  string

	active          bool
	pendingOutcomes map[stage.Stage]step.Outcome
	pendingPointer  *step.Pointer
}

// Begin starts buffering writes. Repeated calls are no-ops.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.active = true
	uow.pendingOutcomes = make(map[stage.Stage]step.Outcome)
	uow.pendingPointer = nil
	return nil
}

// Commit flushes all buffered writes atomically.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	_, err := uow.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for st, outcome := range uow.pendingOutcomes {
			raw, marshalErr := json.Marshal(recordFromOutcome(outcome))
			if marshalErr != nil {
				return marshalErr
			}
			pipe.Set(ctx, outcomeKey(uow.scope, st), raw, 0)
		}

		if uow.pendingPointer != nil {
			raw, marshalErr := json.Marshal(pointerRecord{
				StageID: uow.pendingPointer.Stage().ID(),
				Status:  uow.pendingPointer.Status(),
			})
			if marshalErr != nil {
				return marshalErr
			}
			pipe.Set(ctx, pointerKey(uow.scope), raw, 0)
		}

		return nil
	})

	uow.reset()
	return err
}

// Rollback discards all buffered writes.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.reset()
	return nil
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.pendingOutcomes = nil
	uow.pendingPointer = nil
}

// StepStates returns a store view over the transaction's buffered writes.
func (uow *UnitOfWork) StepStates() ports.StepStateStore {
	return &txStore{
		base: NewStore(uow.client, uow.scope),
		uow:  uow,
	}
}

// txStore overlays buffered writes onto the underlying store.
type txStore struct {
	base *Store
	uow  *UnitOfWork
}

func (s *txStore) Outcome(ctx context.Context, st stage.Stage) (*step.Outcome, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}

	if s.uow.active {
		if outcome, ok := s.uow.pendingOutcomes[st]; ok {
			return &outcome, nil
		}
	}
	return s.base.Outcome(ctx, st)
}

func (s *txStore) SaveOutcome(ctx context.Context, st stage.Stage, outcome step.Outcome) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if err := outcome.Validate(); err != nil {
		return err
	}

	if !s.uow.active {
		return s.base.SaveOutcome(ctx, st, outcome)
	}

	s.uow.pendingOutcomes[st] = outcome
	return nil
}

func (s *txStore) Pointer(ctx context.Context) (*step.Pointer, error) {
	if s.uow.active && s.uow.pendingPointer != nil {
		p := *s.uow.pendingPointer
		return &p, nil
	}
	return s.base.Pointer(ctx)
}

func (s *txStore) SavePointer(ctx context.Context, p step.Pointer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if !s.uow.active {
		return s.base.SavePointer(ctx, p)
	}

	s.uow.pendingPointer = &p
	return nil
}
