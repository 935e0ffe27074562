package memstore_test

import (
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memstore"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/step"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOutcome(t *testing.T, candidate, chosen kernel.KeySet) step.Outcome {
	t.Helper()

	outcome, err := step.NewOutcome(candidate, chosen, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return outcome
}

func mustPointer(t *testing.T, s stage.Stage) step.Pointer {
	t.Helper()

	p, err := step.NewPointer(s)
	require.NoError(t, err)
	return p
}

func TestStore_Outcome(t *testing.T) {
	t.Run("should return nil for an unrecorded stage", func(t *testing.T) {
		store := memstore.NewStore()

		outcome, err := store.Outcome(t.Context(), stage.Review)

		require.NoError(t, err)
		assert.Nil(t, outcome)
	})

	t.Run("should round-trip an outcome", func(t *testing.T) {
		store := memstore.NewStore()
		saved := mustOutcome(t,
			kernel.NewKeySet("product_key_1", "product_key_2"),
			kernel.NewKeySet("product_key_1"))
		require.NoError(t, store.SaveOutcome(t.Context(), stage.Review, saved))

		loaded, err := store.Outcome(t.Context(), stage.Review)

		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.True(t, saved.Accepted().IsEqual(loaded.Accepted()))
		assert.True(t, saved.Rejected().IsEqual(loaded.Rejected()))
	})

	t.Run("should overwrite a prior outcome for the same stage", func(t *testing.T) {
		store := memstore.NewStore()
		candidate := kernel.NewKeySet("product_key_1", "product_key_2")
		require.NoError(t, store.SaveOutcome(t.Context(), stage.Review,
			mustOutcome(t, candidate, kernel.NewKeySet("product_key_1"))))
		require.NoError(t, store.SaveOutcome(t.Context(), stage.Review,
			mustOutcome(t, candidate, kernel.NewKeySet("product_key_2"))))

		loaded, err := store.Outcome(t.Context(), stage.Review)

		require.NoError(t, err)
		assert.Equal(t, []string{"product_key_2"}, loaded.Accepted().Strings())
	})

	t.Run("should keep outcomes of different stages apart", func(t *testing.T) {
		store := memstore.NewStore()
		candidate := kernel.NewKeySet("product_key_1")
		require.NoError(t, store.SaveOutcome(t.Context(), stage.Review,
			mustOutcome(t, candidate, candidate)))

		loaded, err := store.Outcome(t.Context(), stage.Confirmed)

		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("should reject an unconstructed outcome", func(t *testing.T) {
		store := memstore.NewStore()

		err := store.SaveOutcome(t.Context(), stage.Review, step.Outcome{})

		require.Error(t, err)
	})
}

func TestStore_Pointer(t *testing.T) {
	t.Run("should return nil before any pointer is saved", func(t *testing.T) {
		store := memstore.NewStore()

		pointer, err := store.Pointer(t.Context())

		require.NoError(t, err)
		assert.Nil(t, pointer)
	})

	t.Run("should round-trip the pointer", func(t *testing.T) {
		store := memstore.NewStore()
		require.NoError(t, store.SavePointer(t.Context(), mustPointer(t, stage.Shipped)))

		pointer, err := store.Pointer(t.Context())

		require.NoError(t, err)
		require.NotNil(t, pointer)
		assert.Equal(t, stage.Shipped, pointer.Stage())
	})
}

func TestUnitOfWork(t *testing.T) {
	t.Run("should keep writes after commit", func(t *testing.T) {
		store := memstore.NewStore()
		uow := memstore.NewUnitOfWorkFactory(store).Create()
		ctx := t.Context()

		require.NoError(t, uow.Begin(ctx))
		candidate := kernel.NewKeySet("product_key_1")
		require.NoError(t, uow.StepStates().SaveOutcome(ctx, stage.Review,
			mustOutcome(t, candidate, candidate)))
		require.NoError(t, uow.Commit(ctx))

		outcome, err := store.Outcome(ctx, stage.Review)
		require.NoError(t, err)
		assert.NotNil(t, outcome)
	})

	t.Run("should restore outcomes and pointer on rollback", func(t *testing.T) {
		store := memstore.NewStore()
		require.NoError(t, store.SavePointer(t.Context(), mustPointer(t, stage.Review)))

		uow := memstore.NewUnitOfWorkFactory(store).Create()
		ctx := t.Context()

		require.NoError(t, uow.Begin(ctx))
		candidate := kernel.NewKeySet("product_key_1")
		require.NoError(t, uow.StepStates().SaveOutcome(ctx, stage.Review,
			mustOutcome(t, candidate, candidate)))
		require.NoError(t, uow.StepStates().SavePointer(ctx, mustPointer(t, stage.Confirmed)))
		require.NoError(t, uow.Rollback(ctx))

		outcome, err := store.Outcome(ctx, stage.Review)
		require.NoError(t, err)
		assert.Nil(t, outcome, "rolled back outcome must not persist")

		pointer, err := store.Pointer(ctx)
		require.NoError(t, err)
		require.NotNil(t, pointer)
		assert.Equal(t, stage.Review, pointer.Stage())
	})

	t.Run("should fail commit and rollback without begin", func(t *testing.T) {
		uow := memstore.NewUnitOfWorkFactory(memstore.NewStore()).Create()

		assert.ErrorIs(t, uow.Commit(t.Context()), memstore.ErrNoActiveTransaction)
		assert.ErrorIs(t, uow.Rollback(t.Context()), memstore.ErrNoActiveTransaction)
	})
}
