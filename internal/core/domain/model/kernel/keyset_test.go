package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySet_Construction(t *testing.T) {
	t.Run("should drop duplicates and empty keys", func(t *testing.T) {
		s := kernel.NewKeySet("a", "b", "a", "")

		assert.Equal(t, 2, s.Len())
		assert.True(t, s.Contains("a"))
		assert.True(t, s.Contains("b"))
		assert.False(t, s.Contains(""))
	})

	t.Run("should treat zero value as empty set", func(t *testing.T) {
		var s kernel.KeySet

		assert.True(t, s.IsEmpty())
		assert.False(t, s.Contains("a"))
		assert.Empty(t, s.Strings())
	})

	t.Run("should build from raw strings", func(t *testing.T) {
		s := kernel.KeySetFromStrings([]string{"p2", "p1"})

		assert.Equal(t, []string{"p1", "p2"}, s.Strings())
	})
}

func TestKeySet_Algebra(t *testing.T) {
	ab := kernel.NewKeySet("a", "b")
	bc := kernel.NewKeySet("b", "c")

	t.Run("should union", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, ab.Union(bc).Strings())
	})

	t.Run("should intersect", func(t *testing.T) {
		assert.Equal(t, []string{"b"}, ab.Intersect(bc).Strings())
	})

	t.Run("should subtract", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, ab.Subtract(bc).Strings())
	})

	t.Run("should not mutate operands", func(t *testing.T) {
		_ = ab.Union(bc)
		_ = ab.Subtract(bc)

		assert.Equal(t, []string{"a", "b"}, ab.Strings())
		assert.Equal(t, []string{"b", "c"}, bc.Strings())
	})

	t.Run("should partition into disjoint complement", func(t *testing.T) {
		candidate := kernel.NewKeySet("a", "b", "c", "d")
		chosen := kernel.NewKeySet("a", "c")
		rejected := candidate.Subtract(chosen)

		assert.True(t, chosen.IsDisjointFrom(rejected))
		assert.True(t, chosen.Union(rejected).IsEqual(candidate))
	})
}

func TestKeySet_Predicates(t *testing.T) {
	t.Run("should report subset relation", func(t *testing.T) {
		assert.True(t, kernel.NewKeySet("a").IsSubsetOf(kernel.NewKeySet("a", "b")))
		assert.False(t, kernel.NewKeySet("a", "c").IsSubsetOf(kernel.NewKeySet("a", "b")))
		assert.True(t, kernel.NewKeySet().IsSubsetOf(kernel.NewKeySet()))
	})

	t.Run("should report equality regardless of construction order", func(t *testing.T) {
		require.True(t, kernel.NewKeySet("a", "b").IsEqual(kernel.NewKeySet("b", "a")))
		require.False(t, kernel.NewKeySet("a").IsEqual(kernel.NewKeySet("a", "b")))
	})

	t.Run("should sort keys deterministically", func(t *testing.T) {
		s := kernel.NewKeySet("z", "m", "a")

		assert.Equal(t, []kernel.ProductKey{"a", "m", "z"}, s.Sorted())
	})
}
