package role_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/role"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Validate(t *testing.T) {
	t.Run("should validate the four defined roles", func(t *testing.T) {
		for _, r := range []role.Role{role.Admin, role.Seller, role.Buyer, role.Courier} {
			require.NoError(t, r.Validate())
		}
	})

	t.Run("should reject Unknown", func(t *testing.T) {
		err := role.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRole_FromString(t *testing.T) {
	t.Run("should round-trip role names", func(t *testing.T) {
		for _, r := range []role.Role{role.Admin, role.Seller, role.Buyer, role.Courier} {
			parsed, err := role.FromString(r.String())

			require.NoError(t, err)
			assert.Equal(t, r, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := role.FromString("supplier")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should not parse the Unknown placeholder", func(t *testing.T) {
		_, err := role.FromString("Unknown")

		require.Error(t, err)
	})
}
