package persistence

import (
	"context"
	"testing"

	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db.DB)
	ctx := context.Background()
	tenantID := uuid.New()

	user, err := identity.NewUser(tenantID, "Amina", "amina@example.com", "password123", identity.RoleSalesperson)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "  AMINA@example.com ")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, identity.RoleSalesperson, found.Role)
		assert.True(t, found.VerifyPassword("password123"))
	})

	t.Run("empty email is not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("records login", func(t *testing.T) {
		user.RecordLogin()
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByIDForTenant(ctx, tenantID, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.LastLoginAt)
	})

	t.Run("email is unique", func(t *testing.T) {
		dup, err := identity.NewUser(tenantID, "Other", "amina@example.com", "password123", identity.RoleCEO)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})
}
