package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(tenantID, "  Amina  ", " Amina@Example.com ", "Password123", RoleSalesperson)

		require.NoError(t, err)
		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "Amina", user.Name)
		assert.Equal(t, "amina@example.com", user.Email)
		assert.NotEqual(t, "Password123", user.PasswordHash)
		assert.True(t, user.Active)
		assert.True(t, user.CanLogin())
		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("wrong-password"))
	})

	t.Run("fails with invalid fields", func(t *testing.T) {
		_, err := NewUser(tenantID, "", "a@example.com", "Password123", RoleCEO)
		assert.Contains(t, err.Error(), "Name cannot be empty")

		_, err = NewUser(tenantID, "A", "not-an-email", "Password123", RoleCEO)
		assert.Contains(t, err.Error(), "Invalid email")

		_, err = NewUser(tenantID, "A", "a@example.com", "short", RoleCEO)
		assert.Contains(t, err.Error(), "at least 8 characters")

		_, err = NewUser(tenantID, "A", "a@example.com", "Password123", Role("admin"))
		assert.Contains(t, err.Error(), "Role must be one of")
	})
}

func TestUser_Lifecycle(t *testing.T) {
	user, err := NewUser(uuid.New(), "Bo", "bo@example.com", "Password123", RoleSupervisor)
	require.NoError(t, err)

	user.Deactivate()
	assert.False(t, user.CanLogin())
	user.Activate()
	assert.True(t, user.CanLogin())

	require.NoError(t, user.SetPassword("NewPassword456"))
	assert.True(t, user.VerifyPassword("NewPassword456"))
	assert.False(t, user.VerifyPassword("Password123"))

	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)

	supervisor := uuid.New()
	user.SetSupervisor(&supervisor)
	assert.Equal(t, &supervisor, user.SupervisorID)
}

func TestRole(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.IsValid())
	}
	assert.False(t, Role("admin").IsValid())

	assert.False(t, RoleSalesperson.CanManageFinance())
	assert.True(t, RoleSupervisor.CanManageFinance())
	assert.True(t, RoleCEO.CanManageFinance())

	assert.False(t, RoleSupervisor.CanDeleteInvoices())
	assert.True(t, RoleCEO.CanDeleteInvoices())

	assert.True(t, RoleSalesperson.IsSalesperson())
	assert.False(t, RoleCEO.IsSalesperson())
}

func TestActor(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	sales := NewActor(self, RoleSalesperson)
	assert.True(t, sales.IsSalesperson())
	assert.True(t, sales.CanAccessSalesperson(self))
	assert.False(t, sales.CanAccessSalesperson(other))

	supervisor := NewActor(self, RoleSupervisor)
	assert.False(t, supervisor.IsSalesperson())
	assert.True(t, supervisor.CanAccessSalesperson(other))
}
