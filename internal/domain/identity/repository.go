package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByEmail finds a user by login email across tenants
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByIDForTenant finds a user by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// Save inserts or updates a user
	Save(ctx context.Context, user *User) error
}
