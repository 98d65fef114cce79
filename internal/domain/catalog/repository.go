package catalog

import (
	"context"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductFilter extends the common filter with catalog criteria.
// Search matches name or SKU.
type ProductFilter struct {
	shared.Filter
	Category string
	IsActive *bool
}

// ProductRepository persists Product aggregates
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindAllForTenant lists products ordered by name
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]Product, error)

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) (int64, error)

	// Save inserts a product; a taken SKU surfaces as shared.ErrAlreadyExists
	Save(ctx context.Context, p *Product) error

	// SaveWithLock updates a product only if its stored version is p.Version-1
	SaveWithLock(ctx context.Context, p *Product) error
}
