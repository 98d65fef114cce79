package inventory

import (
	"context"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StoreFilter extends the common filter; Search matches name or location
type StoreFilter struct {
	shared.Filter
	IsActive *bool
}

// StoreRepository persists Store aggregates
type StoreRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Store, error)

	// FindAllForTenant lists stores ordered by name
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter StoreFilter) ([]Store, error)

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter StoreFilter) (int64, error)

	Save(ctx context.Context, s *Store) error

	// SaveWithLock updates a store only if its stored version is s.Version-1
	SaveWithLock(ctx context.Context, s *Store) error
}

// InventoryFilter narrows stock queries
type InventoryFilter struct {
	shared.Filter
	StoreID   *uuid.UUID
	ProductID *uuid.UUID
	// LowStock keeps rows at or below their reorder level
	LowStock bool
}

// StoreInventoryRepository persists per-store stock rows. A store holds at
// most one row per product.
type StoreInventoryRepository interface {
	// FindByStoreAndProduct returns the row, or ErrNotFound if the store never held the product
	FindByStoreAndProduct(ctx context.Context, tenantID, storeID, productID uuid.UUID) (*StoreInventory, error)

	// FindByStoreAndProductForUpdate is FindByStoreAndProduct with the row locked
	// for the surrounding transaction
	FindByStoreAndProductForUpdate(ctx context.Context, tenantID, storeID, productID uuid.UUID) (*StoreInventory, error)

	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InventoryFilter) ([]StoreInventory, error)

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InventoryFilter) (int64, error)

	// Create inserts a new row; a second row for the same store and product
	// surfaces as shared.ErrAlreadyExists
	Create(ctx context.Context, inv *StoreInventory) error

	// SaveWithLock updates a row only if its stored version is inv.Version-1
	SaveWithLock(ctx context.Context, inv *StoreInventory) error
}

// StockTransactionFilter narrows the stock ledger
type StockTransactionFilter struct {
	shared.Filter
	StoreID   *uuid.UUID
	ProductID *uuid.UUID
}

// StockTransactionRepository stores the append-only stock ledger
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *StockTransaction) error

	// FindAllForTenant lists ledger entries newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter StockTransactionFilter) ([]StockTransaction, error)
}

// TransferFilter narrows transfer lists
type TransferFilter struct {
	shared.Filter
	Status      *TransferStatus
	FromStoreID *uuid.UUID
	ToStoreID   *uuid.UUID
	ProductID   *uuid.UUID
}

// TransferRepository persists InventoryTransfer aggregates
type TransferRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InventoryTransfer, error)

	// FindByIDForUpdate finds a transfer and locks its row
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*InventoryTransfer, error)

	// FindAllForTenant lists transfers newest request first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransferFilter) ([]InventoryTransfer, error)

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TransferFilter) (int64, error)

	// Save inserts a transfer; a taken number surfaces as shared.ErrAlreadyExists
	Save(ctx context.Context, t *InventoryTransfer) error

	// SaveWithLock updates a transfer only if its stored version is t.Version-1
	SaveWithLock(ctx context.Context, t *InventoryTransfer) error

	// GenerateTransferNumber returns the next TRF-YYYYMM-NNNN for at's month
	GenerateTransferNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error)
}
