package inventory

import (
	"strings"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultReorderLevel is the low-stock threshold given to new inventory rows
const DefaultReorderLevel = 10

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// IsValid checks if the type is a valid MovementType
func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// SourceType records what caused a stock movement
type SourceType string

const (
	SourceAdjustment SourceType = "adjustment"
	SourceTransfer   SourceType = "transfer"
)

// StoreInventory is the stock of one product held at one store.
// QuantityInStock never goes below zero.
type StoreInventory struct {
	shared.TenantAggregateRoot
	StoreID         uuid.UUID
	ProductID       uuid.UUID
	QuantityInStock int
	ReorderLevel    int
	LastUpdated     time.Time
}

// NewStoreInventory creates an empty inventory row at the default reorder level
func NewStoreInventory(tenantID, storeID, productID uuid.UUID) (*StoreInventory, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	inv := &StoreInventory{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StoreID:             storeID,
		ProductID:           productID,
		ReorderLevel:        DefaultReorderLevel,
	}
	inv.LastUpdated = inv.CreatedAt
	return inv, nil
}

// IsLowStock reports whether the quantity is at or below the reorder level
func (i *StoreInventory) IsLowStock() bool {
	return i.QuantityInStock <= i.ReorderLevel
}

// CanFulfill reports whether quantity units can leave the store
func (i *StoreInventory) CanFulfill(quantity int) bool {
	return quantity > 0 && i.QuantityInStock >= quantity
}

// SetReorderLevel changes the low-stock threshold
func (i *StoreInventory) SetReorderLevel(level int) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	i.ReorderLevel = level
	i.Touch()
	i.IncrementVersion()
	return nil
}

// Movement describes one change to a store's stock
type Movement struct {
	Type          MovementType
	Quantity      int
	Source        SourceType
	SourceID      *uuid.UUID
	SalesPersonID *uuid.UUID
	Notes         string
	By            uuid.UUID
	At            time.Time
}

// Apply moves stock in or out and returns the ledger entry for it.
// An outbound movement larger than the stock on hand fails with
// INSUFFICIENT_STOCK and leaves the row untouched.
func (i *StoreInventory) Apply(m Movement) (*StockTransaction, error) {
	if !m.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Type must be in or out")
	}
	if m.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if m.At.IsZero() {
		m.At = time.Now()
	}
	if m.Source == "" {
		m.Source = SourceAdjustment
	}

	before := i.QuantityInStock
	after := before + m.Quantity
	if m.Type == MovementOut {
		after = before - m.Quantity
	}
	if after < 0 {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for this operation")
	}

	i.QuantityInStock = after
	i.LastUpdated = m.At
	i.Touch()
	i.IncrementVersion()

	tx := &StockTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      i.TenantID,
		StoreID:       i.StoreID,
		ProductID:     i.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		BalanceBefore: before,
		BalanceAfter:  after,
		Source:        m.Source,
		SourceID:      m.SourceID,
		SalesPersonID: m.SalesPersonID,
		Notes:         strings.TrimSpace(m.Notes),
		CreatedBy:     m.By,
		Date:          m.At,
	}

	i.AddDomainEvent(NewStockMovedEvent(i, tx))
	if before > i.ReorderLevel && i.IsLowStock() {
		i.AddDomainEvent(NewStockBelowReorderLevelEvent(i))
	}
	return tx, nil
}

// StockTransaction is the immutable ledger entry of one stock movement
type StockTransaction struct {
	shared.BaseEntity
	TenantID      uuid.UUID
	StoreID       uuid.UUID
	ProductID     uuid.UUID
	Type          MovementType
	Quantity      int
	BalanceBefore int
	BalanceAfter  int
	Source        SourceType
	SourceID      *uuid.UUID
	SalesPersonID *uuid.UUID
	Notes         string
	CreatedBy     uuid.UUID
	Date          time.Time
}
