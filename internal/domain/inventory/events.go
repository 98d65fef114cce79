package inventory

import (
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type names
const (
	EventTypeStoreCreated           = "StoreCreated"
	EventTypeStockMoved             = "StockMoved"
	EventTypeStockBelowReorderLevel = "StockBelowReorderLevel"
	EventTypeTransferRequested      = "TransferRequested"
	EventTypeTransferStatusChanged  = "TransferStatusChanged"
)

const (
	aggregateTypeStore          = "Store"
	aggregateTypeStoreInventory = "StoreInventory"
	aggregateTypeTransfer       = "InventoryTransfer"
)

// StoreCreatedEvent is raised when a store is opened
type StoreCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string `json:"name"`
	Location string `json:"location"`
}

// NewStoreCreatedEvent creates a StoreCreatedEvent
func NewStoreCreatedEvent(s *Store) *StoreCreatedEvent {
	return &StoreCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreCreated, aggregateTypeStore, s.ID, s.TenantID),
		Name:            s.Name,
		Location:        s.Location,
	}
}

// StockMovedEvent is raised for every stock movement at a store
type StockMovedEvent struct {
	shared.BaseDomainEvent
	StoreID       uuid.UUID    `json:"store_id"`
	ProductID     uuid.UUID    `json:"product_id"`
	Type          MovementType `json:"type"`
	Quantity      int          `json:"quantity"`
	BalanceBefore int          `json:"balance_before"`
	BalanceAfter  int          `json:"balance_after"`
	Source        SourceType   `json:"source"`
}

// NewStockMovedEvent creates a StockMovedEvent
func NewStockMovedEvent(i *StoreInventory, tx *StockTransaction) *StockMovedEvent {
	return &StockMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMoved, aggregateTypeStoreInventory, i.ID, i.TenantID),
		StoreID:         i.StoreID,
		ProductID:       i.ProductID,
		Type:            tx.Type,
		Quantity:        tx.Quantity,
		BalanceBefore:   tx.BalanceBefore,
		BalanceAfter:    tx.BalanceAfter,
		Source:          tx.Source,
	}
}

// StockBelowReorderLevelEvent is raised when a movement takes stock down to
// or below the reorder level
type StockBelowReorderLevelEvent struct {
	shared.BaseDomainEvent
	StoreID         uuid.UUID `json:"store_id"`
	ProductID       uuid.UUID `json:"product_id"`
	QuantityInStock int       `json:"quantity_in_stock"`
	ReorderLevel    int       `json:"reorder_level"`
}

// NewStockBelowReorderLevelEvent creates a StockBelowReorderLevelEvent
func NewStockBelowReorderLevelEvent(i *StoreInventory) *StockBelowReorderLevelEvent {
	return &StockBelowReorderLevelEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowReorderLevel, aggregateTypeStoreInventory, i.ID, i.TenantID),
		StoreID:         i.StoreID,
		ProductID:       i.ProductID,
		QuantityInStock: i.QuantityInStock,
		ReorderLevel:    i.ReorderLevel,
	}
}

// TransferRequestedEvent is raised when a transfer is created
type TransferRequestedEvent struct {
	shared.BaseDomainEvent
	TransferNumber string    `json:"transfer_number"`
	FromStoreID    uuid.UUID `json:"from_store_id"`
	ToStoreID      uuid.UUID `json:"to_store_id"`
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int       `json:"quantity"`
}

// NewTransferRequestedEvent creates a TransferRequestedEvent
func NewTransferRequestedEvent(t *InventoryTransfer) *TransferRequestedEvent {
	return &TransferRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferRequested, aggregateTypeTransfer, t.ID, t.TenantID),
		TransferNumber:  t.TransferNumber,
		FromStoreID:     t.FromStoreID,
		ToStoreID:       t.ToStoreID,
		ProductID:       t.ProductID,
		Quantity:        t.Quantity,
	}
}

// TransferStatusChangedEvent is raised on approval, completion and cancellation
type TransferStatusChangedEvent struct {
	shared.BaseDomainEvent
	TransferNumber string         `json:"transfer_number"`
	OldStatus      TransferStatus `json:"old_status"`
	NewStatus      TransferStatus `json:"new_status"`
}

// NewTransferStatusChangedEvent creates a TransferStatusChangedEvent
func NewTransferStatusChangedEvent(t *InventoryTransfer, previous TransferStatus) *TransferStatusChangedEvent {
	return &TransferStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferStatusChanged, aggregateTypeTransfer, t.ID, t.TenantID),
		TransferNumber:  t.TransferNumber,
		OldStatus:       previous,
		NewStatus:       t.Status,
	}
}
