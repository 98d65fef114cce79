package inventory

import (
	"time"

	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// CreateStoreRequest represents a request to open a store
type CreateStoreRequest struct {
	Name        string
	Location    string
	ManagerID   *uuid.UUID // must name an existing user
	PhoneNumber string
}

// UpdateStoreRequest is a partial store update; nil fields are left alone
type UpdateStoreRequest struct {
	Name        *string
	Location    *string
	ManagerID   *uuid.UUID
	PhoneNumber *string
	IsActive    *bool
}

// StoreListFilter represents store list query options
type StoreListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ToStoreResponse converts a domain Store to StoreResponse
func ToStoreResponse(s *inventory.Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Name:        s.Name,
		Location:    s.Location,
		ManagerID:   s.ManagerID,
		PhoneNumber: s.PhoneNumber,
		IsActive:    s.IsActive,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// ToStoreResponses converts a slice of stores
func ToStoreResponses(stores []inventory.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses
}

// InventoryListFilter represents stock list query options
type InventoryListFilter struct {
	Page      int
	PageSize  int
	StoreID   *uuid.UUID
	ProductID *uuid.UUID
	LowStock  bool
}

// InventoryResponse represents the stock of one product at one store
type InventoryResponse struct {
	ID              uuid.UUID `json:"id"`
	StoreID         uuid.UUID `json:"store_id"`
	ProductID       uuid.UUID `json:"product_id"`
	QuantityInStock int       `json:"quantity_in_stock"`
	ReorderLevel    int       `json:"reorder_level"`
	IsLowStock      bool      `json:"is_low_stock"`
	LastUpdated     time.Time `json:"last_updated"`
	Version         int       `json:"version"`
}

// ToInventoryResponse converts a domain StoreInventory to InventoryResponse
func ToInventoryResponse(inv *inventory.StoreInventory) InventoryResponse {
	return InventoryResponse{
		ID:              inv.ID,
		StoreID:         inv.StoreID,
		ProductID:       inv.ProductID,
		QuantityInStock: inv.QuantityInStock,
		ReorderLevel:    inv.ReorderLevel,
		IsLowStock:      inv.IsLowStock(),
		LastUpdated:     inv.LastUpdated,
		Version:         inv.Version,
	}
}

// ToInventoryResponses converts a slice of inventory rows
func ToInventoryResponses(rows []inventory.StoreInventory) []InventoryResponse {
	responses := make([]InventoryResponse, len(rows))
	for i := range rows {
		responses[i] = ToInventoryResponse(&rows[i])
	}
	return responses
}

// LowStockResponse lists rows at or below their reorder level
type LowStockResponse struct {
	Inventory []InventoryResponse `json:"inventory"`
	Count     int                 `json:"count"`
}

// AdjustStockRequest represents a manual stock movement at one store
type AdjustStockRequest struct {
	StoreID       uuid.UUID
	ProductID     uuid.UUID
	Type          inventory.MovementType
	Quantity      int
	SalesPersonID *uuid.UUID
	Notes         string
}

// AdjustStockResponse reports the movement and the resulting stock
type AdjustStockResponse struct {
	Inventory     InventoryResponse        `json:"inventory"`
	Transaction   StockTransactionResponse `json:"transaction"`
	PreviousStock int                      `json:"previous_stock"`
	NewStock      int                      `json:"new_stock"`
}

// SetReorderLevelRequest changes the low-stock threshold of one row
type SetReorderLevelRequest struct {
	StoreID      uuid.UUID
	ProductID    uuid.UUID
	ReorderLevel int
}

// StockTransactionFilter represents ledger query options
type StockTransactionFilter struct {
	Page      int
	PageSize  int
	StoreID   *uuid.UUID
	ProductID *uuid.UUID
}

// StockTransactionResponse represents one ledger entry
type StockTransactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       uuid.UUID  `json:"store_id"`
	ProductID     uuid.UUID  `json:"product_id"`
	Type          string     `json:"type"`
	Quantity      int        `json:"quantity"`
	BalanceBefore int        `json:"balance_before"`
	BalanceAfter  int        `json:"balance_after"`
	Source        string     `json:"source"`
	SourceID      *uuid.UUID `json:"source_id,omitempty"`
	SalesPersonID *uuid.UUID `json:"sales_person_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	Date          time.Time  `json:"date"`
}

// ToStockTransactionResponse converts a ledger entry
func ToStockTransactionResponse(tx *inventory.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:            tx.ID,
		StoreID:       tx.StoreID,
		ProductID:     tx.ProductID,
		Type:          tx.Type.String(),
		Quantity:      tx.Quantity,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Source:        string(tx.Source),
		SourceID:      tx.SourceID,
		SalesPersonID: tx.SalesPersonID,
		Notes:         tx.Notes,
		CreatedBy:     tx.CreatedBy,
		Date:          tx.Date,
	}
}

// CreateTransferRequest represents a request to move stock between stores
type CreateTransferRequest struct {
	FromStoreID uuid.UUID
	ToStoreID   uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	Notes       string
}

// TransferListFilter represents transfer list query options
type TransferListFilter struct {
	Page        int
	PageSize    int
	Status      *inventory.TransferStatus
	FromStoreID *uuid.UUID
	ToStoreID   *uuid.UUID
	ProductID   *uuid.UUID
}

// TransferResponse represents an inter-store transfer in API responses
type TransferResponse struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	TransferNumber string     `json:"transfer_number"`
	FromStoreID    uuid.UUID  `json:"from_store_id"`
	ToStoreID      uuid.UUID  `json:"to_store_id"`
	ProductID      uuid.UUID  `json:"product_id"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
	RequestedBy    uuid.UUID  `json:"requested_by"`
	ApprovedBy     *uuid.UUID `json:"approved_by,omitempty"`
	CompletedBy    *uuid.UUID `json:"completed_by,omitempty"`
	RequestedDate  time.Time  `json:"requested_date"`
	ApprovedDate   *time.Time `json:"approved_date,omitempty"`
	CompletedDate  *time.Time `json:"completed_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Version        int        `json:"version"`
}

// ToTransferResponse converts a domain InventoryTransfer to TransferResponse
func ToTransferResponse(t *inventory.InventoryTransfer) TransferResponse {
	return TransferResponse{
		ID:             t.ID,
		TenantID:       t.TenantID,
		TransferNumber: t.TransferNumber,
		FromStoreID:    t.FromStoreID,
		ToStoreID:      t.ToStoreID,
		ProductID:      t.ProductID,
		Quantity:       t.Quantity,
		Status:         t.Status.String(),
		RequestedBy:    t.RequestedBy,
		ApprovedBy:     t.ApprovedBy,
		CompletedBy:    t.CompletedBy,
		RequestedDate:  t.RequestedDate,
		ApprovedDate:   t.ApprovedDate,
		CompletedDate:  t.CompletedDate,
		Notes:          t.Notes,
		Version:        t.Version,
	}
}

// ToTransferResponses converts a slice of transfers
func ToTransferResponses(transfers []inventory.InventoryTransfer) []TransferResponse {
	responses := make([]TransferResponse, len(transfers))
	for i := range transfers {
		responses[i] = ToTransferResponse(&transfers[i])
	}
	return responses
}
