package models

import (
	"time"

	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// StoreModel is the persistence model for the Store aggregate root
type StoreModel struct {
	TenantAggregateModel
	Name        string     `gorm:"type:varchar(200);not null;index"`
	Location    string     `gorm:"type:varchar(300);not null"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index"`
	PhoneNumber string     `gorm:"type:varchar(50)"`
	IsActive    bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store
func (m *StoreModel) ToDomain() *inventory.Store {
	return &inventory.Store{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Location:            m.Location,
		ManagerID:           m.ManagerID,
		PhoneNumber:         m.PhoneNumber,
		IsActive:            m.IsActive,
	}
}

// StoreModelFromDomain creates a new persistence model from a domain Store
func StoreModelFromDomain(s *inventory.Store) *StoreModel {
	m := &StoreModel{
		Name:        s.Name,
		Location:    s.Location,
		ManagerID:   s.ManagerID,
		PhoneNumber: s.PhoneNumber,
		IsActive:    s.IsActive,
	}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	return m
}

// StoreInventoryModel holds one product's stock at one store. The database
// refuses a negative quantity and a second row for the same pair.
type StoreInventoryModel struct {
	TenantAggregateModel
	StoreID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_inventory_store_product"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_inventory_store_product;index"`
	QuantityInStock int       `gorm:"not null;default:0;check:chk_store_inventory_quantity,quantity_in_stock >= 0"`
	ReorderLevel    int       `gorm:"not null;default:10"`
	LastUpdated     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StoreInventoryModel) TableName() string {
	return "store_inventory"
}

// ToDomain converts the persistence model to a domain StoreInventory
func (m *StoreInventoryModel) ToDomain() *inventory.StoreInventory {
	return &inventory.StoreInventory{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		StoreID:             m.StoreID,
		ProductID:           m.ProductID,
		QuantityInStock:     m.QuantityInStock,
		ReorderLevel:        m.ReorderLevel,
		LastUpdated:         m.LastUpdated,
	}
}

// StoreInventoryModelFromDomain creates a new persistence model from a domain StoreInventory
func StoreInventoryModelFromDomain(inv *inventory.StoreInventory) *StoreInventoryModel {
	m := &StoreInventoryModel{
		StoreID:         inv.StoreID,
		ProductID:       inv.ProductID,
		QuantityInStock: inv.QuantityInStock,
		ReorderLevel:    inv.ReorderLevel,
		LastUpdated:     inv.LastUpdated,
	}
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	return m
}

// StockTransactionModel is one row of the append-only stock ledger
type StockTransactionModel struct {
	BaseModel
	TenantID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	StoreID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type          inventory.MovementType `gorm:"column:transaction_type;type:varchar(10);not null"`
	Quantity      int                    `gorm:"not null"`
	BalanceBefore int                    `gorm:"not null"`
	BalanceAfter  int                    `gorm:"not null"`
	Source        inventory.SourceType   `gorm:"type:varchar(20);not null"`
	SourceID      *uuid.UUID             `gorm:"type:uuid;index"`
	SalesPersonID *uuid.UUID             `gorm:"type:uuid"`
	Notes         string                 `gorm:"type:text"`
	CreatedBy     uuid.UUID              `gorm:"type:uuid;not null"`
	Date          time.Time              `gorm:"column:transaction_date;not null;index"`
}

// TableName returns the table name for GORM
func (StockTransactionModel) TableName() string {
	return "stock_transactions"
}

// ToDomain converts the persistence model to a domain StockTransaction
func (m *StockTransactionModel) ToDomain() inventory.StockTransaction {
	return inventory.StockTransaction{
		BaseEntity:    m.BaseModel.ToDomain(),
		TenantID:      m.TenantID,
		StoreID:       m.StoreID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Source:        m.Source,
		SourceID:      m.SourceID,
		SalesPersonID: m.SalesPersonID,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		Date:          m.Date,
	}
}

// StockTransactionModelFromDomain creates a new persistence model from a ledger entry
func StockTransactionModelFromDomain(tx *inventory.StockTransaction) *StockTransactionModel {
	m := &StockTransactionModel{
		TenantID:      tx.TenantID,
		StoreID:       tx.StoreID,
		ProductID:     tx.ProductID,
		Type:          tx.Type,
		Quantity:      tx.Quantity,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Source:        tx.Source,
		SourceID:      tx.SourceID,
		SalesPersonID: tx.SalesPersonID,
		Notes:         tx.Notes,
		CreatedBy:     tx.CreatedBy,
		Date:          tx.Date,
	}
	m.FromDomainBaseEntity(tx.BaseEntity)
	return m
}

// InventoryTransferModel is the persistence model for the InventoryTransfer
// aggregate root. The migration scopes the transfer_number unique index to the tenant.
type InventoryTransferModel struct {
	TenantAggregateModel
	TransferNumber string                   `gorm:"type:varchar(20);not null;uniqueIndex"`
	FromStoreID    uuid.UUID                `gorm:"type:uuid;not null;index"`
	ToStoreID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	Quantity       int                      `gorm:"not null"`
	Status         inventory.TransferStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RequestedBy    uuid.UUID                `gorm:"type:uuid;not null"`
	ApprovedBy     *uuid.UUID               `gorm:"type:uuid"`
	CompletedBy    *uuid.UUID               `gorm:"type:uuid"`
	RequestedDate  time.Time                `gorm:"not null;index"`
	ApprovedDate   *time.Time
	CompletedDate  *time.Time
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryTransferModel) TableName() string {
	return "inventory_transfers"
}

// ToDomain converts the persistence model to a domain InventoryTransfer
func (m *InventoryTransferModel) ToDomain() *inventory.InventoryTransfer {
	return &inventory.InventoryTransfer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		TransferNumber:      m.TransferNumber,
		FromStoreID:         m.FromStoreID,
		ToStoreID:           m.ToStoreID,
		ProductID:           m.ProductID,
		Quantity:            m.Quantity,
		Status:              m.Status,
		RequestedBy:         m.RequestedBy,
		ApprovedBy:          m.ApprovedBy,
		CompletedBy:         m.CompletedBy,
		RequestedDate:       m.RequestedDate,
		ApprovedDate:        m.ApprovedDate,
		CompletedDate:       m.CompletedDate,
		Notes:               m.Notes,
	}
}

// InventoryTransferModelFromDomain creates a new persistence model from a domain InventoryTransfer
func InventoryTransferModelFromDomain(t *inventory.InventoryTransfer) *InventoryTransferModel {
	m := &InventoryTransferModel{
		TransferNumber: t.TransferNumber,
		FromStoreID:    t.FromStoreID,
		ToStoreID:      t.ToStoreID,
		ProductID:      t.ProductID,
		Quantity:       t.Quantity,
		Status:         t.Status,
		RequestedBy:    t.RequestedBy,
		ApprovedBy:     t.ApprovedBy,
		CompletedBy:    t.CompletedBy,
		RequestedDate:  t.RequestedDate,
		ApprovedDate:   t.ApprovedDate,
		CompletedDate:  t.CompletedDate,
		Notes:          t.Notes,
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	return m
}
