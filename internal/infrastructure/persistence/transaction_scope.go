package persistence

import (
	"context"

	appdebt "github.com/distributor/backend/internal/application/debt"
	appinventory "github.com/distributor/backend/internal/application/inventory"
	appinvoice "github.com/distributor/backend/internal/application/invoice"
	"github.com/distributor/backend/internal/domain/debt"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/invoice"
	"gorm.io/gorm"
)

// GormDebtTransactionScope implements the debt TransactionScope using GORM transactions.
// If the function returns an error, the transaction is rolled back and row
// locks taken inside it are released.
type GormDebtTransactionScope struct {
	db *gorm.DB
}

// NewGormDebtTransactionScope creates a new GormDebtTransactionScope.
func NewGormDebtTransactionScope(db *gorm.DB) *GormDebtTransactionScope {
	return &GormDebtTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormDebtTransactionScope) Execute(ctx context.Context, fn func(repos appdebt.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormDebtRepositories{tx: tx})
	})
}

type gormDebtRepositories struct {
	tx *gorm.DB
}

// DebtRepo returns the debt repository scoped to the current transaction.
func (r *gormDebtRepositories) DebtRepo() debt.DebtRepository {
	return NewGormDebtRepository(r.tx)
}

// PlanRepo returns the payment plan repository scoped to the current transaction.
func (r *gormDebtRepositories) PlanRepo() debt.PaymentPlanRepository {
	return NewGormPaymentPlanRepository(r.tx)
}

// GormInvoiceTransactionScope implements the invoice TransactionScope using GORM transactions.
type GormInvoiceTransactionScope struct {
	db *gorm.DB
}

// NewGormInvoiceTransactionScope creates a new GormInvoiceTransactionScope.
func NewGormInvoiceTransactionScope(db *gorm.DB) *GormInvoiceTransactionScope {
	return &GormInvoiceTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormInvoiceTransactionScope) Execute(ctx context.Context, fn func(repos appinvoice.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInvoiceRepositories{tx: tx})
	})
}

type gormInvoiceRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction.
func (r *gormInvoiceRepositories) InvoiceRepo() invoice.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// PaymentRepo returns the invoice payment repository scoped to the current transaction.
func (r *gormInvoiceRepositories) PaymentRepo() invoice.InvoicePaymentRepository {
	return NewGormInvoicePaymentRepository(r.tx)
}

// GormInventoryTransactionScope implements the inventory TransactionScope using
// GORM transactions. Stock rows locked inside fn stay locked until it returns.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope.
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) StoreRepo() inventory.StoreRepository {
	return NewGormStoreRepository(r.tx)
}

func (r *gormInventoryRepositories) InventoryRepo() inventory.StoreInventoryRepository {
	return NewGormStoreInventoryRepository(r.tx)
}

func (r *gormInventoryRepositories) StockTransactionRepo() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

func (r *gormInventoryRepositories) TransferRepo() inventory.TransferRepository {
	return NewGormTransferRepository(r.tx)
}

// Ensure the scopes implement the application TransactionScope interfaces
var (
	_ appdebt.TransactionScope             = (*GormDebtTransactionScope)(nil)
	_ appdebt.TransactionalRepositories    = (*gormDebtRepositories)(nil)
	_ appinvoice.TransactionScope          = (*GormInvoiceTransactionScope)(nil)
	_ appinvoice.TransactionalRepositories = (*gormInvoiceRepositories)(nil)

	_ appinventory.TransactionScope          = (*GormInventoryTransactionScope)(nil)
	_ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
)
