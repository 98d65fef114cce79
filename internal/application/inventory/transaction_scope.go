package inventory

import (
	"context"

	"github.com/distributor/backend/internal/domain/inventory"
)

// TransactionScope runs stock operations inside one database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the inventory repositories bound to one transaction
type TransactionalRepositories interface {
	StoreRepo() inventory.StoreRepository
	InventoryRepo() inventory.StoreInventoryRepository
	StockTransactionRepo() inventory.StockTransactionRepository
	TransferRepo() inventory.TransferRepository
}

// NoOpTransactionScope runs the function against plain repositories
type NoOpTransactionScope struct {
	storeRepo     inventory.StoreRepository
	inventoryRepo inventory.StoreInventoryRepository
	stockTxRepo   inventory.StockTransactionRepository
	transferRepo  inventory.TransferRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	storeRepo inventory.StoreRepository,
	inventoryRepo inventory.StoreInventoryRepository,
	stockTxRepo inventory.StockTransactionRepository,
	transferRepo inventory.TransferRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		storeRepo:     storeRepo,
		inventoryRepo: inventoryRepo,
		stockTxRepo:   stockTxRepo,
		transferRepo:  transferRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) StoreRepo() inventory.StoreRepository { return s.storeRepo }

func (s *NoOpTransactionScope) InventoryRepo() inventory.StoreInventoryRepository {
	return s.inventoryRepo
}

func (s *NoOpTransactionScope) StockTransactionRepo() inventory.StockTransactionRepository {
	return s.stockTxRepo
}

func (s *NoOpTransactionScope) TransferRepo() inventory.TransferRepository { return s.transferRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
