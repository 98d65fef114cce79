package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService reads and adjusts the stock held at stores
type InventoryService struct {
	storeRepo      inventory.StoreRepository
	inventoryRepo  inventory.StoreInventoryRepository
	stockTxRepo    inventory.StockTransactionRepository
	productRepo    catalog.ProductRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	storeRepo inventory.StoreRepository,
	inventoryRepo inventory.StoreInventoryRepository,
	stockTxRepo inventory.StockTransactionRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		storeRepo:     storeRepo,
		inventoryRepo: inventoryRepo,
		stockTxRepo:   stockTxRepo,
		productRepo:   productRepo,
		txScope:       txScope,
		logger:        logger,
		now:           time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListInventory lists stock rows, most recently moved first
func (s *InventoryService) ListInventory(ctx context.Context, tenantID uuid.UUID, filter InventoryListFilter) ([]InventoryResponse, int64, error) {
	domainFilter := inventory.InventoryFilter{
		Filter:    pageFilter(filter.Page, filter.PageSize, "last_updated", "desc"),
		StoreID:   filter.StoreID,
		ProductID: filter.ProductID,
		LowStock:  filter.LowStock,
	}
	rows, err := s.inventoryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.inventoryRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToInventoryResponses(rows), total, nil
}

// ListByStore lists the stock of one store
func (s *InventoryService) ListByStore(ctx context.Context, tenantID, storeID uuid.UUID, page, pageSize int) ([]InventoryResponse, int64, error) {
	if _, err := s.storeRepo.FindByIDForTenant(ctx, tenantID, storeID); err != nil {
		return nil, 0, notFoundAs(err, errStoreNotFound)
	}
	return s.ListInventory(ctx, tenantID, InventoryListFilter{Page: page, PageSize: pageSize, StoreID: &storeID})
}

// ListByProduct lists the stock of one product across stores
func (s *InventoryService) ListByProduct(ctx context.Context, tenantID, productID uuid.UUID, page, pageSize int) ([]InventoryResponse, int64, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return nil, 0, notFoundAs(err, errProductNotFound)
	}
	return s.ListInventory(ctx, tenantID, InventoryListFilter{Page: page, PageSize: pageSize, ProductID: &productID})
}

// lowStockLimit bounds the low-stock report
const lowStockLimit = 500

// LowStock lists rows at or below their reorder level, optionally for one store
func (s *InventoryService) LowStock(ctx context.Context, tenantID uuid.UUID, storeID *uuid.UUID) (*LowStockResponse, error) {
	rows, _, err := s.ListInventory(ctx, tenantID, InventoryListFilter{
		Page:     1,
		PageSize: lowStockLimit,
		StoreID:  storeID,
		LowStock: true,
	})
	if err != nil {
		return nil, err
	}
	return &LowStockResponse{Inventory: rows, Count: len(rows)}, nil
}

// ListTransactions reads the stock ledger, newest first
func (s *InventoryService) ListTransactions(ctx context.Context, tenantID uuid.UUID, filter StockTransactionFilter) ([]StockTransactionResponse, error) {
	entries, err := s.stockTxRepo.FindAllForTenant(ctx, tenantID, inventory.StockTransactionFilter{
		Filter:    pageFilter(filter.Page, filter.PageSize, "date", "desc"),
		StoreID:   filter.StoreID,
		ProductID: filter.ProductID,
	})
	if err != nil {
		return nil, err
	}
	responses := make([]StockTransactionResponse, len(entries))
	for i := range entries {
		responses[i] = ToStockTransactionResponse(&entries[i])
	}
	return responses, nil
}

// AdjustStock moves stock in or out of a store and writes the ledger entry in
// the same transaction. The row is locked for the duration, and a store that
// never held the product gets an empty row first.
func (s *InventoryService) AdjustStock(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, req AdjustStockRequest) (*AdjustStockResponse, error) {
	if err := s.checkProduct(ctx, tenantID, req.ProductID); err != nil {
		return nil, err
	}

	var moved *stockMove
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := checkStore(ctx, repos.StoreRepo(), tenantID, req.StoreID, errStoreNotFound); err != nil {
			return err
		}
		row, err := lockRow(ctx, repos.InventoryRepo(), tenantID, req.StoreID, req.ProductID)
		if err != nil {
			return err
		}
		moved, err = row.apply(ctx, repos, inventory.Movement{
			Type:          req.Type,
			Quantity:      req.Quantity,
			Source:        inventory.SourceAdjustment,
			SalesPersonID: req.SalesPersonID,
			Notes:         req.Notes,
			By:            actor.UserID,
			At:            s.now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("store_id", req.StoreID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("type", req.Type.String()),
		zap.Int("quantity", req.Quantity),
		zap.Int("new_stock", moved.row.QuantityInStock))

	publish(ctx, s.eventPublisher, s.logger, moved.row)
	return &AdjustStockResponse{
		Inventory:     ToInventoryResponse(moved.row),
		Transaction:   ToStockTransactionResponse(moved.entry),
		PreviousStock: moved.entry.BalanceBefore,
		NewStock:      moved.entry.BalanceAfter,
	}, nil
}

// SetReorderLevel changes the low-stock threshold of an existing row
func (s *InventoryService) SetReorderLevel(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, req SetReorderLevelRequest) (*InventoryResponse, error) {
	var row *inventory.StoreInventory
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		row, err = repos.InventoryRepo().FindByStoreAndProductForUpdate(ctx, tenantID, req.StoreID, req.ProductID)
		if err != nil {
			return notFoundAs(err, errInventoryNotFound)
		}
		if err := row.SetReorderLevel(req.ReorderLevel); err != nil {
			return err
		}
		return repos.InventoryRepo().SaveWithLock(ctx, row)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reorder level changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("store_id", req.StoreID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("reorder_level", row.ReorderLevel),
		zap.String("changed_by", actor.UserID.String()))

	response := ToInventoryResponse(row)
	return &response, nil
}

var errInventoryNotFound = shared.NewDomainError("NOT_FOUND", "Inventory record not found")

func (s *InventoryService) checkProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	return checkProduct(ctx, s.productRepo, tenantID, productID)
}

func checkProduct(ctx context.Context, repo catalog.ProductRepository, tenantID, productID uuid.UUID) error {
	p, err := repo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return notFoundAs(err, errProductNotFound)
	}
	if !p.IsActive {
		return errProductInactive
	}
	return nil
}

func checkStore(ctx context.Context, repo inventory.StoreRepository, tenantID, storeID uuid.UUID, missing *shared.DomainError) error {
	store, err := repo.FindByIDForTenant(ctx, tenantID, storeID)
	if err != nil {
		return notFoundAs(err, missing)
	}
	if !store.IsActive {
		return errStoreInactive
	}
	return nil
}

// lockedRow is an inventory row held under lock for the current transaction
type lockedRow struct {
	*inventory.StoreInventory
	isNew bool
}

// lockRow returns the locked row for a store and product, or a fresh unsaved
// row when the store has never held the product
func lockRow(ctx context.Context, repo inventory.StoreInventoryRepository, tenantID, storeID, productID uuid.UUID) (*lockedRow, error) {
	row, err := repo.FindByStoreAndProductForUpdate(ctx, tenantID, storeID, productID)
	if err == nil {
		return &lockedRow{StoreInventory: row}, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	row, err = inventory.NewStoreInventory(tenantID, storeID, productID)
	if err != nil {
		return nil, err
	}
	return &lockedRow{StoreInventory: row, isNew: true}, nil
}

type stockMove struct {
	row   *inventory.StoreInventory
	entry *inventory.StockTransaction
}

// apply moves the stock, persists the row and appends the ledger entry
func (r *lockedRow) apply(ctx context.Context, repos TransactionalRepositories, m inventory.Movement) (*stockMove, error) {
	entry, err := r.Apply(m)
	if err != nil {
		return nil, err
	}
	if r.isNew {
		err = repos.InventoryRepo().Create(ctx, r.StoreInventory)
	} else {
		err = repos.InventoryRepo().SaveWithLock(ctx, r.StoreInventory)
	}
	if err != nil {
		return nil, err
	}
	r.isNew = false
	if err := repos.StockTransactionRepo().Create(ctx, entry); err != nil {
		return nil, err
	}
	return &stockMove{row: r.StoreInventory, entry: entry}, nil
}
