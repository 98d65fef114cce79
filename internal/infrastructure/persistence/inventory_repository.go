package persistence

import (
	"context"

	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreInventoryRepository implements inventory.StoreInventoryRepository using GORM
type GormStoreInventoryRepository struct {
	db *gorm.DB
}

// NewGormStoreInventoryRepository creates a new GormStoreInventoryRepository
func NewGormStoreInventoryRepository(db *gorm.DB) *GormStoreInventoryRepository {
	return &GormStoreInventoryRepository{db: db}
}

// FindByStoreAndProduct finds the stock row of a product at a store
func (r *GormStoreInventoryRepository) FindByStoreAndProduct(ctx context.Context, tenantID, storeID, productID uuid.UUID) (*inventory.StoreInventory, error) {
	return r.findOne(r.db.WithContext(ctx), tenantID, storeID, productID)
}

// FindByStoreAndProductForUpdate finds the stock row and locks it
func (r *GormStoreInventoryRepository) FindByStoreAndProductForUpdate(ctx context.Context, tenantID, storeID, productID uuid.UUID) (*inventory.StoreInventory, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, storeID, productID)
}

func (r *GormStoreInventoryRepository) findOne(db *gorm.DB, tenantID, storeID, productID uuid.UUID) (*inventory.StoreInventory, error) {
	var model models.StoreInventoryModel
	err := db.Where("tenant_id = ? AND store_id = ? AND product_id = ?", tenantID, storeID, productID).First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists stock rows matching the filter
func (r *GormStoreInventoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.InventoryFilter) ([]inventory.StoreInventory, error) {
	var dbModels []models.StoreInventoryModel
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StoreInventoryModel{}), tenantID, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, InventorySortFields, "last_updated", "DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	rows := make([]inventory.StoreInventory, len(dbModels))
	for i := range dbModels {
		rows[i] = *dbModels[i].ToDomain()
	}
	return rows, nil
}

// CountForTenant counts stock rows matching the filter
func (r *GormStoreInventoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.InventoryFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StoreInventoryModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// Create inserts a new stock row
func (r *GormStoreInventoryRepository) Create(ctx context.Context, inv *inventory.StoreInventory) error {
	return translateError(r.db.WithContext(ctx).Create(models.StoreInventoryModelFromDomain(inv)).Error)
}

// SaveWithLock updates a stock row only if the stored version is inv.Version-1
func (r *GormStoreInventoryRepository) SaveWithLock(ctx context.Context, inv *inventory.StoreInventory) error {
	result := r.db.WithContext(ctx).
		Model(&models.StoreInventoryModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", inv.TenantID, inv.ID, inv.Version-1).
		Updates(map[string]any{
			"quantity_in_stock": inv.QuantityInStock,
			"reorder_level":     inv.ReorderLevel,
			"last_updated":      inv.LastUpdated,
			"version":           inv.Version,
			"updated_at":        inv.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return optimisticLockError("Inventory")
	}
	return nil
}

func (r *GormStoreInventoryRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter inventory.InventoryFilter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.LowStock {
		query = query.Where("quantity_in_stock <= reorder_level")
	}
	return query
}

// GormStockTransactionRepository implements inventory.StockTransactionRepository using GORM
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// Create appends a ledger entry
func (r *GormStockTransactionRepository) Create(ctx context.Context, tx *inventory.StockTransaction) error {
	return translateError(r.db.WithContext(ctx).Create(models.StockTransactionModelFromDomain(tx)).Error)
}

// FindAllForTenant lists ledger entries newest first
func (r *GormStockTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.StockTransactionFilter) ([]inventory.StockTransaction, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}

	var dbModels []models.StockTransactionModel
	err := query.
		Order("transaction_date DESC, created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	entries := make([]inventory.StockTransaction, len(dbModels))
	for i := range dbModels {
		entries[i] = dbModels[i].ToDomain()
	}
	return entries, nil
}

var (
	_ inventory.StoreInventoryRepository   = (*GormStoreInventoryRepository)(nil)
	_ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
)
