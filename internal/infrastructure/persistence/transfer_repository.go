package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransferRepository implements inventory.TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByIDForTenant finds a transfer by ID within a tenant
func (r *GormTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryTransfer, error) {
	return r.findOne(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds a transfer and locks its row
func (r *GormTransferRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryTransfer, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormTransferRepository) findOne(db *gorm.DB, tenantID, id uuid.UUID) (*inventory.InventoryTransfer, error) {
	var model models.InventoryTransferModel
	if err := db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists transfers matching the filter, newest request first by default
func (r *GormTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.TransferFilter) ([]inventory.InventoryTransfer, error) {
	var dbModels []models.InventoryTransferModel
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryTransferModel{}), tenantID, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, TransferSortFields, "requested_date", "DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	transfers := make([]inventory.InventoryTransfer, len(dbModels))
	for i := range dbModels {
		transfers[i] = *dbModels[i].ToDomain()
	}
	return transfers, nil
}

// CountForTenant counts transfers matching the filter
func (r *GormTransferRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.TransferFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryTransferModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// Save inserts or fully overwrites a transfer. A clashing number surfaces as
// shared.ErrAlreadyExists.
func (r *GormTransferRepository) Save(ctx context.Context, t *inventory.InventoryTransfer) error {
	return translateError(r.db.WithContext(ctx).Save(models.InventoryTransferModelFromDomain(t)).Error)
}

// SaveWithLock updates a transfer only if the stored version is t.Version-1
func (r *GormTransferRepository) SaveWithLock(ctx context.Context, t *inventory.InventoryTransfer) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryTransferModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", t.TenantID, t.ID, t.Version-1).
		Updates(map[string]any{
			"status":         t.Status,
			"approved_by":    t.ApprovedBy,
			"approved_date":  t.ApprovedDate,
			"completed_by":   t.CompletedBy,
			"completed_date": t.CompletedDate,
			"version":        t.Version,
			"updated_at":     t.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return optimisticLockError("Transfer")
	}
	return nil
}

// GenerateTransferNumber returns the month's highest sequence plus one
func (r *GormTransferRepository) GenerateTransferNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error) {
	var last models.InventoryTransferModel
	err := r.db.WithContext(ctx).
		Select("transfer_number").
		Where("tenant_id = ? AND transfer_number LIKE ?", tenantID, inventory.TransferNumberPrefix(at)+"-%").
		Order("transfer_number DESC").
		First(&last).Error

	next := 1
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return "", err
	default:
		if seq, ok := inventory.ParseTransferSequence(last.TransferNumber); ok {
			next = seq + 1
		}
	}
	return inventory.FormatTransferNumber(at, next), nil
}

func (r *GormTransferRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter inventory.TransferFilter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromStoreID != nil {
		query = query.Where("from_store_id = ?", *filter.FromStoreID)
	}
	if filter.ToStoreID != nil {
		query = query.Where("to_store_id = ?", *filter.ToStoreID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Search != "" {
		query = query.Where("transfer_number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ inventory.TransferRepository = (*GormTransferRepository)(nil)
