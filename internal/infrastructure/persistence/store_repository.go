package persistence

import (
	"context"
	"strings"

	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStoreRepository implements inventory.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByIDForTenant finds a store by ID within a tenant
func (r *GormStoreRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists stores matching the filter
func (r *GormStoreRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.StoreFilter) ([]inventory.Store, error) {
	var dbModels []models.StoreModel
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StoreModel{}), tenantID, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, StoreSortFields, "name", "ASC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	stores := make([]inventory.Store, len(dbModels))
	for i := range dbModels {
		stores[i] = *dbModels[i].ToDomain()
	}
	return stores, nil
}

// CountForTenant counts stores matching the filter
func (r *GormStoreRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.StoreFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StoreModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// Save inserts or fully overwrites a store
func (r *GormStoreRepository) Save(ctx context.Context, s *inventory.Store) error {
	return translateError(r.db.WithContext(ctx).Save(models.StoreModelFromDomain(s)).Error)
}

// SaveWithLock updates a store only if the stored version is s.Version-1
func (r *GormStoreRepository) SaveWithLock(ctx context.Context, s *inventory.Store) error {
	result := r.db.WithContext(ctx).
		Model(&models.StoreModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", s.TenantID, s.ID, s.Version-1).
		Updates(map[string]any{
			"name":         s.Name,
			"location":     s.Location,
			"manager_id":   s.ManagerID,
			"phone_number": s.PhoneNumber,
			"is_active":    s.IsActive,
			"version":      s.Version,
			"updated_at":   s.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return optimisticLockError("Store")
	}
	return nil
}

func (r *GormStoreRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter inventory.StoreFilter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(location) LIKE ?)", like, like)
	}
	return query
}

var _ inventory.StoreRepository = (*GormStoreRepository)(nil)
