package persistence

import (
	"context"
	"strings"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists products matching the filter, by name unless told otherwise
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter catalog.ProductFilter) ([]catalog.Product, error) {
	var dbModels []models.ProductModel
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), tenantID, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, ProductSortFields, "name", "ASC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(dbModels))
	for i := range dbModels {
		products[i] = *dbModels[i].ToDomain()
	}
	return products, nil
}

// CountForTenant counts products matching the filter
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter catalog.ProductFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// Save inserts or fully overwrites a product
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Save(models.ProductModelFromDomain(p)).Error)
}

// SaveWithLock updates a product only if the stored version is p.Version-1
func (r *GormProductRepository) SaveWithLock(ctx context.Context, p *catalog.Product) error {
	model := models.ProductModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", p.TenantID, p.ID, p.Version-1).
		Updates(map[string]any{
			"name":        model.Name,
			"sku":         model.SKU,
			"category":    model.Category,
			"description": model.Description,
			"unit_price":  model.UnitPrice,
			"image_url":   model.ImageURL,
			"is_active":   model.IsActive,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return optimisticLockError("Product")
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter catalog.ProductFilter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)", like, like)
	}
	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
