package persistence

import (
	"context"
	"time"

	"github.com/distributor/backend/internal/domain/debt"
	"github.com/distributor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDebtRepository implements debt.DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByIDForTenant finds a debt by ID within a tenant
func (r *GormDebtRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*debt.Debt, error) {
	return r.findOne(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds a debt and locks its row (SELECT ... FOR UPDATE)
func (r *GormDebtRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*debt.Debt, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormDebtRepository) findOne(db *gorm.DB, tenantID, id uuid.UUID) (*debt.Debt, error) {
	var model models.DebtModel
	if err := db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists debts matching the filter
func (r *GormDebtRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter debt.DebtFilter) ([]debt.Debt, error) {
	var dbModels []models.DebtModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DebtModel{}), tenantID, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, DebtSortFields, "due_date", "ASC")).
		Offset(filter.Offset()).
		Limit(filter.Limit())
	if err := query.Find(&dbModels).Error; err != nil {
		return nil, err
	}
	return debtsToDomain(dbModels), nil
}

// CountForTenant counts debts matching the filter
func (r *GormDebtRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter debt.DebtFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.DebtModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// FindOverdue lists pending debts due before asOf, oldest first
func (r *GormDebtRepository) FindOverdue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]debt.Debt, error) {
	var dbModels []models.DebtModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND due_date < ?", tenantID, debt.DebtStatusPending, models.Date(asOf)).
		Order("due_date ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	return debtsToDomain(dbModels), nil
}

// Save inserts or fully overwrites a debt
func (r *GormDebtRepository) Save(ctx context.Context, d *debt.Debt) error {
	return translateError(r.db.WithContext(ctx).Save(models.DebtModelFromDomain(d)).Error)
}

// SaveWithLock updates a debt only if the stored version is d.Version-1
func (r *GormDebtRepository) SaveWithLock(ctx context.Context, d *debt.Debt) error {
	model := models.DebtModelFromDomain(d)
	result := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", d.TenantID, d.ID, d.Version-1).
		Updates(map[string]any{
			"amount":          model.Amount,
			"status":          model.Status,
			"due_date":        model.DueDate,
			"invoice_id":      model.InvoiceID,
			"payment_plan_id": model.PaymentPlanID,
			"notes":           model.Notes,
			"paid_at":         model.PaidAt,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return optimisticLockError("Debt")
	}
	return nil
}

func (r *GormDebtRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter debt.DebtFilter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SalesPersonID != nil {
		query = query.Where("sales_person_id = ?", *filter.SalesPersonID)
	}
	if filter.Search != "" {
		query = query.Where("notes LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func debtsToDomain(dbModels []models.DebtModel) []debt.Debt {
	debts := make([]debt.Debt, len(dbModels))
	for i := range dbModels {
		debts[i] = *dbModels[i].ToDomain()
	}
	return debts
}

// Ensure GormDebtRepository implements DebtRepository
var _ debt.DebtRepository = (*GormDebtRepository)(nil)
