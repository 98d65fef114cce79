package persistence

import (
	"context"

	"github.com/distributor/backend/internal/domain/debt"
	"github.com/distributor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentPlanRepository implements debt.PaymentPlanRepository using GORM.
// A plan is always loaded together with its installments in due-date order.
type GormPaymentPlanRepository struct {
	db *gorm.DB
}

// NewGormPaymentPlanRepository creates a new GormPaymentPlanRepository
func NewGormPaymentPlanRepository(db *gorm.DB) *GormPaymentPlanRepository {
	return &GormPaymentPlanRepository{db: db}
}

func withInstallments(lock bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order("due_date ASC, installment_number ASC")
		if lock {
			db = db.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		return db
	}
}

// FindByIDForTenant finds a plan by ID within a tenant
func (r *GormPaymentPlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*debt.PaymentPlan, error) {
	var model models.PaymentPlanModel
	err := r.db.WithContext(ctx).
		Preload("Installments", withInstallments(false)).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindActiveByDebt returns the debt's active plan
func (r *GormPaymentPlanRepository) FindActiveByDebt(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	return r.findActive(ctx, tenantID, debtID, false)
}

// FindActiveByDebtForUpdate is FindActiveByDebt with the plan and installment rows locked
func (r *GormPaymentPlanRepository) FindActiveByDebtForUpdate(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	return r.findActive(ctx, tenantID, debtID, true)
}

func (r *GormPaymentPlanRepository) findActive(ctx context.Context, tenantID, debtID uuid.UUID, lock bool) (*debt.PaymentPlan, error) {
	query := r.db.WithContext(ctx).Preload("Installments", withInstallments(lock))
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.PaymentPlanModel
	err := query.
		Where("tenant_id = ? AND debt_id = ? AND status = ?", tenantID, debtID, debt.PlanStatusActive).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindLatestOutstandingByDebtForUpdate locks the newest plan that still has an
// installment open for payment
func (r *GormPaymentPlanRepository) FindLatestOutstandingByDebtForUpdate(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	var model models.PaymentPlanModel
	err := r.db.WithContext(ctx).
		Preload("Installments", withInstallments(true)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND debt_id = ?", tenantID, debtID).
		Where("EXISTS (SELECT 1 FROM payment_plan_installments i WHERE i.plan_id = payment_plans.id AND i.status IN ?)",
			[]string{string(debt.InstallmentStatusPending), string(debt.InstallmentStatusOverdue)}).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindLatestByDebt returns the most recently created plan of any status
func (r *GormPaymentPlanRepository) FindLatestByDebt(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	var model models.PaymentPlanModel
	err := r.db.WithContext(ctx).
		Preload("Installments", withInstallments(false)).
		Where("tenant_id = ? AND debt_id = ?", tenantID, debtID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsActiveForDebt reports whether the debt already has an active plan
func (r *GormPaymentPlanRepository) ExistsActiveForDebt(ctx context.Context, tenantID, debtID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PaymentPlanModel{}).
		Where("tenant_id = ? AND debt_id = ? AND status = ?", tenantID, debtID, debt.PlanStatusActive).
		Count(&count).Error
	return count > 0, err
}

// FindActiveForTenant lists every active plan with installments
func (r *GormPaymentPlanRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]debt.PaymentPlan, error) {
	var dbModels []models.PaymentPlanModel
	err := r.db.WithContext(ctx).
		Preload("Installments", withInstallments(false)).
		Where("tenant_id = ? AND status = ?", tenantID, debt.PlanStatusActive).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	plans := make([]debt.PaymentPlan, len(dbModels))
	for i := range dbModels {
		plans[i] = *dbModels[i].ToDomain()
	}
	return plans, nil
}

// Save inserts a new plan and all of its installments
func (r *GormPaymentPlanRepository) Save(ctx context.Context, p *debt.PaymentPlan) error {
	return translateError(r.db.WithContext(ctx).Create(models.PaymentPlanModelFromDomain(p)).Error)
}

// SaveWithLock updates the plan under the version check and upserts its installments
func (r *GormPaymentPlanRepository) SaveWithLock(ctx context.Context, p *debt.PaymentPlan) error {
	model := models.PaymentPlanModelFromDomain(p)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PaymentPlanModel{}).
			Where("tenant_id = ? AND id = ? AND version = ?", p.TenantID, p.ID, p.Version-1).
			Updates(map[string]any{
				"status":       model.Status,
				"completed_at": model.CompletedAt,
				"version":      model.Version,
				"updated_at":   model.UpdatedAt,
			})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return optimisticLockError("Payment plan")
		}
		if len(model.Installments) == 0 {
			return nil
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"paid_amount", "status", "paid_date", "updated_at"}),
		}).Create(&model.Installments).Error
		return translateError(err)
	})
}

// Ensure GormPaymentPlanRepository implements PaymentPlanRepository
var _ debt.PaymentPlanRepository = (*GormPaymentPlanRepository)(nil)
