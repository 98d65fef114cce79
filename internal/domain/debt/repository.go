package debt

import (
	"context"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DebtFilter extends the common filter with debt-specific criteria
type DebtFilter struct {
	shared.Filter
	Status        *DebtStatus
	SalesPersonID *uuid.UUID
}

// DebtRepository persists Debt aggregates
type DebtRepository interface {
	// FindByIDForTenant finds a debt by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Debt, error)

	// FindByIDForUpdate finds a debt and takes a row lock held until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Debt, error)

	// FindAllForTenant lists debts ordered by due date
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter DebtFilter) ([]Debt, error)

	// CountForTenant counts debts matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter DebtFilter) (int64, error)

	// FindOverdue lists pending debts whose due date is before asOf
	FindOverdue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]Debt, error)

	// Save inserts or fully overwrites a debt
	Save(ctx context.Context, d *Debt) error

	// SaveWithLock updates a debt only if its stored version is d.Version-1
	SaveWithLock(ctx context.Context, d *Debt) error
}

// PaymentPlanRepository persists PaymentPlan aggregates with their installments
type PaymentPlanRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentPlan, error)

	// FindActiveByDebt returns the debt's active plan, or ErrNotFound
	FindActiveByDebt(ctx context.Context, tenantID, debtID uuid.UUID) (*PaymentPlan, error)

	// FindActiveByDebtForUpdate is FindActiveByDebt with the plan and its
	// installment rows locked for the surrounding transaction
	FindActiveByDebtForUpdate(ctx context.Context, tenantID, debtID uuid.UUID) (*PaymentPlan, error)

	// FindLatestOutstandingByDebtForUpdate returns the most recently created plan
	// that still has pending or overdue installments, whatever its status, with
	// the plan and installment rows locked. ErrNotFound when there is none.
	FindLatestOutstandingByDebtForUpdate(ctx context.Context, tenantID, debtID uuid.UUID) (*PaymentPlan, error)

	// FindLatestByDebt returns the most recently created plan of any status
	FindLatestByDebt(ctx context.Context, tenantID, debtID uuid.UUID) (*PaymentPlan, error)

	ExistsActiveForDebt(ctx context.Context, tenantID, debtID uuid.UUID) (bool, error)

	// FindActiveForTenant lists every active plan with installments
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]PaymentPlan, error)

	// Save inserts a new plan and all of its installments
	Save(ctx context.Context, p *PaymentPlan) error

	// SaveWithLock updates the plan under the version check and rewrites
	// its installments
	SaveWithLock(ctx context.Context, p *PaymentPlan) error
}
