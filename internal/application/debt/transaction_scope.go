package debt

import (
	"context"

	"github.com/distributor/backend/internal/domain/debt"
)

// TransactionScope runs debt operations inside one database transaction.
// All repository operations performed through the provided repositories are
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a transaction; a returned error rolls it back
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the debt repositories bound to one transaction.
// Installments are children of PaymentPlan and are persisted through PlanRepo.
type TransactionalRepositories interface {
	DebtRepo() debt.DebtRepository
	PlanRepo() debt.PaymentPlanRepository
}

// NoOpTransactionScope runs the function against plain repositories.
// Used in tests and wherever transactions are not available.
type NoOpTransactionScope struct {
	debtRepo debt.DebtRepository
	planRepo debt.PaymentPlanRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(debtRepo debt.DebtRepository, planRepo debt.PaymentPlanRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		debtRepo: debtRepo,
		planRepo: planRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DebtRepo returns the debt repository.
func (s *NoOpTransactionScope) DebtRepo() debt.DebtRepository {
	return s.debtRepo
}

// PlanRepo returns the payment plan repository.
func (s *NoOpTransactionScope) PlanRepo() debt.PaymentPlanRepository {
	return s.planRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
