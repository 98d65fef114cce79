package debt

import (
	"context"
	"errors"
	"time"

	"github.com/distributor/backend/internal/domain/debt"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtService handles debts, payment plans and debt payments
type DebtService struct {
	debtRepo       debt.DebtRepository
	planRepo       debt.PaymentPlanRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewDebtService creates a new DebtService
func NewDebtService(
	debtRepo debt.DebtRepository,
	planRepo debt.PaymentPlanRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *DebtService {
	return &DebtService{
		debtRepo: debtRepo,
		planRepo: planRepo,
		txScope:  txScope,
		logger:   logger,
		now:      time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DebtService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

var (
	errDebtNotFound        = shared.NewDomainError("NOT_FOUND", "Debt not found")
	errPaymentPlanNotFound = shared.NewDomainError("NOT_FOUND", "Payment plan not found")
	errAccessDenied        = shared.NewDomainError("FORBIDDEN", "Access denied")
)

// CreateDebt records a new debt for a salesperson
func (s *DebtService) CreateDebt(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, req CreateDebtRequest) (*DebtResponse, error) {
	d, err := debt.NewDebt(tenantID, req.SalesPersonID, req.Amount, req.DueDate, actor.UserID)
	if err != nil {
		return nil, err
	}
	if req.InvoiceID != nil {
		d.LinkInvoice(*req.InvoiceID)
	}
	d.SetNotes(req.Notes)

	if err := s.debtRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Debt created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("debt_id", d.ID.String()),
		zap.String("sales_person_id", d.SalesPersonID.String()),
		zap.String("amount", d.Amount.StringFixed(2)))

	s.publishEvents(ctx, &d.BaseAggregateRoot)
	response := ToDebtResponse(d, s.now())
	return &response, nil
}

// GetDebt retrieves a debt; salespeople may only read their own
func (s *DebtService) GetDebt(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, debtID uuid.UUID) (*DebtResponse, error) {
	d, err := s.loadAccessibleDebt(ctx, tenantID, actor, debtID)
	if err != nil {
		return nil, err
	}
	response := ToDebtResponse(d, s.now())
	return &response, nil
}

// ListDebts lists debts ordered by due date. A salesperson only ever sees their own.
func (s *DebtService) ListDebts(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, filter DebtListFilter) ([]DebtResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if actor.IsSalesperson() {
		self := actor.UserID
		filter.SalesPersonID = &self
	}

	domainFilter := debt.DebtFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "due_date",
			OrderDir: "asc",
		},
		Status:        filter.Status,
		SalesPersonID: filter.SalesPersonID,
	}

	debts, err := s.debtRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.debtRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToDebtResponses(debts, s.now()), total, nil
}

// salespersonPageSize bounds each read while ListBySalesperson walks all pages
var salespersonPageSize = 500

// ListBySalesperson lists every debt of one salesperson
func (s *DebtService) ListBySalesperson(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, salesPersonID uuid.UUID) ([]DebtResponse, error) {
	if !actor.CanAccessSalesperson(salesPersonID) {
		return nil, errAccessDenied
	}

	var debts []debt.Debt
	for page := 1; ; page++ {
		batch, err := s.debtRepo.FindAllForTenant(ctx, tenantID, debt.DebtFilter{
			Filter: shared.Filter{
				Page:     page,
				PageSize: salespersonPageSize,
				OrderBy:  "due_date",
				OrderDir: "asc",
			},
			SalesPersonID: &salesPersonID,
		})
		if err != nil {
			return nil, err
		}
		debts = append(debts, batch...)
		if len(batch) < salespersonPageSize {
			break
		}
	}
	return ToDebtResponses(debts, s.now()), nil
}

// ListOverdue lists pending debts whose due date is before asOf
func (s *DebtService) ListOverdue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]DebtResponse, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	debts, err := s.debtRepo.FindOverdue(ctx, tenantID, shared.DateOnly(asOf))
	if err != nil {
		return nil, err
	}
	return ToDebtResponses(debts, asOf), nil
}

// CreatePaymentPlan generates a repayment schedule for the debt's outstanding amount.
// The plan, its installments and the debt link are written in one transaction.
func (s *DebtService) CreatePaymentPlan(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, debtID uuid.UUID, req CreatePaymentPlanRequest) (*PaymentPlanResponse, error) {
	var plan *debt.PaymentPlan
	var d *debt.Debt

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		d, err = repos.DebtRepo().FindByIDForUpdate(ctx, tenantID, debtID)
		if err != nil {
			return notFoundAs(err, errDebtNotFound)
		}
		if d.Status == debt.DebtStatusPaid {
			return shared.NewDomainError("DEBT_ALREADY_PAID", "Debt is already paid")
		}

		exists, err := repos.PlanRepo().ExistsActiveForDebt(ctx, tenantID, debtID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ACTIVE_PLAN_EXISTS", "Active payment plan already exists for this debt")
		}

		plan, err = debt.NewPaymentPlan(d, req.InstallmentAmount, req.Frequency, req.StartDate, req.EndDate, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.PlanRepo().Save(ctx, plan); err != nil {
			return err
		}

		d.AttachPaymentPlan(plan.ID)
		return repos.DebtRepo().SaveWithLock(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment plan created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("debt_id", debtID.String()),
		zap.String("plan_id", plan.ID.String()),
		zap.String("frequency", plan.Frequency.String()),
		zap.Int("installments", len(plan.Installments)),
		zap.String("total_amount", plan.TotalAmount.StringFixed(2)))

	s.publishEvents(ctx, &plan.BaseAggregateRoot, &d.BaseAggregateRoot)
	response := ToPaymentPlanResponse(plan)
	return &response, nil
}

// GetPaymentPlan returns the debt's most recent plan with installments ordered by due date
func (s *DebtService) GetPaymentPlan(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, debtID uuid.UUID) (*PaymentPlanResponse, error) {
	if _, err := s.loadAccessibleDebt(ctx, tenantID, actor, debtID); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindLatestByDebt(ctx, tenantID, debtID)
	if err != nil {
		return nil, notFoundAs(err, errPaymentPlanNotFound)
	}
	response := ToPaymentPlanResponse(plan)
	return &response, nil
}

// RecordPayment applies a payment to the debt and allocates it across the
// installments of the latest plan that still has any outstanding, oldest first.
// That plan may be defaulted. The debt and plan rows stay locked until the
// transaction ends.
func (s *DebtService) RecordPayment(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, debtID uuid.UUID, req RecordDebtPaymentRequest) (*RecordDebtPaymentResponse, error) {
	paidAt := req.PaymentDate
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	var (
		d      *debt.Debt
		plan   *debt.PaymentPlan
		result *debt.AllocationResult
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		d, err = repos.DebtRepo().FindByIDForUpdate(ctx, tenantID, debtID)
		if err != nil {
			return notFoundAs(err, errDebtNotFound)
		}
		if err := d.ApplyPayment(req.Amount, paidAt); err != nil {
			return err
		}

		plan, err = repos.PlanRepo().FindLatestOutstandingByDebtForUpdate(ctx, tenantID, debtID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			plan = nil
		case err != nil:
			return err
		default:
			result, err = plan.ApplyPayment(req.Amount, paidAt)
			if err != nil {
				return err
			}
			// A plan with nothing left to allocate to is unchanged.
			if len(result.Allocations) > 0 {
				if err := repos.PlanRepo().SaveWithLock(ctx, plan); err != nil {
					return err
				}
			}
		}

		return repos.DebtRepo().SaveWithLock(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	response := &RecordDebtPaymentResponse{
		Debt:              ToDebtResponse(d, s.now()),
		Allocations:       []debt.Allocation{},
		TotalAllocated:    decimal.Zero,
		UnallocatedAmount: req.Amount,
	}
	if plan != nil {
		planResponse := ToPaymentPlanResponse(plan)
		response.PaymentPlan = &planResponse
		response.Allocations = result.Allocations
		response.TotalAllocated = result.TotalAllocated
		response.UnallocatedAmount = result.Unallocated
	}

	fields := []zap.Field{
		zap.String("tenant_id", tenantID.String()),
		zap.String("debt_id", debtID.String()),
		zap.String("recorded_by", actor.UserID.String()),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("remaining", d.Amount.StringFixed(2)),
		zap.String("unallocated", response.UnallocatedAmount.StringFixed(2)),
	}
	if req.Notes != "" {
		fields = append(fields, zap.String("notes", req.Notes))
	}
	s.logger.Info("Debt payment recorded", fields...)
	if plan != nil && response.UnallocatedAmount.IsPositive() {
		s.logger.Warn("Debt payment exceeded the plan schedule",
			zap.String("debt_id", debtID.String()),
			zap.String("plan_id", plan.ID.String()),
			zap.String("unallocated", response.UnallocatedAmount.StringFixed(2)))
	}

	roots := []*shared.BaseAggregateRoot{&d.BaseAggregateRoot}
	if plan != nil {
		roots = append(roots, &plan.BaseAggregateRoot)
	}
	s.publishEvents(ctx, roots...)
	return response, nil
}

// UpdatePaymentPlanStatus closes the debt's active plan as completed or defaulted
func (s *DebtService) UpdatePaymentPlanStatus(ctx context.Context, tenantID, debtID uuid.UUID, status debt.PlanStatus) (*PaymentPlanResponse, error) {
	var plan *debt.PaymentPlan

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plan, err = repos.PlanRepo().FindActiveByDebtForUpdate(ctx, tenantID, debtID)
		if err != nil {
			return notFoundAs(err, shared.NewDomainError("NOT_FOUND", "Active payment plan not found"))
		}
		if err := plan.UpdateStatus(status); err != nil {
			return err
		}
		return repos.PlanRepo().SaveWithLock(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment plan status updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("debt_id", debtID.String()),
		zap.String("plan_id", plan.ID.String()),
		zap.String("status", plan.Status.String()))

	s.publishEvents(ctx, &plan.BaseAggregateRoot)
	response := ToPaymentPlanResponse(plan)
	return &response, nil
}

// MarkOverdueInstallments flips pending installments of active plans that are
// due before asOf to overdue. It runs only when requested.
func (s *DebtService) MarkOverdueInstallments(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*MarkOverdueResult, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	result := &MarkOverdueResult{AsOf: shared.DateOnly(asOf).Format(DateLayout)}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		plans, err := repos.PlanRepo().FindActiveForTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		for i := range plans {
			marked := plans[i].MarkOverdue(asOf)
			if marked == 0 {
				continue
			}
			if err := repos.PlanRepo().SaveWithLock(ctx, &plans[i]); err != nil {
				return err
			}
			result.PlansUpdated++
			result.InstallmentsMarked += marked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Overdue installments marked",
		zap.String("tenant_id", tenantID.String()),
		zap.String("as_of", result.AsOf),
		zap.Int("plans_updated", result.PlansUpdated),
		zap.Int("installments_marked", result.InstallmentsMarked))
	return result, nil
}

func (s *DebtService) loadAccessibleDebt(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, debtID uuid.UUID) (*debt.Debt, error) {
	d, err := s.debtRepo.FindByIDForTenant(ctx, tenantID, debtID)
	if err != nil {
		return nil, notFoundAs(err, errDebtNotFound)
	}
	if !actor.CanAccessSalesperson(d.SalesPersonID) {
		return nil, errAccessDenied
	}
	return d, nil
}

// publishEvents publishes queued events after commit. Failures are logged;
// the committed state is authoritative.
func (s *DebtService) publishEvents(ctx context.Context, roots ...*shared.BaseAggregateRoot) {
	for _, root := range roots {
		events := root.GetDomainEvents()
		root.ClearDomainEvents()
		if s.eventPublisher == nil || len(events) == 0 {
			continue
		}
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish domain events", zap.Error(err))
		}
	}
}

// notFoundAs replaces a generic not-found error with a specific message
func notFoundAs(err error, specific *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return specific
	}
	return err
}
