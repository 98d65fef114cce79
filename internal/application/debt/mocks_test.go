package debt

import (
	"context"
	"sync"
	"time"

	"github.com/distributor/backend/internal/domain/debt"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDebtRepository is a mock implementation of debt.DebtRepository
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*debt.Debt, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*debt.Debt, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter debt.DebtFilter) ([]debt.Debt, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter debt.DebtFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDebtRepository) FindOverdue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]debt.Debt, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) Save(ctx context.Context, d *debt.Debt) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDebtRepository) SaveWithLock(ctx context.Context, d *debt.Debt) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockPaymentPlanRepository is a mock implementation of debt.PaymentPlanRepository
type MockPaymentPlanRepository struct {
	mock.Mock
}

func (m *MockPaymentPlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*debt.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepository) FindActiveByDebt(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepository) FindActiveByDebtForUpdate(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepository) FindLatestOutstandingByDebtForUpdate(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepository) FindLatestByDebt(ctx context.Context, tenantID, debtID uuid.UUID) (*debt.PaymentPlan, error) {
	args := m.Called(ctx, tenantID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepository) ExistsActiveForDebt(ctx context.Context, tenantID, debtID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, debtID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentPlanRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]debt.PaymentPlan, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]debt.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepository) Save(ctx context.Context, p *debt.PaymentPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentPlanRepository) SaveWithLock(ctx context.Context, p *debt.PaymentPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

var (
	_ debt.DebtRepository        = (*MockDebtRepository)(nil)
	_ debt.PaymentPlanRepository = (*MockPaymentPlanRepository)(nil)
)

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}
