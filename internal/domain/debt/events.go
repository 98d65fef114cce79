package debt

import (
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names
const (
	EventTypeDebtCreated              = "DebtCreated"
	EventTypeDebtPaymentRecorded      = "DebtPaymentRecorded"
	EventTypeDebtSettled              = "DebtSettled"
	EventTypePaymentPlanCreated       = "PaymentPlanCreated"
	EventTypePaymentPlanStatusChanged = "PaymentPlanStatusChanged"
)

const (
	aggregateTypeDebt        = "Debt"
	aggregateTypePaymentPlan = "PaymentPlan"
)

// DebtCreatedEvent is raised when a debt is recorded
type DebtCreatedEvent struct {
	shared.BaseDomainEvent
	SalesPersonID uuid.UUID       `json:"sales_person_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewDebtCreatedEvent creates a DebtCreatedEvent
func NewDebtCreatedEvent(d *Debt) *DebtCreatedEvent {
	return &DebtCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtCreated, aggregateTypeDebt, d.ID, d.TenantID),
		SalesPersonID:   d.SalesPersonID,
		Amount:          d.Amount,
	}
}

// DebtPaymentRecordedEvent is raised for every payment applied to a debt
type DebtPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	SalesPersonID   uuid.UUID       `json:"sales_person_id"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// NewDebtPaymentRecordedEvent creates a DebtPaymentRecordedEvent
func NewDebtPaymentRecordedEvent(d *Debt, amount decimal.Decimal) *DebtPaymentRecordedEvent {
	return &DebtPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtPaymentRecorded, aggregateTypeDebt, d.ID, d.TenantID),
		SalesPersonID:   d.SalesPersonID,
		PaymentAmount:   amount,
		RemainingAmount: d.Amount,
	}
}

// DebtSettledEvent is raised when a debt's outstanding amount reaches zero
type DebtSettledEvent struct {
	shared.BaseDomainEvent
	SalesPersonID  uuid.UUID       `json:"sales_person_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
}

// NewDebtSettledEvent creates a DebtSettledEvent
func NewDebtSettledEvent(d *Debt) *DebtSettledEvent {
	return &DebtSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtSettled, aggregateTypeDebt, d.ID, d.TenantID),
		SalesPersonID:   d.SalesPersonID,
		OriginalAmount:  d.OriginalAmount,
	}
}

// PaymentPlanCreatedEvent is raised when a plan and its schedule are created
type PaymentPlanCreatedEvent struct {
	shared.BaseDomainEvent
	DebtID           uuid.UUID       `json:"debt_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Frequency        Frequency       `json:"frequency"`
	InstallmentCount int             `json:"installment_count"`
}

// NewPaymentPlanCreatedEvent creates a PaymentPlanCreatedEvent
func NewPaymentPlanCreatedEvent(p *PaymentPlan) *PaymentPlanCreatedEvent {
	return &PaymentPlanCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePaymentPlanCreated, aggregateTypePaymentPlan, p.ID, p.TenantID),
		DebtID:           p.DebtID,
		TotalAmount:      p.TotalAmount,
		Frequency:        p.Frequency,
		InstallmentCount: len(p.Installments),
	}
}

// PaymentPlanStatusChangedEvent is raised when a plan leaves the active state
type PaymentPlanStatusChangedEvent struct {
	shared.BaseDomainEvent
	DebtID    uuid.UUID  `json:"debt_id"`
	OldStatus PlanStatus `json:"old_status"`
	NewStatus PlanStatus `json:"new_status"`
}

// NewPaymentPlanStatusChangedEvent creates a PaymentPlanStatusChangedEvent
func NewPaymentPlanStatusChangedEvent(p *PaymentPlan, previous PlanStatus) *PaymentPlanStatusChangedEvent {
	return &PaymentPlanStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentPlanStatusChanged, aggregateTypePaymentPlan, p.ID, p.TenantID),
		DebtID:          p.DebtID,
		OldStatus:       previous,
		NewStatus:       p.Status,
	}
}
