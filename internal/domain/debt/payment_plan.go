package debt

import (
	"sort"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanStatus represents the lifecycle status of a payment plan
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusDefaulted PlanStatus = "defaulted"
)

// IsValid checks if the status is a valid PlanStatus
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusDefaulted:
		return true
	}
	return false
}

// String returns the string representation of PlanStatus
func (s PlanStatus) String() string {
	return string(s)
}

// InstallmentStatus represents the payment status of an installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentStatusPending, InstallmentStatusPaid, InstallmentStatusOverdue:
		return true
	}
	return false
}

// Installment is one scheduled repayment of a plan
type Installment struct {
	shared.BaseEntity
	PlanID     uuid.UUID
	Number     int
	DueDate    time.Time
	Amount     decimal.Decimal
	PaidAmount decimal.Decimal
	Status     InstallmentStatus
	PaidDate   *time.Time
}

// Balance returns the amount still owed on the installment
func (i *Installment) Balance() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsOutstanding reports whether the installment can still receive payments
func (i *Installment) IsOutstanding() bool {
	return i.Status == InstallmentStatusPending || i.Status == InstallmentStatusOverdue
}

// applyPayment applies up to amount and returns what was actually applied
func (i *Installment) applyPayment(amount decimal.Decimal, paidAt time.Time) decimal.Decimal {
	applied := decimal.Min(amount, i.Balance())
	i.PaidAmount = i.PaidAmount.Add(applied)
	if i.PaidAmount.GreaterThanOrEqual(i.Amount) {
		i.Status = InstallmentStatusPaid
		i.PaidDate = &paidAt
	}
	i.Touch()
	return applied
}

// PaymentPlan schedules the repayment of a debt in installments
type PaymentPlan struct {
	shared.TenantAggregateRoot
	DebtID            uuid.UUID
	TotalAmount       decimal.Decimal
	InstallmentAmount decimal.Decimal
	Frequency         Frequency
	StartDate         time.Time
	EndDate           time.Time
	Status            PlanStatus
	CompletedAt       *time.Time
	Installments      []Installment
}

// NewPaymentPlan creates an active plan over the debt's outstanding amount
// together with its generated installments
func NewPaymentPlan(d *Debt, installmentAmount decimal.Decimal, frequency Frequency, startDate, endDate time.Time, createdBy uuid.UUID) (*PaymentPlan, error) {
	if d == nil {
		return nil, shared.NewDomainError("INVALID_DEBT", "Debt is required")
	}
	if err := shared.ValidateAmount("Installment amount", installmentAmount); err != nil {
		return nil, err
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", "Frequency must be one of daily, weekly, monthly")
	}
	start := shared.DateOnly(startDate)
	end := shared.DateOnly(endDate)
	if start.After(end) {
		return nil, shared.NewDomainError("INVALID_SCHEDULE_PARAMETERS", "Start date must not be after end date")
	}

	schedule, err := GenerateSchedule(ScheduleParams{
		Principal:         d.Amount,
		InstallmentAmount: installmentAmount,
		Frequency:         frequency,
		StartDate:         start,
		EndDate:           end,
	})
	if err != nil {
		return nil, err
	}
	if len(schedule) == 0 {
		return nil, shared.NewDomainError("INVALID_SCHEDULE_PARAMETERS", "Schedule parameters produce no installments")
	}

	plan := &PaymentPlan{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(d.TenantID, createdBy),
		DebtID:              d.ID,
		TotalAmount:         d.Amount,
		InstallmentAmount:   installmentAmount,
		Frequency:           frequency,
		StartDate:           start,
		EndDate:             end,
		Status:              PlanStatusActive,
		Installments:        make([]Installment, 0, len(schedule)),
	}
	for _, s := range schedule {
		plan.Installments = append(plan.Installments, Installment{
			BaseEntity: shared.NewBaseEntity(),
			PlanID:     plan.ID,
			Number:     s.Number,
			DueDate:    s.DueDate,
			Amount:     s.Amount,
			PaidAmount: decimal.Zero,
			Status:     InstallmentStatusPending,
		})
	}

	plan.AddDomainEvent(NewPaymentPlanCreatedEvent(plan))
	return plan, nil
}

// ScheduledTotal returns the sum of all installment amounts
func (p *PaymentPlan) ScheduledTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range p.Installments {
		total = total.Add(inst.Amount)
	}
	return total
}

// PaidTotal returns the sum of all paid installment amounts
func (p *PaymentPlan) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range p.Installments {
		total = total.Add(inst.PaidAmount)
	}
	return total
}

// OutstandingInstallments returns pending and overdue installments ordered by due date.
// The returned pointers alias the plan's installments.
func (p *PaymentPlan) OutstandingInstallments() []*Installment {
	result := make([]*Installment, 0, len(p.Installments))
	for i := range p.Installments {
		if p.Installments[i].IsOutstanding() {
			result = append(result, &p.Installments[i])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result
}

// OutstandingTotal returns the balance across all outstanding installments
func (p *PaymentPlan) OutstandingTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range p.OutstandingInstallments() {
		total = total.Add(inst.Balance())
	}
	return total
}

// SortInstallments orders installments by due date then number
func (p *PaymentPlan) SortInstallments() {
	sort.SliceStable(p.Installments, func(i, j int) bool {
		if p.Installments[i].DueDate.Equal(p.Installments[j].DueDate) {
			return p.Installments[i].Number < p.Installments[j].Number
		}
		return p.Installments[i].DueDate.Before(p.Installments[j].DueDate)
	})
}

// HasOutstanding reports whether any installment can still receive payments
func (p *PaymentPlan) HasOutstanding() bool {
	for i := range p.Installments {
		if p.Installments[i].IsOutstanding() {
			return true
		}
	}
	return false
}

// ApplyPayment allocates a payment across the outstanding installments.
// A defaulted plan keeps collecting against its schedule; only an active plan
// completes once no installment is left outstanding.
func (p *PaymentPlan) ApplyPayment(amount decimal.Decimal, paidAt time.Time) (*AllocationResult, error) {
	result, err := NewWaterfallAllocator().Allocate(amount, p.OutstandingInstallments(), paidAt)
	if err != nil {
		return nil, err
	}
	if len(result.Allocations) == 0 {
		return result, nil
	}

	if p.Status == PlanStatusActive && !p.HasOutstanding() {
		p.Status = PlanStatusCompleted
		p.CompletedAt = &paidAt
		p.AddDomainEvent(NewPaymentPlanStatusChangedEvent(p, PlanStatusActive))
	}
	p.Touch()
	p.IncrementVersion()
	return result, nil
}

// MarkOverdue flags pending installments due before asOf's calendar day as
// overdue and returns how many changed
func (p *PaymentPlan) MarkOverdue(asOf time.Time) int {
	if p.Status != PlanStatusActive {
		return 0
	}
	cutoff := shared.DateOnly(asOf)
	changed := 0
	for i := range p.Installments {
		inst := &p.Installments[i]
		if inst.Status == InstallmentStatusPending && inst.DueDate.Before(cutoff) {
			inst.Status = InstallmentStatusOverdue
			inst.Touch()
			changed++
		}
	}
	if changed > 0 {
		p.Touch()
		p.IncrementVersion()
	}
	return changed
}

// UpdateStatus closes an active plan as completed or defaulted
func (p *PaymentPlan) UpdateStatus(status PlanStatus) error {
	if status != PlanStatusCompleted && status != PlanStatusDefaulted {
		return shared.NewDomainError("INVALID_PLAN_STATUS", "Status must be completed or defaulted")
	}
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active payment plans can change status")
	}

	previous := p.Status
	p.Status = status
	if status == PlanStatusCompleted {
		now := time.Now()
		p.CompletedAt = &now
	}
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPaymentPlanStatusChangedEvent(p, previous))
	return nil
}
