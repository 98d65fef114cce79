package debt

import (
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtStatus represents the settlement status of a debt
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPaid    DebtStatus = "paid"
)

// IsValid checks if the status is a valid DebtStatus
func (s DebtStatus) IsValid() bool {
	return s == DebtStatusPending || s == DebtStatusPaid
}

// String returns the string representation of DebtStatus
func (s DebtStatus) String() string {
	return string(s)
}

// Debt is an amount owed by a salesperson to the distributor.
// Amount is the outstanding balance; it only decreases through payments.
type Debt struct {
	shared.TenantAggregateRoot
	SalesPersonID  uuid.UUID
	OriginalAmount decimal.Decimal
	Amount         decimal.Decimal
	Status         DebtStatus
	DueDate        time.Time
	InvoiceID      *uuid.UUID
	PaymentPlanID  *uuid.UUID
	Notes          string
	PaidAt         *time.Time
}

// NewDebt creates a pending debt for a salesperson
func NewDebt(tenantID, salesPersonID uuid.UUID, amount decimal.Decimal, dueDate time.Time, createdBy uuid.UUID) (*Debt, error) {
	if salesPersonID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_PERSON", "Valid salesperson ID is required")
	}
	if err := shared.ValidateAmount("Amount", amount); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Valid due date is required")
	}

	d := &Debt{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		SalesPersonID:       salesPersonID,
		OriginalAmount:      amount,
		Amount:              amount,
		Status:              DebtStatusPending,
		DueDate:             shared.DateOnly(dueDate),
	}
	d.AddDomainEvent(NewDebtCreatedEvent(d))
	return d, nil
}

// LinkInvoice associates the debt with the invoice it originated from
func (d *Debt) LinkInvoice(invoiceID uuid.UUID) {
	d.InvoiceID = &invoiceID
}

// SetNotes sets free-form notes
func (d *Debt) SetNotes(notes string) {
	d.Notes = notes
}

// AttachPaymentPlan records the plan currently scheduling this debt
func (d *Debt) AttachPaymentPlan(planID uuid.UUID) {
	d.PaymentPlanID = &planID
	d.Touch()
	d.IncrementVersion()
}

// ApplyPayment reduces the outstanding amount. The debt becomes paid exactly
// when the outstanding amount reaches zero.
func (d *Debt) ApplyPayment(amount decimal.Decimal, paidAt time.Time) error {
	if err := shared.ValidateAmount("Payment amount", amount); err != nil {
		return err
	}
	if amount.GreaterThan(d.Amount) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_DEBT", "Payment amount exceeds debt amount")
	}

	d.Amount = d.Amount.Sub(amount)
	if d.Amount.IsZero() {
		d.Status = DebtStatusPaid
		d.PaidAt = &paidAt
	} else {
		d.Status = DebtStatusPending
	}
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewDebtPaymentRecordedEvent(d, amount))
	if d.Status == DebtStatusPaid {
		d.AddDomainEvent(NewDebtSettledEvent(d))
	}
	return nil
}

// PaidAmount returns how much has been paid against the original amount
func (d *Debt) PaidAmount() decimal.Decimal {
	return d.OriginalAmount.Sub(d.Amount)
}

// IsOverdue reports whether a pending debt's due date is before asOf's calendar day
func (d *Debt) IsOverdue(asOf time.Time) bool {
	return d.Status == DebtStatusPending && d.DueDate.Before(shared.DateOnly(asOf))
}

// IsOwnedBy reports whether the debt belongs to the given salesperson
func (d *Debt) IsOwnedBy(salesPersonID uuid.UUID) bool {
	return d.SalesPersonID == salesPersonID
}
