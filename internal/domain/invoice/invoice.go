package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the approval and settlement status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusCleared  InvoiceStatus = "cleared"
	InvoiceStatusRejected InvoiceStatus = "rejected"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusApproved, InvoiceStatusCleared, InvoiceStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

const invoiceNumberPrefix = "INV-"

var invoiceNumberPattern = regexp.MustCompile(`^INV-\d{6}-\d{5}$`)

// InvoiceNumberPrefix returns the "INV-YYYYMM" prefix shared by all invoices of at's month
func InvoiceNumberPrefix(at time.Time) string {
	return fmt.Sprintf("%s%04d%02d", invoiceNumberPrefix, at.Year(), int(at.Month()))
}

// FormatInvoiceNumber builds INV-YYYYMM-NNNNN
func FormatInvoiceNumber(at time.Time, sequence int) string {
	return fmt.Sprintf("%s-%05d", InvoiceNumberPrefix(at), sequence)
}

// ParseInvoiceSequence extracts the trailing sequence of an invoice number
func ParseInvoiceSequence(number string) (int, bool) {
	if !invoiceNumberPattern.MatchString(number) {
		return 0, false
	}
	seq, err := strconv.Atoi(number[strings.LastIndex(number, "-")+1:])
	if err != nil {
		return 0, false
	}
	return seq, true
}

// Invoice is a sales invoice raised by or for a salesperson.
// Balance always equals Amount minus TotalPaid.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber       string
	Amount              decimal.Decimal
	Date                time.Time
	Status              InvoiceStatus
	SalesPersonID       uuid.UUID
	QRCode              string
	ImageURL            string
	ApprovedBy          *uuid.UUID
	ApprovedDate        *time.Time
	RejectionReason     string
	Reconciled          bool
	ReconciledBy        *uuid.UUID
	ReconciledDate      *time.Time
	ReconciliationNotes string
	TotalPaid           decimal.Decimal
	Balance             decimal.Decimal
}

// NewInvoice creates a pending invoice with nothing paid
func NewInvoice(tenantID uuid.UUID, number string, amount decimal.Decimal, salesPersonID uuid.UUID, qrCode, imageURL string, createdBy uuid.UUID) (*Invoice, error) {
	if !invoiceNumberPattern.MatchString(number) {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number must match INV-YYYYMM-NNNNN")
	}
	if err := shared.ValidateAmount("Amount", amount); err != nil {
		return nil, err
	}
	if salesPersonID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_PERSON", "Valid salesperson ID is required")
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		InvoiceNumber:       number,
		Amount:              amount,
		Date:                time.Now(),
		Status:              InvoiceStatusPending,
		SalesPersonID:       salesPersonID,
		QRCode:              strings.TrimSpace(qrCode),
		ImageURL:            strings.TrimSpace(imageURL),
		TotalPaid:           decimal.Zero,
	}
	inv.recalculate()
	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))
	return inv, nil
}

func (i *Invoice) recalculate() {
	i.Balance = i.Amount.Sub(i.TotalPaid)
}

// ApplyPayment adds a payment to the running total. The invoice becomes
// cleared when the balance reaches zero; otherwise its status is kept.
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if err := shared.ValidateAmount("Payment amount", amount); err != nil {
		return err
	}
	if i.Status == InvoiceStatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Payments cannot be recorded against a rejected invoice")
	}
	i.recalculate()
	if amount.GreaterThan(i.Balance) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_BALANCE", "Payment amount exceeds outstanding balance")
	}

	previous := i.Status
	i.TotalPaid = i.TotalPaid.Add(amount)
	i.recalculate()
	if i.Balance.IsZero() {
		i.Status = InvoiceStatusCleared
	}
	i.Touch()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoicePaymentRecordedEvent(i, amount))
	if i.Status != previous {
		i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, previous))
	}
	return nil
}

// Approve approves a pending invoice
func (i *Invoice) Approve(by uuid.UUID) error {
	return i.review(InvoiceStatusApproved, by, "")
}

// Reject rejects a pending invoice with an optional reason
func (i *Invoice) Reject(by uuid.UUID, reason string) error {
	return i.review(InvoiceStatusRejected, by, reason)
}

func (i *Invoice) review(status InvoiceStatus, by uuid.UUID, reason string) error {
	if i.Status != InvoiceStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending invoices can be approved/rejected")
	}

	now := time.Now()
	previous := i.Status
	i.Status = status
	i.ApprovedBy = &by
	i.ApprovedDate = &now
	if status == InvoiceStatusRejected {
		i.RejectionReason = strings.TrimSpace(reason)
	}
	i.Touch()
	i.IncrementVersion()
	i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, previous))
	return nil
}

// Reconcile marks an approved or cleared invoice as reconciled
func (i *Invoice) Reconcile(by uuid.UUID, notes string) error {
	if i.Status != InvoiceStatusApproved && i.Status != InvoiceStatusCleared {
		return shared.NewDomainError("INVALID_STATE", "Only approved or cleared invoices can be reconciled")
	}

	now := time.Now()
	i.Reconciled = true
	i.ReconciledBy = &by
	i.ReconciledDate = &now
	i.ReconciliationNotes = strings.TrimSpace(notes)
	i.Touch()
	i.IncrementVersion()
	i.AddDomainEvent(NewInvoiceReconciledEvent(i))
	return nil
}

// CanDelete reports whether the invoice may be removed
func (i *Invoice) CanDelete() bool {
	return i.Status == InvoiceStatusPending
}

// IsOwnedBy reports whether the invoice belongs to the given salesperson
func (i *Invoice) IsOwnedBy(salesPersonID uuid.UUID) bool {
	return i.SalesPersonID == salesPersonID
}
