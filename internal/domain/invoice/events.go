package invoice

import (
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names
const (
	EventTypeInvoiceCreated         = "InvoiceCreated"
	EventTypeInvoicePaymentRecorded = "InvoicePaymentRecorded"
	EventTypeInvoiceStatusChanged   = "InvoiceStatusChanged"
	EventTypeInvoiceReconciled      = "InvoiceReconciled"
	EventTypeInvoiceDeleted         = "InvoiceDeleted"
)

const aggregateTypeInvoice = "Invoice"

// InvoiceCreatedEvent is raised when an invoice is recorded
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	SalesPersonID uuid.UUID       `json:"sales_person_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewInvoiceCreatedEvent creates an InvoiceCreatedEvent
func NewInvoiceCreatedEvent(i *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, aggregateTypeInvoice, i.ID, i.TenantID),
		InvoiceNumber:   i.InvoiceNumber,
		SalesPersonID:   i.SalesPersonID,
		Amount:          i.Amount,
	}
}

// InvoicePaymentRecordedEvent is raised for every payment applied to an invoice
type InvoicePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Balance       decimal.Decimal `json:"balance"`
}

// NewInvoicePaymentRecordedEvent creates an InvoicePaymentRecordedEvent
func NewInvoicePaymentRecordedEvent(i *Invoice, amount decimal.Decimal) *InvoicePaymentRecordedEvent {
	return &InvoicePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentRecorded, aggregateTypeInvoice, i.ID, i.TenantID),
		InvoiceNumber:   i.InvoiceNumber,
		PaymentAmount:   amount,
		TotalPaid:       i.TotalPaid,
		Balance:         i.Balance,
	}
}

// InvoiceStatusChangedEvent is raised on approval, rejection and clearing
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string        `json:"invoice_number"`
	OldStatus     InvoiceStatus `json:"old_status"`
	NewStatus     InvoiceStatus `json:"new_status"`
}

// NewInvoiceStatusChangedEvent creates an InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(i *Invoice, previous InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, aggregateTypeInvoice, i.ID, i.TenantID),
		InvoiceNumber:   i.InvoiceNumber,
		OldStatus:       previous,
		NewStatus:       i.Status,
	}
}

// InvoiceReconciledEvent is raised when an invoice is reconciled
type InvoiceReconciledEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string    `json:"invoice_number"`
	ReconciledBy  uuid.UUID `json:"reconciled_by"`
}

// NewInvoiceReconciledEvent creates an InvoiceReconciledEvent
func NewInvoiceReconciledEvent(i *Invoice) *InvoiceReconciledEvent {
	e := &InvoiceReconciledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceReconciled, aggregateTypeInvoice, i.ID, i.TenantID),
		InvoiceNumber:   i.InvoiceNumber,
	}
	if i.ReconciledBy != nil {
		e.ReconciledBy = *i.ReconciledBy
	}
	return e
}

// InvoiceDeletedEvent is raised after a pending invoice is removed
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
}

// NewInvoiceDeletedEvent creates an InvoiceDeletedEvent
func NewInvoiceDeletedEvent(i *Invoice) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceDeleted, aggregateTypeInvoice, i.ID, i.TenantID),
		InvoiceNumber:   i.InvoiceNumber,
	}
}
