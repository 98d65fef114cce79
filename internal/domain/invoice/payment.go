package invoice

import (
	"strings"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how an invoice payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodMobileMoney:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// InvoicePayment is an append-only record of money received against an invoice
type InvoicePayment struct {
	shared.BaseEntity
	TenantID        uuid.UUID
	InvoiceID       uuid.UUID
	PaymentAmount   decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   PaymentMethod
	ReferenceNumber string
	RecordedBy      uuid.UUID
	Notes           string
}

// NewInvoicePayment creates a payment record; a zero paymentDate means now
func NewInvoicePayment(inv *Invoice, amount decimal.Decimal, method PaymentMethod, paymentDate time.Time, reference, notes string, recordedBy uuid.UUID) (*InvoicePayment, error) {
	if inv == nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice is required")
	}
	if err := shared.ValidateAmount("Payment amount", amount); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Invalid payment method")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &InvoicePayment{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        inv.TenantID,
		InvoiceID:       inv.ID,
		PaymentAmount:   amount,
		PaymentDate:     paymentDate,
		PaymentMethod:   method,
		ReferenceNumber: strings.TrimSpace(reference),
		RecordedBy:      recordedBy,
		Notes:           strings.TrimSpace(notes),
	}, nil
}
