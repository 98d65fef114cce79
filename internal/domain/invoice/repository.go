package invoice

import (
	"context"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFilter extends the common filter with invoice-specific criteria
type InvoiceFilter struct {
	shared.Filter
	Status        *InvoiceStatus
	SalesPersonID *uuid.UUID
	Reconciled    *bool
}

// InvoiceRepository persists Invoice aggregates
type InvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate finds an invoice and locks its row for the surrounding transaction
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindAllForTenant lists invoices newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// FindForReconciliation lists approved, unreconciled invoices oldest first
	FindForReconciliation(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error)

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (int64, error)

	Save(ctx context.Context, inv *Invoice) error

	// SaveWithLock updates an invoice only if its stored version is inv.Version-1
	SaveWithLock(ctx context.Context, inv *Invoice) error

	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// GenerateInvoiceNumber returns the next INV-YYYYMM-NNNNN for at's month
	GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error)
}

// InvoicePaymentRepository stores append-only invoice payments
type InvoicePaymentRepository interface {
	Create(ctx context.Context, payment *InvoicePayment) error

	// FindByInvoice lists an invoice's payments newest first
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]InvoicePayment, error)

	SumByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (decimal.Decimal, error)
}
