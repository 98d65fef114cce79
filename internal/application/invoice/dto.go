package invoice

import (
	"time"

	"github.com/distributor/backend/internal/domain/invoice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to raise an invoice
type CreateInvoiceRequest struct {
	Amount        decimal.Decimal
	SalesPersonID *uuid.UUID // required unless the actor is a salesperson
	QRCode        string
	ImageURL      string
}

// InvoiceListFilter represents invoice list query options
type InvoiceListFilter struct {
	Page          int
	PageSize      int
	Status        *invoice.InvoiceStatus
	SalesPersonID *uuid.UUID
	Reconciled    *bool
}

// StatusAction is a review decision on a pending invoice
type StatusAction string

const (
	StatusActionApprove StatusAction = "approved"
	StatusActionReject  StatusAction = "rejected"
)

// UpdateStatusRequest represents an approve or reject decision
type UpdateStatusRequest struct {
	Status          StatusAction
	RejectionReason string
}

// RecordPaymentRequest represents money received against an invoice
type RecordPaymentRequest struct {
	PaymentAmount   decimal.Decimal
	PaymentMethod   invoice.PaymentMethod
	ReferenceNumber string
	PaymentDate     time.Time // zero means now
	Notes           string
}

// ReconcileRequest represents a reconciliation of an invoice
type ReconcileRequest struct {
	Notes string
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                  uuid.UUID         `json:"id"`
	TenantID            uuid.UUID         `json:"tenant_id"`
	InvoiceNumber       string            `json:"invoice_number"`
	Amount              decimal.Decimal   `json:"amount"`
	Date                time.Time         `json:"date"`
	Status              string            `json:"status"`
	SalesPersonID       uuid.UUID         `json:"sales_person_id"`
	QRCode              string            `json:"qr_code,omitempty"`
	ImageURL            string            `json:"image_url,omitempty"`
	ApprovedBy          *uuid.UUID        `json:"approved_by,omitempty"`
	ApprovedDate        *time.Time        `json:"approved_date,omitempty"`
	RejectionReason     string            `json:"rejection_reason,omitempty"`
	Reconciled          bool              `json:"reconciled"`
	ReconciledBy        *uuid.UUID        `json:"reconciled_by,omitempty"`
	ReconciledDate      *time.Time        `json:"reconciled_date,omitempty"`
	ReconciliationNotes string            `json:"reconciliation_notes,omitempty"`
	TotalPaid           decimal.Decimal   `json:"total_paid"`
	Balance             decimal.Decimal   `json:"balance"`
	CreatedBy           *uuid.UUID        `json:"created_by,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	Version             int               `json:"version"`
	Payments            []PaymentResponse `json:"payments,omitempty"`
}

// PaymentResponse represents an invoice payment
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	RecordedBy      uuid.UUID       `json:"recorded_by"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InvoiceSummary is the compact invoice view returned after a payment
type InvoiceSummary struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
}

// RecordPaymentResponse is the result of recording an invoice payment
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceSummary  `json:"invoice"`
}

// ToInvoiceResponse converts a domain invoice to its response form
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                  inv.ID,
		TenantID:            inv.TenantID,
		InvoiceNumber:       inv.InvoiceNumber,
		Amount:              inv.Amount,
		Date:                inv.Date,
		Status:              inv.Status.String(),
		SalesPersonID:       inv.SalesPersonID,
		QRCode:              inv.QRCode,
		ImageURL:            inv.ImageURL,
		ApprovedBy:          inv.ApprovedBy,
		ApprovedDate:        inv.ApprovedDate,
		RejectionReason:     inv.RejectionReason,
		Reconciled:          inv.Reconciled,
		ReconciledBy:        inv.ReconciledBy,
		ReconciledDate:      inv.ReconciledDate,
		ReconciliationNotes: inv.ReconciliationNotes,
		TotalPaid:           inv.TotalPaid,
		Balance:             inv.Balance,
		CreatedBy:           inv.CreatedBy,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
		Version:             inv.Version,
	}
}

// ToInvoiceResponses converts a list of domain invoices
func ToInvoiceResponses(invoices []invoice.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// ToPaymentResponse converts a domain payment
func ToPaymentResponse(p *invoice.InvoicePayment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		PaymentAmount:   p.PaymentAmount,
		PaymentDate:     p.PaymentDate,
		PaymentMethod:   p.PaymentMethod.String(),
		ReferenceNumber: p.ReferenceNumber,
		RecordedBy:      p.RecordedBy,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

func toInvoiceSummary(inv *invoice.Invoice) InvoiceSummary {
	return InvoiceSummary{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		TotalPaid:     inv.TotalPaid,
		Balance:       inv.Balance,
		Status:        inv.Status.String(),
	}
}
