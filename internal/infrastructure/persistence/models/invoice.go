package models

import (
	"time"

	"github.com/distributor/backend/internal/domain/invoice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// TotalPaid and Balance are stored so list queries need no aggregation. The
// migration scopes the invoice_number unique index to the tenant.
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber       string                `gorm:"type:varchar(20);not null;uniqueIndex"`
	Amount              decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	Date                time.Time             `gorm:"not null;index"`
	Status              invoice.InvoiceStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	SalesPersonID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	QRCode              string                `gorm:"column:qr_code;type:text"`
	ImageURL            string                `gorm:"column:image_url;type:varchar(500)"`
	ApprovedBy          *uuid.UUID            `gorm:"type:uuid"`
	ApprovedDate        *time.Time
	RejectionReason     string     `gorm:"type:text"`
	Reconciled          bool       `gorm:"not null;default:false;index"`
	ReconciledBy        *uuid.UUID `gorm:"type:uuid"`
	ReconciledDate      *time.Time
	ReconciliationNotes string          `gorm:"type:text"`
	TotalPaid           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Balance             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *invoice.Invoice {
	return &invoice.Invoice{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		InvoiceNumber:       m.InvoiceNumber,
		Amount:              m.Amount,
		Date:                m.Date,
		Status:              m.Status,
		SalesPersonID:       m.SalesPersonID,
		QRCode:              m.QRCode,
		ImageURL:            m.ImageURL,
		ApprovedBy:          m.ApprovedBy,
		ApprovedDate:        m.ApprovedDate,
		RejectionReason:     m.RejectionReason,
		Reconciled:          m.Reconciled,
		ReconciledBy:        m.ReconciledBy,
		ReconciledDate:      m.ReconciledDate,
		ReconciliationNotes: m.ReconciliationNotes,
		TotalPaid:           m.TotalPaid,
		Balance:             m.Balance,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoice.Invoice) {
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.Amount = inv.Amount
	m.Date = inv.Date
	m.Status = inv.Status
	m.SalesPersonID = inv.SalesPersonID
	m.QRCode = inv.QRCode
	m.ImageURL = inv.ImageURL
	m.ApprovedBy = inv.ApprovedBy
	m.ApprovedDate = inv.ApprovedDate
	m.RejectionReason = inv.RejectionReason
	m.Reconciled = inv.Reconciled
	m.ReconciledBy = inv.ReconciledBy
	m.ReconciledDate = inv.ReconciledDate
	m.ReconciliationNotes = inv.ReconciliationNotes
	m.TotalPaid = inv.TotalPaid
	m.Balance = inv.Balance
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoice.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoicePaymentModel is an append-only payment row
type InvoicePaymentModel struct {
	BaseModel
	TenantID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	PaymentAmount   decimal.Decimal       `gorm:"type:decimal(15,2);not null"`
	PaymentDate     time.Time             `gorm:"not null"`
	PaymentMethod   invoice.PaymentMethod `gorm:"type:varchar(20);not null"`
	ReferenceNumber string                `gorm:"type:varchar(100)"`
	RecordedBy      uuid.UUID             `gorm:"type:uuid;not null"`
	Notes           string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoicePaymentModel) TableName() string {
	return "invoice_payments"
}

// ToDomain converts the persistence model to a domain InvoicePayment
func (m *InvoicePaymentModel) ToDomain() invoice.InvoicePayment {
	return invoice.InvoicePayment{
		BaseEntity:      m.BaseModel.ToDomain(),
		TenantID:        m.TenantID,
		InvoiceID:       m.InvoiceID,
		PaymentAmount:   m.PaymentAmount,
		PaymentDate:     m.PaymentDate,
		PaymentMethod:   m.PaymentMethod,
		ReferenceNumber: m.ReferenceNumber,
		RecordedBy:      m.RecordedBy,
		Notes:           m.Notes,
	}
}

// InvoicePaymentModelFromDomain creates a persistence model from a domain InvoicePayment
func InvoicePaymentModelFromDomain(p *invoice.InvoicePayment) *InvoicePaymentModel {
	m := &InvoicePaymentModel{
		TenantID:        p.TenantID,
		InvoiceID:       p.InvoiceID,
		PaymentAmount:   p.PaymentAmount,
		PaymentDate:     p.PaymentDate,
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		RecordedBy:      p.RecordedBy,
		Notes:           p.Notes,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
