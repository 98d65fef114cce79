package debt

import (
	"time"

	"github.com/distributor/backend/internal/domain/debt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of date-only fields
const DateLayout = "2006-01-02"

// ==================== Debt DTOs ====================

// CreateDebtRequest represents a request to record a debt against a salesperson
type CreateDebtRequest struct {
	SalesPersonID uuid.UUID
	Amount        decimal.Decimal
	DueDate       time.Time
	InvoiceID     *uuid.UUID
	Notes         string
}

// DebtListFilter represents debt list query options
type DebtListFilter struct {
	Page          int
	PageSize      int
	Status        *debt.DebtStatus
	SalesPersonID *uuid.UUID
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	SalesPersonID  uuid.UUID       `json:"sales_person_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Amount         decimal.Decimal `json:"amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Status         string          `json:"status"`
	DueDate        string          `json:"due_date"`
	IsOverdue      bool            `json:"is_overdue"`
	InvoiceID      *uuid.UUID      `json:"invoice_id,omitempty"`
	PaymentPlanID  *uuid.UUID      `json:"payment_plan_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedBy      *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToDebtResponse converts a domain debt to its response form
func ToDebtResponse(d *debt.Debt, asOf time.Time) DebtResponse {
	return DebtResponse{
		ID:             d.ID,
		TenantID:       d.TenantID,
		SalesPersonID:  d.SalesPersonID,
		OriginalAmount: d.OriginalAmount,
		Amount:         d.Amount,
		PaidAmount:     d.PaidAmount(),
		Status:         d.Status.String(),
		DueDate:        d.DueDate.Format(DateLayout),
		IsOverdue:      d.IsOverdue(asOf),
		InvoiceID:      d.InvoiceID,
		PaymentPlanID:  d.PaymentPlanID,
		Notes:          d.Notes,
		PaidAt:         d.PaidAt,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Version:        d.Version,
	}
}

// ToDebtResponses converts a list of domain debts
func ToDebtResponses(debts []debt.Debt, asOf time.Time) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i := range debts {
		responses[i] = ToDebtResponse(&debts[i], asOf)
	}
	return responses
}

// ==================== Payment Plan DTOs ====================

// CreatePaymentPlanRequest represents a request to schedule a debt in installments
type CreatePaymentPlanRequest struct {
	InstallmentAmount decimal.Decimal
	Frequency         debt.Frequency
	StartDate         time.Time
	EndDate           time.Time
}

// PaymentPlanResponse represents a payment plan with its installments
type PaymentPlanResponse struct {
	ID                uuid.UUID             `json:"id"`
	DebtID            uuid.UUID             `json:"debt_id"`
	TotalAmount       decimal.Decimal       `json:"total_amount"`
	InstallmentAmount decimal.Decimal       `json:"installment_amount"`
	Frequency         string                `json:"frequency"`
	StartDate         string                `json:"start_date"`
	EndDate           string                `json:"end_date"`
	Status            string                `json:"status"`
	ScheduledTotal    decimal.Decimal       `json:"scheduled_total"`
	PaidTotal         decimal.Decimal       `json:"paid_total"`
	OutstandingTotal  decimal.Decimal       `json:"outstanding_total"`
	CompletedAt       *time.Time            `json:"completed_at,omitempty"`
	CreatedBy         *uuid.UUID            `json:"created_by,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Version           int                   `json:"version"`
	Installments      []InstallmentResponse `json:"installments"`
}

// InstallmentResponse represents one scheduled installment
type InstallmentResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     int             `json:"installment_number"`
	DueDate    string          `json:"due_date"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
	PaidDate   *time.Time      `json:"paid_date,omitempty"`
}

// ToPaymentPlanResponse converts a domain plan; installments are ordered by due date
func ToPaymentPlanResponse(p *debt.PaymentPlan) PaymentPlanResponse {
	p.SortInstallments()
	installments := make([]InstallmentResponse, len(p.Installments))
	for i := range p.Installments {
		inst := &p.Installments[i]
		installments[i] = InstallmentResponse{
			ID:         inst.ID,
			Number:     inst.Number,
			DueDate:    inst.DueDate.Format(DateLayout),
			Amount:     inst.Amount,
			PaidAmount: inst.PaidAmount,
			Balance:    inst.Balance(),
			Status:     string(inst.Status),
			PaidDate:   inst.PaidDate,
		}
	}
	return PaymentPlanResponse{
		ID:                p.ID,
		DebtID:            p.DebtID,
		TotalAmount:       p.TotalAmount,
		InstallmentAmount: p.InstallmentAmount,
		Frequency:         p.Frequency.String(),
		StartDate:         p.StartDate.Format(DateLayout),
		EndDate:           p.EndDate.Format(DateLayout),
		Status:            p.Status.String(),
		ScheduledTotal:    p.ScheduledTotal(),
		PaidTotal:         p.PaidTotal(),
		OutstandingTotal:  p.OutstandingTotal(),
		CompletedAt:       p.CompletedAt,
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
		Installments:      installments,
	}
}

// ==================== Payment DTOs ====================

// RecordDebtPaymentRequest represents a payment against a debt
type RecordDebtPaymentRequest struct {
	Amount      decimal.Decimal
	PaymentDate time.Time // zero means now
	Notes       string
}

// RecordDebtPaymentResponse describes the effect of a debt payment
type RecordDebtPaymentResponse struct {
	Debt              DebtResponse         `json:"debt"`
	PaymentPlan       *PaymentPlanResponse `json:"payment_plan,omitempty"`
	Allocations       []debt.Allocation    `json:"allocations"`
	TotalAllocated    decimal.Decimal      `json:"total_allocated"`
	UnallocatedAmount decimal.Decimal      `json:"unallocated_amount"`
}

// MarkOverdueResult reports the outcome of an overdue sweep
type MarkOverdueResult struct {
	AsOf               string `json:"as_of"`
	PlansUpdated       int    `json:"plans_updated"`
	InstallmentsMarked int    `json:"installments_marked"`
}
