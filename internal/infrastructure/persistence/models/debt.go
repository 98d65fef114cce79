package models

import (
	"time"

	"github.com/distributor/backend/internal/domain/debt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DebtModel is the persistence model for the Debt aggregate root.
type DebtModel struct {
	TenantAggregateModel
	SalesPersonID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OriginalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status         debt.DebtStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	DueDate        datatypes.Date  `gorm:"type:date;not null;index"`
	InvoiceID      *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentPlanID  *uuid.UUID      `gorm:"type:uuid"`
	Notes          string          `gorm:"type:text"`
	PaidAt         *time.Time
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts the persistence model to a domain Debt entity
func (m *DebtModel) ToDomain() *debt.Debt {
	return &debt.Debt{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		SalesPersonID:       m.SalesPersonID,
		OriginalAmount:      m.OriginalAmount,
		Amount:              m.Amount,
		Status:              m.Status,
		DueDate:             FromDate(m.DueDate),
		InvoiceID:           m.InvoiceID,
		PaymentPlanID:       m.PaymentPlanID,
		Notes:               m.Notes,
		PaidAt:              m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Debt entity
func (m *DebtModel) FromDomain(d *debt.Debt) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.SalesPersonID = d.SalesPersonID
	m.OriginalAmount = d.OriginalAmount
	m.Amount = d.Amount
	m.Status = d.Status
	m.DueDate = Date(d.DueDate)
	m.InvoiceID = d.InvoiceID
	m.PaymentPlanID = d.PaymentPlanID
	m.Notes = d.Notes
	m.PaidAt = d.PaidAt
}

// DebtModelFromDomain creates a new persistence model from a domain Debt entity
func DebtModelFromDomain(d *debt.Debt) *DebtModel {
	m := &DebtModel{}
	m.FromDomain(d)
	return m
}

// PaymentPlanModel is the persistence model for the PaymentPlan aggregate root.
// Installments are owned rows in payment_plan_installments.
type PaymentPlanModel struct {
	TenantAggregateModel
	DebtID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InstallmentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Frequency         debt.Frequency  `gorm:"type:varchar(20);not null"`
	StartDate         datatypes.Date  `gorm:"type:date;not null"`
	EndDate           datatypes.Date  `gorm:"type:date;not null"`
	Status            debt.PlanStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	CompletedAt       *time.Time
	Installments      []InstallmentModel `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PaymentPlanModel) TableName() string {
	return "payment_plans"
}

// ToDomain converts the persistence model to a domain PaymentPlan.
// Installments are returned in due-date order.
func (m *PaymentPlanModel) ToDomain() *debt.PaymentPlan {
	plan := &debt.PaymentPlan{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		DebtID:              m.DebtID,
		TotalAmount:         m.TotalAmount,
		InstallmentAmount:   m.InstallmentAmount,
		Frequency:           m.Frequency,
		StartDate:           FromDate(m.StartDate),
		EndDate:             FromDate(m.EndDate),
		Status:              m.Status,
		CompletedAt:         m.CompletedAt,
		Installments:        make([]debt.Installment, 0, len(m.Installments)),
	}
	for i := range m.Installments {
		plan.Installments = append(plan.Installments, m.Installments[i].ToDomain())
	}
	plan.SortInstallments()
	return plan
}

// FromDomain populates the persistence model from a domain PaymentPlan
func (m *PaymentPlanModel) FromDomain(p *debt.PaymentPlan) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.DebtID = p.DebtID
	m.TotalAmount = p.TotalAmount
	m.InstallmentAmount = p.InstallmentAmount
	m.Frequency = p.Frequency
	m.StartDate = Date(p.StartDate)
	m.EndDate = Date(p.EndDate)
	m.Status = p.Status
	m.CompletedAt = p.CompletedAt
	m.Installments = make([]InstallmentModel, 0, len(p.Installments))
	for i := range p.Installments {
		m.Installments = append(m.Installments, InstallmentModelFromDomain(&p.Installments[i]))
	}
}

// PaymentPlanModelFromDomain creates a new persistence model from a domain PaymentPlan
func PaymentPlanModelFromDomain(p *debt.PaymentPlan) *PaymentPlanModel {
	m := &PaymentPlanModel{}
	m.FromDomain(p)
	return m
}

// InstallmentModel is one scheduled repayment row of a payment plan
type InstallmentModel struct {
	BaseModel
	PlanID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Number     int                    `gorm:"column:installment_number;not null"`
	DueDate    datatypes.Date         `gorm:"type:date;not null;index"`
	Amount     decimal.Decimal        `gorm:"type:decimal(15,2);not null"`
	PaidAmount decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0"`
	Status     debt.InstallmentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidDate   *time.Time
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "payment_plan_installments"
}

// ToDomain converts the persistence model to a domain Installment
func (m *InstallmentModel) ToDomain() debt.Installment {
	return debt.Installment{
		BaseEntity: m.BaseModel.ToDomain(),
		PlanID:     m.PlanID,
		Number:     m.Number,
		DueDate:    FromDate(m.DueDate),
		Amount:     m.Amount,
		PaidAmount: m.PaidAmount,
		Status:     m.Status,
		PaidDate:   m.PaidDate,
	}
}

// InstallmentModelFromDomain creates a persistence model from a domain Installment
func InstallmentModelFromDomain(i *debt.Installment) InstallmentModel {
	m := InstallmentModel{
		PlanID:     i.PlanID,
		Number:     i.Number,
		DueDate:    Date(i.DueDate),
		Amount:     i.Amount,
		PaidAmount: i.PaidAmount,
		Status:     i.Status,
		PaidDate:   i.PaidDate,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
