package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/distributor/backend/internal/domain/invoice"
	"github.com/distributor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements invoice.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForTenant finds an invoice by ID within a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoice.Invoice, error) {
	return r.findOne(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds an invoice and locks its row
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*invoice.Invoice, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormInvoiceRepository) findOne(db *gorm.DB, tenantID, id uuid.UUID) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists invoices matching the filter, newest first by default
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter invoice.InvoiceFilter) ([]invoice.Invoice, error) {
	var dbModels []models.InvoiceModel
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), tenantID, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, InvoiceSortFields, "date", "DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	return invoicesToDomain(dbModels), nil
}

// FindForReconciliation lists approved, unreconciled invoices oldest first
func (r *GormInvoiceRepository) FindForReconciliation(ctx context.Context, tenantID uuid.UUID) ([]invoice.Invoice, error) {
	var dbModels []models.InvoiceModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND reconciled = ?", tenantID, invoice.InvoiceStatusApproved, false).
		Order("date ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	return invoicesToDomain(dbModels), nil
}

// CountForTenant counts invoices matching the filter
func (r *GormInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter invoice.InvoiceFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// Save inserts or fully overwrites an invoice. A clashing invoice number
// surfaces as shared.ErrAlreadyExists.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	return translateError(r.db.WithContext(ctx).Save(models.InvoiceModelFromDomain(inv)).Error)
}

// SaveWithLock updates an invoice only if the stored version is inv.Version-1
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", inv.TenantID, inv.ID, inv.Version-1).
		Updates(map[string]any{
			"status":               model.Status,
			"approved_by":          model.ApprovedBy,
			"approved_date":        model.ApprovedDate,
			"rejection_reason":     model.RejectionReason,
			"reconciled":           model.Reconciled,
			"reconciled_by":        model.ReconciledBy,
			"reconciled_date":      model.ReconciledDate,
			"reconciliation_notes": model.ReconciliationNotes,
			"total_paid":           model.TotalPaid,
			"balance":              model.Balance,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return optimisticLockError("Invoice")
	}
	return nil
}

// DeleteForTenant removes an invoice together with its payments
func (r *GormInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND invoice_id = ?", tenantID, id).
			Delete(&models.InvoicePaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.InvoiceModel{})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return translateError(gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// GenerateInvoiceNumber returns the month's highest sequence plus one.
// Numbers are zero padded, so the lexical maximum is the numeric maximum.
func (r *GormInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error) {
	var last models.InvoiceModel
	err := r.db.WithContext(ctx).
		Select("invoice_number").
		Where("tenant_id = ? AND invoice_number LIKE ?", tenantID, invoice.InvoiceNumberPrefix(at)+"-%").
		Order("invoice_number DESC").
		First(&last).Error

	next := 1
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return "", err
	default:
		if seq, ok := invoice.ParseInvoiceSequence(last.InvoiceNumber); ok {
			next = seq + 1
		}
	}
	return invoice.FormatInvoiceNumber(at, next), nil
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter invoice.InvoiceFilter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SalesPersonID != nil {
		query = query.Where("sales_person_id = ?", *filter.SalesPersonID)
	}
	if filter.Reconciled != nil {
		query = query.Where("reconciled = ?", *filter.Reconciled)
	}
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func invoicesToDomain(dbModels []models.InvoiceModel) []invoice.Invoice {
	invoices := make([]invoice.Invoice, len(dbModels))
	for i := range dbModels {
		invoices[i] = *dbModels[i].ToDomain()
	}
	return invoices
}

// GormInvoicePaymentRepository implements invoice.InvoicePaymentRepository using GORM
type GormInvoicePaymentRepository struct {
	db *gorm.DB
}

// NewGormInvoicePaymentRepository creates a new GormInvoicePaymentRepository
func NewGormInvoicePaymentRepository(db *gorm.DB) *GormInvoicePaymentRepository {
	return &GormInvoicePaymentRepository{db: db}
}

// Create appends a payment row
func (r *GormInvoicePaymentRepository) Create(ctx context.Context, payment *invoice.InvoicePayment) error {
	return translateError(r.db.WithContext(ctx).Create(models.InvoicePaymentModelFromDomain(payment)).Error)
}

// FindByInvoice lists an invoice's payments newest first
func (r *GormInvoicePaymentRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]invoice.InvoicePayment, error) {
	var dbModels []models.InvoicePaymentModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND invoice_id = ?", tenantID, invoiceID).
		Order("payment_date DESC, created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, err
	}
	payments := make([]invoice.InvoicePayment, len(dbModels))
	for i := range dbModels {
		payments[i] = dbModels[i].ToDomain()
	}
	return payments, nil
}

// SumByInvoice totals an invoice's payments
func (r *GormInvoicePaymentRepository) SumByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).
		Model(&models.InvoicePaymentModel{}).
		Select("SUM(payment_amount)").
		Where("tenant_id = ? AND invoice_id = ?", tenantID, invoiceID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Ensure the repositories implement the domain interfaces
var (
	_ invoice.InvoiceRepository        = (*GormInvoiceRepository)(nil)
	_ invoice.InvoicePaymentRepository = (*GormInvoicePaymentRepository)(nil)
)
