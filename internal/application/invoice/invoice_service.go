package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/invoice"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// numberAttempts bounds retries when two invoices race for the same number
const numberAttempts = 3

// InvoiceService handles invoices, their review and their payments
type InvoiceService struct {
	invoiceRepo    invoice.InvoiceRepository
	paymentRepo    invoice.InvoicePaymentRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo invoice.InvoiceRepository,
	paymentRepo invoice.InvoicePaymentRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		txScope:     txScope,
		logger:      logger,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

var (
	errInvoiceNotFound = shared.NewDomainError("NOT_FOUND", "Invoice not found")
	errAccessDenied    = shared.NewDomainError("FORBIDDEN", "Access denied")
)

// CreateInvoice raises a pending invoice. A salesperson always invoices for
// themselves; supervisors and the CEO must name the salesperson.
func (s *InvoiceService) CreateInvoice(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	salesPersonID := actor.UserID
	if !actor.IsSalesperson() {
		if req.SalesPersonID == nil || *req.SalesPersonID == uuid.Nil {
			return nil, shared.NewDomainError("SALES_PERSON_REQUIRED", "sales_person_id is required for supervisors/CEO")
		}
		salesPersonID = *req.SalesPersonID
	}

	var inv *invoice.Invoice
	for attempt := 1; ; attempt++ {
		number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx, tenantID, s.now())
		if err != nil {
			return nil, err
		}
		inv, err = invoice.NewInvoice(tenantID, number, req.Amount, salesPersonID, req.QRCode, req.ImageURL, actor.UserID)
		if err != nil {
			return nil, err
		}

		err = s.invoiceRepo.Save(ctx, inv)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt == numberAttempts {
			return nil, err
		}
		s.logger.Warn("Invoice number taken, retrying",
			zap.String("invoice_number", number),
			zap.Int("attempt", attempt))
	}

	s.logger.Info("Invoice created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("amount", inv.Amount.StringFixed(2)))

	s.publishEvents(ctx, inv)
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetInvoice retrieves an invoice with its payments, newest payment first
func (s *InvoiceService) GetInvoice(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if !actor.CanAccessSalesperson(inv.SalesPersonID) {
		return nil, errAccessDenied
	}

	payments, err := s.paymentRepo.FindByInvoice(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	response.Payments = make([]PaymentResponse, len(payments))
	for i := range payments {
		response.Payments[i] = ToPaymentResponse(&payments[i])
	}
	return &response, nil
}

// ListInvoices lists invoices newest first. A salesperson only sees their own.
func (s *InvoiceService) ListInvoices(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if actor.IsSalesperson() {
		self := actor.UserID
		filter.SalesPersonID = &self
	}

	domainFilter := invoice.InvoiceFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "date",
			OrderDir: "desc",
		},
		Status:        filter.Status,
		SalesPersonID: filter.SalesPersonID,
		Reconciled:    filter.Reconciled,
	}

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToInvoiceResponses(invoices), total, nil
}

// ListForReconciliation lists approved invoices not yet reconciled, oldest first
func (s *InvoiceService) ListForReconciliation(ctx context.Context, tenantID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindForReconciliation(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// UpdateStatus approves or rejects a pending invoice
func (s *InvoiceService) UpdateStatus(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID, req UpdateStatusRequest) (*InvoiceResponse, error) {
	var review func(inv *invoice.Invoice) error
	switch req.Status {
	case StatusActionApprove:
		review = func(inv *invoice.Invoice) error { return inv.Approve(actor.UserID) }
	case StatusActionReject:
		review = func(inv *invoice.Invoice) error { return inv.Reject(actor.UserID, req.RejectionReason) }
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be approved or rejected")
	}

	inv, err := s.mutate(ctx, tenantID, id, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice reviewed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", id.String()),
		zap.String("status", inv.Status.String()),
		zap.String("reviewed_by", actor.UserID.String()))

	s.publishEvents(ctx, inv)
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// RecordPayment records money received against an invoice. The invoice row is
// locked for the transaction and saved under the version check, so concurrent
// payments cannot push the balance below zero.
func (s *InvoiceService) RecordPayment(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	var (
		inv     *invoice.Invoice
		payment *invoice.InvoicePayment
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, tenantID, id)
		if err != nil {
			return notFoundAs(err)
		}

		payment, err = invoice.NewInvoicePayment(inv, req.PaymentAmount, req.PaymentMethod, req.PaymentDate,
			req.ReferenceNumber, req.Notes, actor.UserID)
		if err != nil {
			return err
		}
		if err := inv.ApplyPayment(req.PaymentAmount); err != nil {
			return err
		}

		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		return repos.InvoiceRepo().SaveWithLock(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice payment recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", id.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.PaymentAmount.StringFixed(2)),
		zap.String("method", payment.PaymentMethod.String()),
		zap.String("balance", inv.Balance.StringFixed(2)))

	s.publishEvents(ctx, inv)
	return &RecordPaymentResponse{
		Payment: ToPaymentResponse(payment),
		Invoice: toInvoiceSummary(inv),
	}, nil
}

// Reconcile marks an approved or cleared invoice as reconciled
func (s *InvoiceService) Reconcile(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID, req ReconcileRequest) (*InvoiceResponse, error) {
	inv, err := s.mutate(ctx, tenantID, id, func(inv *invoice.Invoice) error {
		return inv.Reconcile(actor.UserID, req.Notes)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice reconciled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", id.String()),
		zap.String("reconciled_by", actor.UserID.String()))

	s.publishEvents(ctx, inv)
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// DeleteInvoice removes a pending invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) error {
	var inv *invoice.Invoice

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, tenantID, id)
		if err != nil {
			return notFoundAs(err)
		}
		if !inv.CanDelete() {
			return shared.NewDomainError("INVOICE_NOT_DELETABLE", "Only pending invoices can be deleted")
		}
		return repos.InvoiceRepo().DeleteForTenant(ctx, tenantID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Invoice deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", id.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("deleted_by", actor.UserID.String()))

	inv.ClearDomainEvents()
	inv.AddDomainEvent(invoice.NewInvoiceDeletedEvent(inv))
	s.publishEvents(ctx, inv)
	return nil
}

// mutate loads an invoice under lock, applies change, and saves it with the version check
func (s *InvoiceService) mutate(ctx context.Context, tenantID, id uuid.UUID, change func(inv *invoice.Invoice) error) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, tenantID, id)
		if err != nil {
			return notFoundAs(err)
		}
		if err := change(inv); err != nil {
			return err
		}
		return repos.InvoiceRepo().SaveWithLock(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, inv *invoice.Invoice) {
	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err))
	}
}

func notFoundAs(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return errInvoiceNotFound
	}
	return err
}
