package invoice

import (
	"context"

	"github.com/distributor/backend/internal/domain/invoice"
)

// TransactionScope runs invoice operations inside one database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the invoice repositories bound to one transaction
type TransactionalRepositories interface {
	InvoiceRepo() invoice.InvoiceRepository
	PaymentRepo() invoice.InvoicePaymentRepository
}

// NoOpTransactionScope runs the function against plain repositories
type NoOpTransactionScope struct {
	invoiceRepo invoice.InvoiceRepository
	paymentRepo invoice.InvoicePaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(invoiceRepo invoice.InvoiceRepository, paymentRepo invoice.InvoicePaymentRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() invoice.InvoiceRepository {
	return s.invoiceRepo
}

// PaymentRepo returns the invoice payment repository.
func (s *NoOpTransactionScope) PaymentRepo() invoice.InvoicePaymentRepository {
	return s.paymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
