package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransferStatus is the lifecycle status of an inter-store transfer
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusInTransit TransferStatus = "in_transit"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// IsValid checks if the status is a valid TransferStatus
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusInTransit, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of TransferStatus
func (s TransferStatus) String() string {
	return string(s)
}

const transferNumberPrefix = "TRF-"

var transferNumberPattern = regexp.MustCompile(`^TRF-\d{6}-\d{4}$`)

// TransferNumberPrefix returns the "TRF-YYYYMM" prefix of at's month
func TransferNumberPrefix(at time.Time) string {
	return fmt.Sprintf("%s%04d%02d", transferNumberPrefix, at.Year(), int(at.Month()))
}

// FormatTransferNumber builds TRF-YYYYMM-NNNN
func FormatTransferNumber(at time.Time, sequence int) string {
	return fmt.Sprintf("%s-%04d", TransferNumberPrefix(at), sequence)
}

// ParseTransferSequence extracts the trailing sequence of a transfer number
func ParseTransferSequence(number string) (int, bool) {
	if !transferNumberPattern.MatchString(number) {
		return 0, false
	}
	seq, err := strconv.Atoi(number[strings.LastIndex(number, "-")+1:])
	if err != nil {
		return 0, false
	}
	return seq, true
}

// InventoryTransfer moves a quantity of one product between two stores.
// pending -> in_transit -> completed; anything short of completed may be cancelled.
type InventoryTransfer struct {
	shared.TenantAggregateRoot
	TransferNumber string
	FromStoreID    uuid.UUID
	ToStoreID      uuid.UUID
	ProductID      uuid.UUID
	Quantity       int
	Status         TransferStatus
	RequestedBy    uuid.UUID
	ApprovedBy     *uuid.UUID
	CompletedBy    *uuid.UUID
	RequestedDate  time.Time
	ApprovedDate   *time.Time
	CompletedDate  *time.Time
	Notes          string
}

// NewInventoryTransfer requests a pending transfer
func NewInventoryTransfer(tenantID uuid.UUID, number string, from, to, productID uuid.UUID, quantity int, notes string, requestedBy uuid.UUID) (*InventoryTransfer, error) {
	if !transferNumberPattern.MatchString(number) {
		return nil, shared.NewDomainError("INVALID_TRANSFER_NUMBER", "Transfer number must match TRF-YYYYMM-NNNN")
	}
	if from == uuid.Nil || to == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Source and destination stores are required")
	}
	if from == to {
		return nil, shared.NewDomainError("SAME_STORE_TRANSFER", "Cannot transfer to the same store")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	t := &InventoryTransfer{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, requestedBy),
		TransferNumber:      number,
		FromStoreID:         from,
		ToStoreID:           to,
		ProductID:           productID,
		Quantity:            quantity,
		Status:              TransferStatusPending,
		RequestedBy:         requestedBy,
		Notes:               strings.TrimSpace(notes),
	}
	t.RequestedDate = t.CreatedAt
	t.AddDomainEvent(NewTransferRequestedEvent(t))
	return t, nil
}

// Approve dispatches a pending transfer
func (t *InventoryTransfer) Approve(by uuid.UUID, at time.Time) error {
	if t.Status != TransferStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending transfers can be approved")
	}
	t.ApprovedBy = &by
	t.ApprovedDate = &at
	t.transition(TransferStatusInTransit)
	return nil
}

// Complete marks an in-transit transfer as received. The caller moves the
// stock in the same transaction.
func (t *InventoryTransfer) Complete(by uuid.UUID, at time.Time) error {
	if t.Status != TransferStatusInTransit {
		return shared.NewDomainError("INVALID_STATE", "Only in-transit transfers can be completed")
	}
	t.CompletedBy = &by
	t.CompletedDate = &at
	t.transition(TransferStatusCompleted)
	return nil
}

// Cancel abandons a transfer that has not been completed
func (t *InventoryTransfer) Cancel() error {
	switch t.Status {
	case TransferStatusCompleted:
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel completed transfer")
	case TransferStatusCancelled:
		return shared.NewDomainError("INVALID_STATE", "Transfer is already cancelled")
	}
	t.transition(TransferStatusCancelled)
	return nil
}

func (t *InventoryTransfer) transition(status TransferStatus) {
	previous := t.Status
	t.Status = status
	t.Touch()
	t.IncrementVersion()
	t.AddDomainEvent(NewTransferStatusChangedEvent(t, previous))
}
