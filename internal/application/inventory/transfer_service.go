package inventory

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// numberAttempts bounds retries when two transfers race for the same number
const numberAttempts = 3

// TransferService moves stock between stores
type TransferService struct {
	transferRepo   inventory.TransferRepository
	storeRepo      inventory.StoreRepository
	inventoryRepo  inventory.StoreInventoryRepository
	productRepo    catalog.ProductRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewTransferService creates a new TransferService
func NewTransferService(
	transferRepo inventory.TransferRepository,
	storeRepo inventory.StoreRepository,
	inventoryRepo inventory.StoreInventoryRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		transferRepo:  transferRepo,
		storeRepo:     storeRepo,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		txScope:       txScope,
		logger:        logger,
		now:           time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *TransferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

var (
	errTransferNotFound    = shared.NewDomainError("NOT_FOUND", "Transfer not found")
	errSourceNotFound      = shared.NewDomainError("NOT_FOUND", "Source store not found")
	errDestinationNotFound = shared.NewDomainError("NOT_FOUND", "Destination store not found")
	errSourceShort         = shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock in source store")
	errSameStore           = shared.NewDomainError("SAME_STORE_TRANSFER", "Cannot transfer to the same store")
)

// CreateTransfer requests a pending transfer. The source must hold the
// quantity now; stock is not reserved and is checked again on completion.
func (s *TransferService) CreateTransfer(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, req CreateTransferRequest) (*TransferResponse, error) {
	if req.FromStoreID == req.ToStoreID {
		return nil, errSameStore
	}
	if err := checkStore(ctx, s.storeRepo, tenantID, req.FromStoreID, errSourceNotFound); err != nil {
		return nil, err
	}
	if err := checkStore(ctx, s.storeRepo, tenantID, req.ToStoreID, errDestinationNotFound); err != nil {
		return nil, err
	}
	if err := checkProduct(ctx, s.productRepo, tenantID, req.ProductID); err != nil {
		return nil, err
	}

	source, err := s.inventoryRepo.FindByStoreAndProduct(ctx, tenantID, req.FromStoreID, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if req.Quantity > 0 && (source == nil || !source.CanFulfill(req.Quantity)) {
		return nil, errSourceShort
	}

	var t *inventory.InventoryTransfer
	for attempt := 1; ; attempt++ {
		number, err := s.transferRepo.GenerateTransferNumber(ctx, tenantID, s.now())
		if err != nil {
			return nil, err
		}
		t, err = inventory.NewInventoryTransfer(tenantID, number, req.FromStoreID, req.ToStoreID, req.ProductID, req.Quantity, req.Notes, actor.UserID)
		if err != nil {
			return nil, err
		}

		err = s.transferRepo.Save(ctx, t)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt == numberAttempts {
			return nil, err
		}
		s.logger.Warn("Transfer number taken, retrying",
			zap.String("transfer_number", number),
			zap.Int("attempt", attempt))
	}

	s.logger.Info("Transfer requested",
		zap.String("tenant_id", tenantID.String()),
		zap.String("transfer_id", t.ID.String()),
		zap.String("transfer_number", t.TransferNumber),
		zap.Int("quantity", t.Quantity))

	publish(ctx, s.eventPublisher, s.logger, t)
	response := ToTransferResponse(t)
	return &response, nil
}

// GetTransfer retrieves a transfer
func (s *TransferService) GetTransfer(ctx context.Context, tenantID, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, errTransferNotFound)
	}
	response := ToTransferResponse(t)
	return &response, nil
}

// ListTransfers lists transfers, newest request first
func (s *TransferService) ListTransfers(ctx context.Context, tenantID uuid.UUID, filter TransferListFilter) ([]TransferResponse, int64, error) {
	domainFilter := inventory.TransferFilter{
		Filter:      pageFilter(filter.Page, filter.PageSize, "requested_date", "desc"),
		Status:      filter.Status,
		FromStoreID: filter.FromStoreID,
		ToStoreID:   filter.ToStoreID,
		ProductID:   filter.ProductID,
	}
	transfers, err := s.transferRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transferRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTransferResponses(transfers), total, nil
}

// ApproveTransfer dispatches a pending transfer
func (s *TransferService) ApproveTransfer(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.mutate(ctx, tenantID, id, func(t *inventory.InventoryTransfer) error {
		return t.Approve(actor.UserID, s.now())
	})
	if err != nil {
		return nil, err
	}
	s.logTransition(tenantID, actor, t)
	publish(ctx, s.eventPublisher, s.logger, t)
	response := ToTransferResponse(t)
	return &response, nil
}

// CancelTransfer abandons a transfer that has not been completed
func (s *TransferService) CancelTransfer(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.mutate(ctx, tenantID, id, func(t *inventory.InventoryTransfer) error { return t.Cancel() })
	if err != nil {
		return nil, err
	}
	s.logTransition(tenantID, actor, t)
	publish(ctx, s.eventPublisher, s.logger, t)
	response := ToTransferResponse(t)
	return &response, nil
}

// CompleteTransfer receives an in-transit transfer. In one transaction the
// transfer and both inventory rows are locked, stock leaves the source and
// arrives at the destination, and two ledger entries are written. Rows are
// locked in store ID order so opposing transfers cannot deadlock.
func (s *TransferService) CompleteTransfer(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) (*TransferResponse, error) {
	var (
		t        *inventory.InventoryTransfer
		out, in  *stockMove
		received = s.now()
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		t, err = repos.TransferRepo().FindByIDForUpdate(ctx, tenantID, id)
		if err != nil {
			return notFoundAs(err, errTransferNotFound)
		}
		if err := t.Complete(actor.UserID, received); err != nil {
			return err
		}

		source, destination, err := lockPair(ctx, repos.InventoryRepo(), tenantID, t.FromStoreID, t.ToStoreID, t.ProductID)
		if err != nil {
			return err
		}

		movement := inventory.Movement{
			Quantity: t.Quantity,
			Source:   inventory.SourceTransfer,
			SourceID: &t.ID,
			Notes:    t.TransferNumber,
			By:       actor.UserID,
			At:       received,
		}
		movement.Type = inventory.MovementOut
		if out, err = source.apply(ctx, repos, movement); err != nil {
			if errors.Is(err, errSourceShort) {
				return errSourceShort
			}
			return err
		}
		movement.Type = inventory.MovementIn
		if in, err = destination.apply(ctx, repos, movement); err != nil {
			return err
		}
		return repos.TransferRepo().SaveWithLock(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transfer completed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("transfer_id", t.ID.String()),
		zap.String("transfer_number", t.TransferNumber),
		zap.Int("quantity", t.Quantity),
		zap.Int("source_stock", out.row.QuantityInStock),
		zap.Int("destination_stock", in.row.QuantityInStock),
		zap.String("completed_by", actor.UserID.String()))

	publish(ctx, s.eventPublisher, s.logger, t, out.row, in.row)
	response := ToTransferResponse(t)
	return &response, nil
}

// lockPair locks the source and destination rows, lower store ID first
func lockPair(ctx context.Context, repo inventory.StoreInventoryRepository, tenantID, from, to, productID uuid.UUID) (*lockedRow, *lockedRow, error) {
	first, second := from, to
	if bytes.Compare(to[:], from[:]) < 0 {
		first, second = to, from
	}
	a, err := lockRow(ctx, repo, tenantID, first, productID)
	if err != nil {
		return nil, nil, err
	}
	b, err := lockRow(ctx, repo, tenantID, second, productID)
	if err != nil {
		return nil, nil, err
	}
	if first == from {
		return a, b, nil
	}
	return b, a, nil
}

func (s *TransferService) mutate(ctx context.Context, tenantID, id uuid.UUID, change func(t *inventory.InventoryTransfer) error) (*inventory.InventoryTransfer, error) {
	var t *inventory.InventoryTransfer
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		t, err = repos.TransferRepo().FindByIDForUpdate(ctx, tenantID, id)
		if err != nil {
			return notFoundAs(err, errTransferNotFound)
		}
		if err := change(t); err != nil {
			return err
		}
		return repos.TransferRepo().SaveWithLock(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransferService) logTransition(tenantID uuid.UUID, actor identity.Actor, t *inventory.InventoryTransfer) {
	s.logger.Info("Transfer status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("transfer_id", t.ID.String()),
		zap.String("status", t.Status.String()),
		zap.String("changed_by", actor.UserID.String()))
}
