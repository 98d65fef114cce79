package inventory

import (
	"context"
	"errors"

	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreService manages stores
type StoreService struct {
	storeRepo      inventory.StoreRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo inventory.StoreRepository, userRepo identity.UserRepository, logger *zap.Logger) *StoreService {
	return &StoreService{storeRepo: storeRepo, userRepo: userRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *StoreService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

var (
	errStoreNotFound   = shared.NewDomainError("NOT_FOUND", "Store not found")
	errManagerNotFound = shared.NewDomainError("NOT_FOUND", "Manager not found")
	errProductNotFound = shared.NewDomainError("NOT_FOUND", "Product not found")
	errStoreInactive   = shared.NewDomainError("INVALID_STATE", "Store is inactive")
	errProductInactive = shared.NewDomainError("INVALID_STATE", "Product is inactive")
)

// CreateStore opens a store. A named manager must be a user of the tenant.
func (s *StoreService) CreateStore(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, req CreateStoreRequest) (*StoreResponse, error) {
	if err := s.checkManager(ctx, tenantID, req.ManagerID); err != nil {
		return nil, err
	}
	store, err := inventory.NewStore(tenantID, req.Name, req.Location, req.ManagerID, req.PhoneNumber, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info("Store created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("store_id", store.ID.String()),
		zap.String("name", store.Name))

	publish(ctx, s.eventPublisher, s.logger, store)
	response := ToStoreResponse(store)
	return &response, nil
}

// GetStore retrieves a store
func (s *StoreService) GetStore(ctx context.Context, tenantID, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, errStoreNotFound)
	}
	response := ToStoreResponse(store)
	return &response, nil
}

// ListStores lists stores ordered by name
func (s *StoreService) ListStores(ctx context.Context, tenantID uuid.UUID, filter StoreListFilter) ([]StoreResponse, int64, error) {
	domainFilter := inventory.StoreFilter{
		Filter:   pageFilter(filter.Page, filter.PageSize, "name", "asc"),
		IsActive: filter.IsActive,
	}
	domainFilter.Search = filter.Search

	stores, err := s.storeRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.storeRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToStoreResponses(stores), total, nil
}

// UpdateStore applies a partial update
func (s *StoreService) UpdateStore(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	if err := s.checkManager(ctx, tenantID, req.ManagerID); err != nil {
		return nil, err
	}
	store, err := s.mutate(ctx, tenantID, id, func(store *inventory.Store) error {
		return store.Update(inventory.StoreUpdate{
			Name:        req.Name,
			Location:    req.Location,
			ManagerID:   req.ManagerID,
			PhoneNumber: req.PhoneNumber,
			IsActive:    req.IsActive,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Store updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("store_id", id.String()),
		zap.String("updated_by", actor.UserID.String()))

	response := ToStoreResponse(store)
	return &response, nil
}

// DeactivateStore closes a store. Its stock and ledger are kept.
func (s *StoreService) DeactivateStore(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) error {
	if _, err := s.mutate(ctx, tenantID, id, func(store *inventory.Store) error { return store.Deactivate() }); err != nil {
		return err
	}
	s.logger.Info("Store deactivated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("store_id", id.String()),
		zap.String("deactivated_by", actor.UserID.String()))
	return nil
}

func (s *StoreService) mutate(ctx context.Context, tenantID, id uuid.UUID, change func(store *inventory.Store) error) (*inventory.Store, error) {
	store, err := s.storeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, errStoreNotFound)
	}
	if err := change(store); err != nil {
		return nil, err
	}
	if err := s.storeRepo.SaveWithLock(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) checkManager(ctx context.Context, tenantID uuid.UUID, managerID *uuid.UUID) error {
	if managerID == nil {
		return nil
	}
	if _, err := s.userRepo.FindByIDForTenant(ctx, tenantID, *managerID); err != nil {
		return notFoundAs(err, errManagerNotFound)
	}
	return nil
}

func pageFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return shared.Filter{Page: page, PageSize: pageSize, OrderBy: orderBy, OrderDir: orderDir}
}

type eventSource interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// publish drains the events of every source in order and hands them to publisher
func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, sources ...eventSource) {
	var events []shared.DomainEvent
	for _, src := range sources {
		events = append(events, src.GetDomainEvents()...)
		src.ClearDomainEvents()
	}
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err))
	}
}

func notFoundAs(err error, specific *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return specific
	}
	return err
}
