package catalog

import (
	"context"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter catalog.ProductFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

// MockInventoryRepository is a mock implementation of inventory.StoreInventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByStoreAndProduct(ctx context.Context, tenantID, storeID, productID uuid.UUID) (*inventory.StoreInventory, error) {
	args := m.Called(ctx, tenantID, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StoreInventory), args.Error(1)
}

func (m *MockInventoryRepository) FindByStoreAndProductForUpdate(ctx context.Context, tenantID, storeID, productID uuid.UUID) (*inventory.StoreInventory, error) {
	args := m.Called(ctx, tenantID, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StoreInventory), args.Error(1)
}

func (m *MockInventoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.InventoryFilter) ([]inventory.StoreInventory, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StoreInventory), args.Error(1)
}

func (m *MockInventoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.InventoryFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) Create(ctx context.Context, inv *inventory.StoreInventory) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInventoryRepository) SaveWithLock(ctx context.Context, inv *inventory.StoreInventory) error {
	return m.Called(ctx, inv).Error(0)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

var (
	_ catalog.ProductRepository          = (*MockProductRepository)(nil)
	_ inventory.StoreInventoryRepository = (*MockInventoryRepository)(nil)
)
