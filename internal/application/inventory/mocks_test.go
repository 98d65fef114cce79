package inventory

import (
	"context"
	"time"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStoreRepository is a mock implementation of inventory.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Store, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.StoreFilter) ([]inventory.Store, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Store), args.Error(1)
}

func (m *MockStoreRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.StoreFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *inventory.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) SaveWithLock(ctx context.Context, s *inventory.Store) error {
	return m.Called(ctx, s).Error(0)
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

// MockStockTransactionRepository is a mock implementation of inventory.StockTransactionRepository
type MockStockTransactionRepository struct {
	mock.Mock
}

func (m *MockStockTransactionRepository) Create(ctx context.Context, tx *inventory.StockTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockStockTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.StockTransactionFilter) ([]inventory.StockTransaction, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockTransaction), args.Error(1)
}

// MockTransferRepository is a mock implementation of inventory.TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryTransfer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryTransfer), args.Error(1)
}

func (m *MockTransferRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryTransfer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryTransfer), args.Error(1)
}

func (m *MockTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.TransferFilter) ([]inventory.InventoryTransfer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryTransfer), args.Error(1)
}

func (m *MockTransferRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.TransferFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransferRepository) Save(ctx context.Context, t *inventory.InventoryTransfer) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTransferRepository) SaveWithLock(ctx context.Context, t *inventory.InventoryTransfer) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTransferRepository) GenerateTransferNumber(ctx context.Context, tenantID uuid.UUID, at time.Time) (string, error) {
	args := m.Called(ctx, tenantID, at)
	return args.String(0), args.Error(1)
}

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

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

// countingScope counts the transactions a service opens
type countingScope struct {
	*NoOpTransactionScope
	calls int
}

func (s *countingScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.calls++
	return s.NoOpTransactionScope.Execute(ctx, fn)
}

var (
	_ inventory.StoreRepository            = (*MockStoreRepository)(nil)
	_ inventory.StoreInventoryRepository   = (*MockInventoryRepository)(nil)
	_ inventory.StockTransactionRepository = (*MockStockTransactionRepository)(nil)
	_ inventory.TransferRepository         = (*MockTransferRepository)(nil)
	_ catalog.ProductRepository            = (*MockProductRepository)(nil)
	_ identity.UserRepository              = (*MockUserRepository)(nil)
)
