package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productServiceFixture struct {
	svc           *ProductService
	productRepo   *MockProductRepository
	inventoryRepo *MockInventoryRepository
	publisher     *recordingPublisher
	tenantID      uuid.UUID
	boss          identity.Actor
}

func newProductServiceFixture() *productServiceFixture {
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	svc := NewProductService(productRepo, inventoryRepo, zap.NewNop())
	publisher := &recordingPublisher{}
	svc.SetEventPublisher(publisher)
	return &productServiceFixture{
		svc:           svc,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
		tenantID:      uuid.New(),
		boss:          identity.NewActor(uuid.New(), identity.RoleSupervisor),
	}
}

func (f *productServiceFixture) newProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(f.tenantID, "Cooking Oil 1L", "OIL-1L", "Oils", decimal.RequireFromString("4.20"), f.boss.UserID)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func errorCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

func TestCreateProduct(t *testing.T) {
	t.Run("saves and publishes", func(t *testing.T) {
		f := newProductServiceFixture()
		f.productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := f.svc.CreateProduct(context.Background(), f.tenantID, f.boss, CreateProductRequest{
			Name:        "Cooking Oil 1L",
			SKU:         "oil-1l",
			Category:    "Oils",
			Description: " sunflower ",
			UnitPrice:   decimal.RequireFromString("4.20"),
		})
		require.NoError(t, err)
		assert.Equal(t, "OIL-1L", resp.SKU)
		assert.Equal(t, "sunflower", resp.Description)
		assert.True(t, resp.IsActive)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, catalog.EventTypeProductCreated, f.publisher.events[0].EventType())
	})

	t.Run("a taken SKU is a conflict", func(t *testing.T) {
		f := newProductServiceFixture()
		f.productRepo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := f.svc.CreateProduct(context.Background(), f.tenantID, f.boss, CreateProductRequest{
			Name: "Cooking Oil 1L", SKU: "OIL-1L", Category: "Oils", UnitPrice: decimal.NewFromInt(4),
		})
		assert.Equal(t, "ALREADY_EXISTS", errorCode(err))
		assert.Empty(t, f.publisher.events)
	})

	t.Run("invalid input never reaches the repository", func(t *testing.T) {
		f := newProductServiceFixture()
		_, err := f.svc.CreateProduct(context.Background(), f.tenantID, f.boss, CreateProductRequest{
			Name: "Cooking Oil 1L", SKU: "OIL-1L", Category: "Oils", UnitPrice: decimal.NewFromInt(-1),
		})
		assert.Equal(t, "INVALID_PRICE", errorCode(err))
		f.productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestGetProduct_IncludesStockPerStore(t *testing.T) {
	f := newProductServiceFixture()
	p := f.newProduct(t)
	f.productRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, p.ID).Return(p, nil)

	rowAt := func(quantity int) inventory.StoreInventory {
		inv, err := inventory.NewStoreInventory(f.tenantID, uuid.New(), p.ID)
		require.NoError(t, err)
		inv.QuantityInStock = quantity
		return *inv
	}
	rows := []inventory.StoreInventory{rowAt(40), rowAt(4)}
	f.inventoryRepo.On("FindAllForTenant", mock.Anything, f.tenantID, mock.MatchedBy(func(filter inventory.InventoryFilter) bool {
		return filter.ProductID != nil && *filter.ProductID == p.ID
	})).Return(rows, nil)

	resp, err := f.svc.GetProduct(context.Background(), f.tenantID, p.ID)
	require.NoError(t, err)
	require.Len(t, resp.Stock, 2)
	assert.False(t, resp.Stock[0].IsLowStock)
	assert.True(t, resp.Stock[1].IsLowStock)
	require.NotNil(t, resp.TotalStock)
	assert.Equal(t, 44, *resp.TotalStock)
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newProductServiceFixture()
	id := uuid.New()
	f.productRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, id).Return(nil, shared.ErrNotFound)

	_, err := f.svc.GetProduct(context.Background(), f.tenantID, id)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Equal(t, "Product not found", err.(*shared.DomainError).Message)
}

func TestListProducts_DefaultsPagingAndOrder(t *testing.T) {
	f := newProductServiceFixture()
	active := true
	want := catalog.ProductFilter{
		Filter:   shared.Filter{Page: 1, PageSize: 50, OrderBy: "name", OrderDir: "asc", Search: "oil"},
		Category: "Oils",
		IsActive: &active,
	}
	f.productRepo.On("FindAllForTenant", mock.Anything, f.tenantID, want).Return([]catalog.Product{*f.newProduct(t)}, nil)
	f.productRepo.On("CountForTenant", mock.Anything, f.tenantID, want).Return(int64(1), nil)

	items, total, err := f.svc.ListProducts(context.Background(), f.tenantID, ProductListFilter{Search: "oil", Category: "Oils", IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
}

func TestUpdateProduct(t *testing.T) {
	t.Run("applies the change under the version check", func(t *testing.T) {
		f := newProductServiceFixture()
		p := f.newProduct(t)
		f.productRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, p.ID).Return(p, nil)
		f.productRepo.On("SaveWithLock", mock.Anything, p).Return(nil)

		price := decimal.RequireFromString("4.75")
		resp, err := f.svc.UpdateProduct(context.Background(), f.tenantID, f.boss, p.ID, UpdateProductRequest{UnitPrice: &price})
		require.NoError(t, err)
		assert.True(t, price.Equal(resp.UnitPrice))
		assert.Equal(t, 2, resp.Version)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, catalog.EventTypeProductUpdated, f.publisher.events[0].EventType())
	})

	t.Run("a stale version is reported", func(t *testing.T) {
		f := newProductServiceFixture()
		p := f.newProduct(t)
		stale := shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "Product was modified by another request")
		f.productRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, p.ID).Return(p, nil)
		f.productRepo.On("SaveWithLock", mock.Anything, p).Return(stale)

		name := "Cooking Oil 1 Litre"
		_, err := f.svc.UpdateProduct(context.Background(), f.tenantID, f.boss, p.ID, UpdateProductRequest{Name: &name})
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", errorCode(err))
		assert.Empty(t, f.publisher.events)
	})
}

func TestDeactivateProduct(t *testing.T) {
	f := newProductServiceFixture()
	p := f.newProduct(t)
	f.productRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, p.ID).Return(p, nil)
	f.productRepo.On("SaveWithLock", mock.Anything, p).Return(nil)

	require.NoError(t, f.svc.DeactivateProduct(context.Background(), f.tenantID, f.boss, p.ID))
	assert.False(t, p.IsActive)

	err := f.svc.DeactivateProduct(context.Background(), f.tenantID, f.boss, p.ID)
	assert.Equal(t, "INVALID_STATE", errorCode(err))
	f.productRepo.AssertNumberOfCalls(t, "SaveWithLock", 1)
}
