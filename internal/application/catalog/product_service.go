package catalog

import (
	"context"
	"errors"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService manages the product catalog
type ProductService struct {
	productRepo    catalog.ProductRepository
	inventoryRepo  inventory.StoreInventoryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, inventoryRepo inventory.StoreInventoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

var (
	errProductNotFound = shared.NewDomainError("NOT_FOUND", "Product not found")
	errSKUTaken        = shared.NewDomainError("ALREADY_EXISTS", "A product with this SKU already exists")
)

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, req CreateProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(tenantID, req.Name, req.SKU, req.Category, req.UnitPrice, actor.UserID)
	if err != nil {
		return nil, err
	}
	p.SetDetails(req.Description, req.ImageURL)

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, skuTakenAs(err)
	}

	s.logger.Info("Product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", p.ID.String()),
		zap.String("sku", p.SKU))

	s.publishEvents(ctx, p)
	response := ToProductResponse(p)
	return &response, nil
}

// GetProduct returns a product with its stock at every store that holds it
func (s *ProductService) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	rows, err := s.inventoryRepo.FindAllForTenant(ctx, tenantID, inventory.InventoryFilter{
		Filter:    shared.Filter{Page: 1, PageSize: maxStockRows},
		ProductID: &p.ID,
	})
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(p)
	response.Stock = make([]StoreStockResponse, len(rows))
	total := 0
	for i := range rows {
		response.Stock[i] = toStoreStock(&rows[i])
		total += rows[i].QuantityInStock
	}
	response.TotalStock = &total
	return &response, nil
}

// maxStockRows caps the per-store breakdown of a single product
const maxStockRows = 1000

// ListProducts lists products ordered by name
func (s *ProductService) ListProducts(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	domainFilter := catalog.ProductFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "name",
			OrderDir: "asc",
			Search:   filter.Search,
		},
		Category: filter.Category,
		IsActive: filter.IsActive,
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// UpdateProduct applies a partial update
func (s *ProductService) UpdateProduct(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.mutate(ctx, tenantID, id, func(p *catalog.Product) error {
		return p.Update(catalog.ProductUpdate{
			Name:        req.Name,
			SKU:         req.SKU,
			Category:    req.Category,
			Description: req.Description,
			UnitPrice:   req.UnitPrice,
			ImageURL:    req.ImageURL,
			IsActive:    req.IsActive,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", id.String()),
		zap.String("updated_by", actor.UserID.String()))

	s.publishEvents(ctx, p)
	response := ToProductResponse(p)
	return &response, nil
}

// DeactivateProduct retires a product. Rows are never deleted because the
// stock ledger references them.
func (s *ProductService) DeactivateProduct(ctx context.Context, tenantID uuid.UUID, actor identity.Actor, id uuid.UUID) error {
	p, err := s.mutate(ctx, tenantID, id, func(p *catalog.Product) error { return p.Deactivate() })
	if err != nil {
		return err
	}

	s.logger.Info("Product deactivated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", id.String()),
		zap.String("deactivated_by", actor.UserID.String()))

	s.publishEvents(ctx, p)
	return nil
}

func (s *ProductService) mutate(ctx context.Context, tenantID, id uuid.UUID, change func(p *catalog.Product) error) (*catalog.Product, error) {
	p, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if err := change(p); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, p); err != nil {
		return nil, skuTakenAs(err)
	}
	return p, nil
}

func (s *ProductService) publishEvents(ctx context.Context, p *catalog.Product) {
	events := p.GetDomainEvents()
	p.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("product_id", p.ID.String()),
			zap.Error(err))
	}
}

func notFoundAs(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return errProductNotFound
	}
	return err
}

func skuTakenAs(err error) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return errSKUTaken
	}
	return err
}
