package catalog

import (
	"time"

	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/distributor/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to add a product to the catalog
type CreateProductRequest struct {
	Name        string
	SKU         string
	Category    string
	Description string
	UnitPrice   decimal.Decimal
	ImageURL    string
}

// UpdateProductRequest is a partial product update; nil fields are left alone
type UpdateProductRequest struct {
	Name        *string
	SKU         *string
	Category    *string
	Description *string
	UnitPrice   *decimal.Decimal
	ImageURL    *string
	IsActive    *bool
}

// ProductListFilter represents product list query options
type ProductListFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
	IsActive *bool
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
	// Stock is only filled when a single product is fetched
	Stock      []StoreStockResponse `json:"stock,omitempty"`
	TotalStock *int                 `json:"total_stock,omitempty"`
}

// StoreStockResponse is the stock of a product at one store
type StoreStockResponse struct {
	StoreID         uuid.UUID `json:"store_id"`
	QuantityInStock int       `json:"quantity_in_stock"`
	ReorderLevel    int       `json:"reorder_level"`
	IsLowStock      bool      `json:"is_low_stock"`
	LastUpdated     time.Time `json:"last_updated"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

func toStoreStock(inv *inventory.StoreInventory) StoreStockResponse {
	return StoreStockResponse{
		StoreID:         inv.StoreID,
		QuantityInStock: inv.QuantityInStock,
		ReorderLevel:    inv.ReorderLevel,
		IsLowStock:      inv.IsLowStock(),
		LastUpdated:     inv.LastUpdated,
	}
}
