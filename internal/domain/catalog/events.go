package catalog

import (
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type names
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
)

const aggregateTypeProduct = "Product"

// ProductCreatedEvent is raised when a product is added to the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewProductCreatedEvent creates a ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, aggregateTypeProduct, p.ID, p.TenantID),
		SKU:             p.SKU,
		Name:            p.Name,
		Category:        p.Category,
		UnitPrice:       p.UnitPrice,
	}
}

// ProductUpdatedEvent is raised after any change to a product, deactivation included
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IsActive  bool            `json:"is_active"`
}

// NewProductUpdatedEvent creates a ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, aggregateTypeProduct, p.ID, p.TenantID),
		SKU:             p.SKU,
		UnitPrice:       p.UnitPrice,
		IsActive:        p.IsActive,
	}
}
