package catalog

import (
	"regexp"
	"strings"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{0,49}$`)

// Product is an item the distributor stocks and sells.
// SKU is unique per tenant and kept upper case.
type Product struct {
	shared.TenantAggregateRoot
	Name        string
	SKU         string
	Category    string
	Description string
	UnitPrice   decimal.Decimal
	ImageURL    string
	IsActive    bool
}

// NewProduct creates an active product
func NewProduct(tenantID uuid.UUID, name, sku, category string, unitPrice decimal.Decimal, createdBy uuid.UUID) (*Product, error) {
	p := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		IsActive:            true,
	}
	if err := p.setName(name); err != nil {
		return nil, err
	}
	if err := p.setSKU(sku); err != nil {
		return nil, err
	}
	if err := p.setCategory(category); err != nil {
		return nil, err
	}
	if err := p.setUnitPrice(unitPrice); err != nil {
		return nil, err
	}

	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name must be 1-200 characters")
	}
	p.Name = name
	return nil
}

func (p *Product) setSKU(sku string) error {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if !skuPattern.MatchString(sku) {
		return shared.NewDomainError("INVALID_SKU", "SKU must be 1-50 letters, digits, dashes or underscores")
	}
	p.SKU = sku
	return nil
}

func (p *Product) setCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" || len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category must be 1-100 characters")
	}
	p.Category = category
	return nil
}

func (p *Product) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !price.Equal(price.Round(shared.MoneyScale)) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot have more than 2 decimal places")
	}
	p.UnitPrice = price
	return nil
}

// SetDetails replaces the free-text description and image
func (p *Product) SetDetails(description, imageURL string) {
	p.Description = strings.TrimSpace(description)
	p.ImageURL = strings.TrimSpace(imageURL)
}

// ProductUpdate carries the fields of a partial product update; nil leaves a field unchanged
type ProductUpdate struct {
	Name        *string
	SKU         *string
	Category    *string
	Description *string
	UnitPrice   *decimal.Decimal
	ImageURL    *string
	IsActive    *bool
}

// Update applies a partial update. Nothing changes if any field is invalid.
func (p *Product) Update(u ProductUpdate) error {
	next := *p
	if u.Name != nil {
		if err := next.setName(*u.Name); err != nil {
			return err
		}
	}
	if u.SKU != nil {
		if err := next.setSKU(*u.SKU); err != nil {
			return err
		}
	}
	if u.Category != nil {
		if err := next.setCategory(*u.Category); err != nil {
			return err
		}
	}
	if u.UnitPrice != nil {
		if err := next.setUnitPrice(*u.UnitPrice); err != nil {
			return err
		}
	}
	if u.Description != nil {
		next.Description = strings.TrimSpace(*u.Description)
	}
	if u.ImageURL != nil {
		next.ImageURL = strings.TrimSpace(*u.ImageURL)
	}
	if u.IsActive != nil {
		next.IsActive = *u.IsActive
	}

	p.Name, p.SKU, p.Category = next.Name, next.SKU, next.Category
	p.Description, p.UnitPrice, p.ImageURL = next.Description, next.UnitPrice, next.ImageURL
	p.IsActive = next.IsActive
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// Deactivate hides the product from new stock movements. Stock already held is kept.
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}
