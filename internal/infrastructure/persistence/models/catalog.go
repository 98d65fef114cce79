package models

import (
	"github.com/distributor/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
// The migration scopes the sku unique index to the tenant.
type ProductModel struct {
	TenantAggregateModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	SKU         string          `gorm:"column:sku;type:varchar(50);not null;uniqueIndex"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Description string          `gorm:"type:text"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(500)"`
	IsActive    bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		SKU:                 m.SKU,
		Category:            m.Category,
		Description:         m.Description,
		UnitPrice:           m.UnitPrice,
		ImageURL:            m.ImageURL,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Category = p.Category
	m.Description = p.Description
	m.UnitPrice = p.UnitPrice
	m.ImageURL = p.ImageURL
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
