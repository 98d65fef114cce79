package catalog

import (
	"errors"
	"testing"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(uuid.New(), "Maize Flour 2kg", " mf-2kg ", "Flour", decimal.RequireFromString("3.50"), uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates an active product with a normalized SKU", func(t *testing.T) {
		p := newTestProduct(t)
		assert.Equal(t, "MF-2KG", p.SKU)
		assert.Equal(t, "Maize Flour 2kg", p.Name)
		assert.True(t, p.IsActive)
		assert.Equal(t, 1, p.Version)
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductCreated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("free products are allowed", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Sample", "SMP-1", "Promo", decimal.Zero, uuid.New())
		assert.NoError(t, err)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tenantID, by := uuid.New(), uuid.New()
		price := decimal.NewFromInt(1)

		_, err := NewProduct(tenantID, " ", "SKU", "Cat", price, by)
		assert.Equal(t, "INVALID_NAME", errorCode(err))
		_, err = NewProduct(tenantID, "Name", "bad sku!", "Cat", price, by)
		assert.Equal(t, "INVALID_SKU", errorCode(err))
		_, err = NewProduct(tenantID, "Name", "SKU", "", price, by)
		assert.Equal(t, "INVALID_CATEGORY", errorCode(err))
		_, err = NewProduct(tenantID, "Name", "SKU", "Cat", decimal.NewFromInt(-1), by)
		assert.Equal(t, "INVALID_PRICE", errorCode(err))
		_, err = NewProduct(tenantID, "Name", "SKU", "Cat", decimal.RequireFromString("1.005"), by)
		assert.Equal(t, "INVALID_PRICE", errorCode(err))
	})
}

func TestProduct_Update(t *testing.T) {
	t.Run("applies only the given fields", func(t *testing.T) {
		p := newTestProduct(t)
		p.ClearDomainEvents()
		price := decimal.RequireFromString("3.75")
		desc := "  Sifted  "

		require.NoError(t, p.Update(ProductUpdate{UnitPrice: &price, Description: &desc}))
		assert.True(t, p.UnitPrice.Equal(price))
		assert.Equal(t, "Sifted", p.Description)
		assert.Equal(t, "MF-2KG", p.SKU)
		assert.Equal(t, 2, p.Version)
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductUpdated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("an invalid field leaves the product unchanged", func(t *testing.T) {
		p := newTestProduct(t)
		name := "Renamed"
		bad := decimal.NewFromInt(-5)

		err := p.Update(ProductUpdate{Name: &name, UnitPrice: &bad})
		assert.Equal(t, "INVALID_PRICE", errorCode(err))
		assert.Equal(t, "Maize Flour 2kg", p.Name)
		assert.Equal(t, 1, p.Version)
	})
}

func TestProduct_Deactivate(t *testing.T) {
	p := newTestProduct(t)
	require.NoError(t, p.Deactivate())
	assert.False(t, p.IsActive)
	assert.Equal(t, "INVALID_STATE", errorCode(p.Deactivate()))
}
