package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns defaultOrder if the input is empty or not a valid direction.
func ValidateSortOrder(orderDir, defaultOrder string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	default:
		return defaultOrder
	}
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// DebtSortFields contains allowed sort fields for debts
var DebtSortFields = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"due_date":        true,
	"amount":          true,
	"original_amount": true,
	"status":          true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"date":           true,
	"invoice_number": true,
	"amount":         true,
	"balance":        true,
	"status":         true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"sku":        true,
	"category":   true,
	"unit_price": true,
}

// StoreSortFields contains allowed sort fields for stores
var StoreSortFields = map[string]bool{
	"created_at": true,
	"name":       true,
	"location":   true,
}

// InventorySortFields contains allowed sort fields for store inventory
var InventorySortFields = map[string]bool{
	"last_updated":      true,
	"quantity_in_stock": true,
	"reorder_level":     true,
	"created_at":        true,
}

// TransferSortFields contains allowed sort fields for inventory transfers
var TransferSortFields = map[string]bool{
	"requested_date":  true,
	"transfer_number": true,
	"status":          true,
	"quantity":        true,
	"created_at":      true,
}

// orderClause builds a whitelisted ORDER BY expression
func orderClause(field, dir string, allowed map[string]bool, defaultField, defaultDir string) string {
	return ValidateSortField(field, allowed, defaultField) + " " + ValidateSortOrder(dir, defaultDir)
}
