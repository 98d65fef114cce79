package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		expected string
	}{
		{"empty string returns default", "", "DESC", "DESC"},
		{"empty string returns ASC default", "", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "DESC", "ASC"},
		{"desc lowercase returns DESC", "desc", "ASC", "DESC"},
		{"invalid value returns default", "INVALID", "ASC", "ASC"},
		{"sql injection attempt returns default", "ASC; DROP TABLE debts;--", "DESC", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "DESC", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input, tt.fallback))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", "due_date"},
		{"valid field returns field", "amount", "amount"},
		{"invalid field returns default", "sales_person_id", "due_date"},
		{"sql injection attempt returns default", "amount; DROP TABLE debts;--", "due_date"},
		{"case sensitive", "AMOUNT", "due_date"},
		{"whitespace around valid field returns field", "  status  ", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, DebtSortFields, "due_date"))
		})
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "date DESC", orderClause("", "", InvoiceSortFields, "date", "DESC"))
	assert.Equal(t, "balance ASC", orderClause("balance", "asc", InvoiceSortFields, "date", "DESC"))
	assert.Equal(t, "date DESC", orderClause("notes", "sideways", InvoiceSortFields, "date", "DESC"))
}
