package shared

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places stored for every amount
const MoneyScale = 2

// ValidateAmount checks that a monetary amount is positive and fits the storage scale
func ValidateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewDomainError("INVALID_AMOUNT", fmt.Sprintf("%s must be greater than 0", field))
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return NewDomainError("INVALID_AMOUNT", fmt.Sprintf("%s cannot have more than %d decimal places", field, MoneyScale))
	}
	return nil
}

// DateOnly truncates t to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
