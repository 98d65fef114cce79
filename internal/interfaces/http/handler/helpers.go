package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	errTooManyDecimals = errors.New("must have at most 2 decimal places")
	errInvalidDate     = errors.New("must be a date in YYYY-MM-DD or RFC3339 format")
)

// toAmount converts a JSON number to a money amount with at most two decimal
// places
func toAmount(f float64) (decimal.Decimal, error) {
	d := decimal.NewFromFloat(f)
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, errTooManyDecimals
	}
	return d, nil
}

// parseDate accepts a calendar date or an RFC3339 timestamp. Calendar dates
// are taken as midnight UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidDate
}

// parseOptionalDate returns the zero time for an empty string
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return parseDate(s)
}

// parseOptionalUUID returns nil for an empty string
func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseOptionalBool returns nil for an empty string
func parseOptionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
