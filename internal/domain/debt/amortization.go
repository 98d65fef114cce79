package debt

import (
	"fmt"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxScheduleInstallments bounds the size of a generated schedule
const MaxScheduleInstallments = 3660

// Frequency is the spacing between installment due dates
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid checks if the frequency is supported
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// String returns the string representation of Frequency
func (f Frequency) String() string {
	return string(f)
}

// DueDate returns the due date of the installment that is n periods after anchor.
// Monthly steps are counted from the anchor and clamped to the last day of the
// target month, so Jan 31 yields Feb 29 (leap year), Mar 31, Apr 30.
func (f Frequency) DueDate(anchor time.Time, n int) time.Time {
	switch f {
	case FrequencyDaily:
		return anchor.AddDate(0, 0, n)
	case FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*n)
	case FrequencyMonthly:
		return addMonthsClamped(anchor, n)
	}
	return anchor
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(firstOfTarget); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// ScheduleParams are the inputs of the amortization generator
type ScheduleParams struct {
	Principal         decimal.Decimal
	InstallmentAmount decimal.Decimal
	Frequency         Frequency
	StartDate         time.Time
	EndDate           time.Time
}

// ScheduledInstallment describes one generated installment
type ScheduledInstallment struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
}

// GenerateSchedule splits principal into installments of at most
// InstallmentAmount, the first due on StartDate and each following one a period
// later, until the principal is covered or the next due date passes EndDate.
//
// A non-positive installment amount or a start after the end yields an empty
// schedule; callers must reject that rather than persist an empty plan.
func GenerateSchedule(p ScheduleParams) ([]ScheduledInstallment, error) {
	if !p.Principal.IsPositive() {
		return nil, shared.NewDomainError("INVALID_SCHEDULE_PARAMETERS", "Principal must be greater than 0")
	}
	if !p.Frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", "Frequency must be one of daily, weekly, monthly")
	}

	start := shared.DateOnly(p.StartDate)
	end := shared.DateOnly(p.EndDate)
	schedule := make([]ScheduledInstallment, 0)
	if !p.InstallmentAmount.IsPositive() || start.After(end) {
		return schedule, nil
	}

	remaining := p.Principal
	for n := 0; remaining.IsPositive(); n++ {
		due := p.Frequency.DueDate(start, n)
		if due.After(end) {
			break
		}
		if n >= MaxScheduleInstallments {
			return nil, shared.NewDomainError("INVALID_SCHEDULE_PARAMETERS",
				fmt.Sprintf("Schedule cannot exceed %d installments", MaxScheduleInstallments))
		}

		amount := decimal.Min(p.InstallmentAmount, remaining)
		schedule = append(schedule, ScheduledInstallment{
			Number:  n + 1,
			DueDate: due,
			Amount:  amount,
		})
		remaining = remaining.Sub(amount)
	}

	return schedule, nil
}
