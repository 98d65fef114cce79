package debt

import (
	"sort"
	"time"

	"github.com/distributor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is the part of a payment applied to one installment
type Allocation struct {
	InstallmentID uuid.UUID       `json:"installment_id"`
	Number        int             `json:"installment_number"`
	Amount        decimal.Decimal `json:"amount"`
	FullyPaid     bool            `json:"fully_paid"`
}

// AllocationResult summarises how a payment was spread across installments
type AllocationResult struct {
	Allocations         []Allocation
	TotalAllocated      decimal.Decimal
	Unallocated         decimal.Decimal
	InstallmentsPaid    []uuid.UUID
	InstallmentsPartial []uuid.UUID
}

// WaterfallAllocator applies a payment to the oldest outstanding installments first
type WaterfallAllocator struct{}

// NewWaterfallAllocator creates a waterfall allocator
func NewWaterfallAllocator() *WaterfallAllocator {
	return &WaterfallAllocator{}
}

// Allocate walks pending and overdue installments by ascending due date,
// applying min(remaining, balance) to each until the payment is used up.
// A fully covered installment is marked paid with paidAt; a partially
// covered one keeps its status, so an overdue installment stays overdue.
// Whatever cannot be placed is returned as Unallocated.
func (a *WaterfallAllocator) Allocate(amount decimal.Decimal, installments []*Installment, paidAt time.Time) (*AllocationResult, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be greater than 0")
	}

	result := &AllocationResult{
		Allocations:         make([]Allocation, 0),
		TotalAllocated:      decimal.Zero,
		Unallocated:         amount,
		InstallmentsPaid:    make([]uuid.UUID, 0),
		InstallmentsPartial: make([]uuid.UUID, 0),
	}

	outstanding := make([]*Installment, 0, len(installments))
	for _, inst := range installments {
		if inst != nil && inst.IsOutstanding() {
			outstanding = append(outstanding, inst)
		}
	}
	sort.SliceStable(outstanding, func(i, j int) bool {
		if outstanding[i].DueDate.Equal(outstanding[j].DueDate) {
			return outstanding[i].Number < outstanding[j].Number
		}
		return outstanding[i].DueDate.Before(outstanding[j].DueDate)
	})

	remaining := amount
	for _, inst := range outstanding {
		if remaining.IsZero() {
			break
		}
		if !inst.Balance().IsPositive() {
			continue
		}

		applied := inst.applyPayment(remaining, paidAt)
		remaining = remaining.Sub(applied)

		fullyPaid := inst.Status == InstallmentStatusPaid
		result.Allocations = append(result.Allocations, Allocation{
			InstallmentID: inst.ID,
			Number:        inst.Number,
			Amount:        applied,
			FullyPaid:     fullyPaid,
		})
		result.TotalAllocated = result.TotalAllocated.Add(applied)
		if fullyPaid {
			result.InstallmentsPaid = append(result.InstallmentsPaid, inst.ID)
		} else {
			result.InstallmentsPartial = append(result.InstallmentsPartial, inst.ID)
		}
	}

	result.Unallocated = remaining
	return result, nil
}
