package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// AdjustPolicy configures how the adjuster treats a missing balance row
type AdjustPolicy struct {
	// RejectMissingBalance makes a negative delta against a pair without a row
	// fail with InsufficientStock. When false the adjustment is skipped.
	RejectMissingBalance bool
}

// DefaultAdjustPolicy returns the strict policy
func DefaultAdjustPolicy() AdjustPolicy {
	return AdjustPolicy{RejectMissingBalance: true}
}

// AdjustOutcome describes what an adjustment did to the balance row
type AdjustOutcome string

const (
	AdjustOutcomeCreated AdjustOutcome = "created"
	AdjustOutcomeUpdated AdjustOutcome = "updated"
	AdjustOutcomeRemoved AdjustOutcome = "removed"
	AdjustOutcomeSkipped AdjustOutcome = "skipped"
)

// Adjustment is the record of one applied delta
type Adjustment struct {
	Key     BalanceKey
	Delta   decimal.Decimal
	Before  decimal.Decimal
	After   decimal.Decimal
	Outcome AdjustOutcome
}

// Direction is the sign applied to line quantities
type Direction int

const (
	// Inbound adds line quantities to the balance
	Inbound Direction = 1
	// Outbound subtracts line quantities from the balance
	Outbound Direction = -1
)

// String returns the string representation
func (d Direction) String() string {
	if d == Outbound {
		return "outbound"
	}
	return "inbound"
}

// BalanceAdjuster applies signed deltas to balance rows.
// It holds no state between calls; isolation comes from the repository's
// transaction, so it must only be used with repositories bound to one.
type BalanceAdjuster struct {
	policy AdjustPolicy
}

// NewBalanceAdjuster creates a BalanceAdjuster with the given policy
func NewBalanceAdjuster(policy AdjustPolicy) *BalanceAdjuster {
	return &BalanceAdjuster{policy: policy}
}

// Policy returns the configured policy
func (a *BalanceAdjuster) Policy() AdjustPolicy {
	return a.policy
}

// Adjust adds delta to the (resourceID, unitID) row.
// A missing row is created for a positive delta. A result of zero removes the
// row. A negative result fails with InsufficientStock and writes nothing.
func (a *BalanceAdjuster) Adjust(ctx context.Context, balances BalanceRepository, resourceID, unitID uuid.UUID, delta decimal.Decimal) (Adjustment, error) {
	key := BalanceKey{ResourceID: resourceID, UnitID: unitID}
	adj := Adjustment{Key: key, Delta: delta, Before: decimal.Zero, After: decimal.Zero}

	balance, err := balances.FindForUpdate(ctx, resourceID, unitID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return adj, err
	}

	if balance == nil {
		switch {
		case delta.IsPositive():
			created, err := NewBalance(resourceID, unitID, delta)
			if err != nil {
				return adj, err
			}
			if err := balances.Insert(ctx, created); err != nil {
				return adj, err
			}
			adj.After = delta
			adj.Outcome = AdjustOutcomeCreated
			return adj, nil
		case delta.IsZero() || !a.policy.RejectMissingBalance:
			adj.Outcome = AdjustOutcomeSkipped
			return adj, nil
		default:
			return adj, insufficientStock(key, decimal.Zero, delta)
		}
	}

	adj.Before = balance.Quantity
	if delta.IsZero() {
		adj.After = balance.Quantity
		adj.Outcome = AdjustOutcomeSkipped
		return adj, nil
	}
	if err := balance.Apply(delta); err != nil {
		return adj, err
	}
	adj.After = balance.Quantity

	if balance.IsEmpty() {
		if err := balances.Delete(ctx, resourceID, unitID); err != nil {
			return adj, err
		}
		adj.Outcome = AdjustOutcomeRemoved
		return adj, nil
	}
	if err := balances.Update(ctx, balance); err != nil {
		return adj, err
	}
	adj.Outcome = AdjustOutcomeUpdated
	return adj, nil
}

// ApplyLines adjusts the balance once per line, adding or subtracting the line
// quantity according to direction. Lines are applied in balance-key order so
// concurrent documents lock shared rows in the same sequence. The first
// failure stops the sequence; the enclosing transaction must be rolled back.
func (a *BalanceAdjuster) ApplyLines(ctx context.Context, balances BalanceRepository, lines []DocumentLine, direction Direction) ([]Adjustment, error) {
	ordered := cloneLines(lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Key().Less(ordered[j].Key())
	})

	adjustments := make([]Adjustment, 0, len(ordered))
	for _, line := range ordered {
		delta := line.Quantity
		if direction == Outbound {
			delta = delta.Neg()
		}
		adj, err := a.Adjust(ctx, balances, line.ResourceID, line.UnitID, delta)
		if err != nil {
			return adjustments, err
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, nil
}
