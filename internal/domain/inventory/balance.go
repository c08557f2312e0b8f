package inventory

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// BalanceKey identifies a balance row
type BalanceKey struct {
	ResourceID uuid.UUID
	UnitID     uuid.UUID
}

// Less orders keys by resource then unit, giving a stable row-locking order
func (k BalanceKey) Less(other BalanceKey) bool {
	if c := bytes.Compare(k.ResourceID[:], other.ResourceID[:]); c != 0 {
		return c < 0
	}
	return bytes.Compare(k.UnitID[:], other.UnitID[:]) < 0
}

// String returns the string representation
func (k BalanceKey) String() string {
	return fmt.Sprintf("%s/%s", k.ResourceID, k.UnitID)
}

// Balance is the stock on hand for one (resource, unit) pair.
// Quantity is strictly positive for every persisted row; a row that would
// reach zero is removed instead.
type Balance struct {
	ResourceID uuid.UUID
	UnitID     uuid.UUID
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

// NewBalance creates a balance row holding a positive quantity
func NewBalance(resourceID, unitID uuid.UUID, quantity decimal.Decimal) (*Balance, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Balance quantity must be positive")
	}
	return &Balance{
		ResourceID: resourceID,
		UnitID:     unitID,
		Quantity:   quantity,
		UpdatedAt:  time.Now().UTC(),
	}, nil
}

// Key returns the balance key
func (b *Balance) Key() BalanceKey {
	return BalanceKey{ResourceID: b.ResourceID, UnitID: b.UnitID}
}

// Apply adds delta to the quantity. The balance is left untouched when the
// result would be negative or out of the column range.
func (b *Balance) Apply(delta decimal.Decimal) error {
	next := b.Quantity.Add(delta)
	if next.IsNegative() {
		return insufficientStock(b.Key(), b.Quantity, delta)
	}
	if next.GreaterThanOrEqual(MaxQuantity) {
		return shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Balance of %s would reach %s, the limit is below %s", b.Key(), next, MaxQuantity))
	}
	b.Quantity = next
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// IsEmpty returns true when nothing is left on hand
func (b *Balance) IsEmpty() bool {
	return b.Quantity.IsZero()
}

func insufficientStock(key BalanceKey, available, delta decimal.Decimal) *shared.DomainError {
	return shared.NewDomainError(shared.CodeInsufficientStock, fmt.Sprintf(
		"Insufficient stock for resource %s in unit %s: available %s, requested %s",
		key.ResourceID, key.UnitID, available.String(), delta.Neg().String(),
	))
}
