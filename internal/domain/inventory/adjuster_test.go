package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared"
)

// memoryBalances is a map-backed BalanceRepository for adjuster tests
type memoryBalances struct {
	rows      map[BalanceKey]Balance
	lockOrder []BalanceKey
	failOn    string
}

func newMemoryBalances() *memoryBalances {
	return &memoryBalances{rows: make(map[BalanceKey]Balance)}
}

func (m *memoryBalances) seed(resourceID, unitID uuid.UUID, qty int64) {
	key := BalanceKey{ResourceID: resourceID, UnitID: unitID}
	m.rows[key] = Balance{ResourceID: resourceID, UnitID: unitID, Quantity: decimal.NewFromInt(qty)}
}

func (m *memoryBalances) quantity(resourceID, unitID uuid.UUID) (decimal.Decimal, bool) {
	b, ok := m.rows[BalanceKey{ResourceID: resourceID, UnitID: unitID}]
	return b.Quantity, ok
}

func (m *memoryBalances) FindForUpdate(_ context.Context, resourceID, unitID uuid.UUID) (*Balance, error) {
	key := BalanceKey{ResourceID: resourceID, UnitID: unitID}
	m.lockOrder = append(m.lockOrder, key)
	b, ok := m.rows[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &b, nil
}

func (m *memoryBalances) Insert(_ context.Context, b *Balance) error {
	if m.failOn == "insert" {
		return errors.New("insert failed")
	}
	m.rows[b.Key()] = *b
	return nil
}

func (m *memoryBalances) Update(_ context.Context, b *Balance) error {
	m.rows[b.Key()] = *b
	return nil
}

func (m *memoryBalances) Delete(_ context.Context, resourceID, unitID uuid.UUID) error {
	delete(m.rows, BalanceKey{ResourceID: resourceID, UnitID: unitID})
	return nil
}

func (m *memoryBalances) Find(context.Context, BalanceFilter) ([]Balance, error) {
	out := make([]Balance, 0, len(m.rows))
	for _, b := range m.rows {
		out = append(out, b)
	}
	return out, nil
}

func (m *memoryBalances) ExistsByResource(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}
func (m *memoryBalances) ExistsByUnit(context.Context, uuid.UUID) (bool, error) { return false, nil }

func TestBalanceAdjuster_Adjust(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()
	unitID := uuid.New()

	t.Run("creates row for positive delta on missing balance", func(t *testing.T) {
		repo := newMemoryBalances()
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		adj, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.NewFromInt(1000))

		require.NoError(t, err)
		assert.Equal(t, AdjustOutcomeCreated, adj.Outcome)
		qty, ok := repo.quantity(resourceID, unitID)
		require.True(t, ok)
		assert.True(t, qty.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("updates existing row", func(t *testing.T) {
		repo := newMemoryBalances()
		repo.seed(resourceID, unitID, 1000)
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		adj, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.NewFromInt(-200))

		require.NoError(t, err)
		assert.Equal(t, AdjustOutcomeUpdated, adj.Outcome)
		assert.True(t, adj.Before.Equal(decimal.NewFromInt(1000)))
		assert.True(t, adj.After.Equal(decimal.NewFromInt(800)))
		qty, _ := repo.quantity(resourceID, unitID)
		assert.True(t, qty.Equal(decimal.NewFromInt(800)))
	})

	t.Run("removes row that reaches zero", func(t *testing.T) {
		repo := newMemoryBalances()
		repo.seed(resourceID, unitID, 50)
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		adj, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.NewFromInt(-50))

		require.NoError(t, err)
		assert.Equal(t, AdjustOutcomeRemoved, adj.Outcome)
		_, ok := repo.quantity(resourceID, unitID)
		assert.False(t, ok, "zero balance must not persist")
	})

	t.Run("rejects adjustment below zero", func(t *testing.T) {
		repo := newMemoryBalances()
		repo.seed(resourceID, unitID, 50)
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		_, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.NewFromInt(-100))

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		qty, _ := repo.quantity(resourceID, unitID)
		assert.True(t, qty.Equal(decimal.NewFromInt(50)))
	})

	t.Run("strict policy rejects reduction of missing balance", func(t *testing.T) {
		repo := newMemoryBalances()
		a := NewBalanceAdjuster(AdjustPolicy{RejectMissingBalance: true})

		_, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.NewFromInt(-1))

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Empty(t, repo.rows)
	})

	t.Run("lenient policy skips reduction of missing balance", func(t *testing.T) {
		repo := newMemoryBalances()
		a := NewBalanceAdjuster(AdjustPolicy{RejectMissingBalance: false})

		adj, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.NewFromInt(-1))

		require.NoError(t, err)
		assert.Equal(t, AdjustOutcomeSkipped, adj.Outcome)
		assert.Empty(t, repo.rows)
	})

	t.Run("zero delta never fails", func(t *testing.T) {
		repo := newMemoryBalances()
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		adj, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, AdjustOutcomeSkipped, adj.Outcome)
		assert.Empty(t, repo.rows)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := newMemoryBalances()
		repo.failOn = "insert"
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		_, err := a.Adjust(ctx, repo, resourceID, unitID, decimal.NewFromInt(1))

		assert.EqualError(t, err, "insert failed")
	})
}

func TestBalanceAdjuster_ApplyLines(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()
	resA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	resB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	lines := []DocumentLine{
		{ResourceID: resB, UnitID: unitID, Quantity: decimal.NewFromInt(3)},
		{ResourceID: resA, UnitID: unitID, Quantity: decimal.NewFromInt(2)},
	}

	t.Run("inbound adds every line in key order", func(t *testing.T) {
		repo := newMemoryBalances()
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		adjs, err := a.ApplyLines(ctx, repo, lines, Inbound)

		require.NoError(t, err)
		require.Len(t, adjs, 2)
		assert.Equal(t, resA, repo.lockOrder[0].ResourceID)
		assert.Equal(t, resB, repo.lockOrder[1].ResourceID)
		qa, _ := repo.quantity(resA, unitID)
		qb, _ := repo.quantity(resB, unitID)
		assert.True(t, qa.Equal(decimal.NewFromInt(2)))
		assert.True(t, qb.Equal(decimal.NewFromInt(3)))
	})

	t.Run("outbound subtracts and stops at first failure", func(t *testing.T) {
		repo := newMemoryBalances()
		repo.seed(resA, unitID, 10)
		repo.seed(resB, unitID, 1)
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		adjs, err := a.ApplyLines(ctx, repo, lines, Outbound)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Len(t, adjs, 1)
	})

	t.Run("does not reorder the caller's slice", func(t *testing.T) {
		repo := newMemoryBalances()
		a := NewBalanceAdjuster(DefaultAdjustPolicy())

		_, err := a.ApplyLines(ctx, repo, lines, Inbound)

		require.NoError(t, err)
		assert.Equal(t, resB, lines[0].ResourceID)
	})
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "inbound", Inbound.String())
	assert.Equal(t, "outbound", Outbound.String())
}
