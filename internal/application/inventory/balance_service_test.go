package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared"
)

func TestBalanceService_GetBalance(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	svc := NewBalanceService(f.balances, f.receipts, f.shipments)
	r1, r2, unit := uuid.New(), uuid.New(), uuid.New()
	f.balances.set(r1, unit, 5)
	f.balances.set(r2, unit, 7)

	all, err := svc.GetBalance(ctx, BalanceQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := svc.GetBalance(ctx, BalanceQuery{ResourceIDs: []string{r2.String()}})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, r2, only[0].ResourceID)

	none, err := svc.GetBalance(ctx, BalanceQuery{UnitIDs: []string{uuid.NewString()}})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.GetBalance(ctx, BalanceQuery{UnitIDs: []string{"x"}})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestBalanceService_CanDeleteResource(t *testing.T) {
	ctx := context.Background()

	t.Run("free when nothing references it", func(t *testing.T) {
		f := newTestFixture()
		svc := NewBalanceService(f.balances, f.receipts, f.shipments)
		id := uuid.New()
		f.receipts.On("ExistsLineByResource", mock.Anything, id).Return(false, nil)
		f.shipments.On("ExistsLineByResource", mock.Anything, id).Return(false, nil)

		ok, err := svc.CanDeleteResource(ctx, id)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("held by balance row", func(t *testing.T) {
		f := newTestFixture()
		svc := NewBalanceService(f.balances, f.receipts, f.shipments)
		id := uuid.New()
		f.balances.set(id, uuid.New(), 1)

		ok, err := svc.CanDeleteResource(ctx, id)

		require.NoError(t, err)
		assert.False(t, ok)
		f.receipts.AssertNotCalled(t, "ExistsLineByResource", mock.Anything, mock.Anything)
	})

	t.Run("held by shipment line", func(t *testing.T) {
		f := newTestFixture()
		svc := NewBalanceService(f.balances, f.receipts, f.shipments)
		id := uuid.New()
		f.receipts.On("ExistsLineByResource", mock.Anything, id).Return(false, nil)
		f.shipments.On("ExistsLineByResource", mock.Anything, id).Return(true, nil)

		ok, err := svc.CanDeleteResource(ctx, id)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("propagates errors", func(t *testing.T) {
		f := newTestFixture()
		svc := NewBalanceService(f.balances, f.receipts, f.shipments)
		id := uuid.New()
		f.receipts.On("ExistsLineByResource", mock.Anything, id).Return(false, errors.New("db down"))

		_, err := svc.CanDeleteResource(ctx, id)

		assert.EqualError(t, err, "db down")
	})
}

func TestBalanceService_CanDeleteUnitAndClient(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	svc := NewBalanceService(f.balances, f.receipts, f.shipments)
	unitID, clientID := uuid.New(), uuid.New()

	f.receipts.On("ExistsLineByUnit", mock.Anything, unitID).Return(true, nil)
	f.shipments.On("ExistsByClient", mock.Anything, clientID).Return(false, nil)

	ok, err := svc.CanDeleteUnit(ctx, unitID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanDeleteClient(ctx, clientID)
	require.NoError(t, err)
	assert.True(t, ok)
}
