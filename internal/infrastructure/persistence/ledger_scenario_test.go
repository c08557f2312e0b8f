package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appinv "github.com/warehouse/backend/internal/application/inventory"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
	"go.uber.org/zap/zaptest"
)

type ledgerHarness struct {
	receipts  *appinv.ReceiptService
	shipments *appinv.ShipmentService
	balances  *appinv.BalanceService

	resourceID uuid.UUID
	unitID     uuid.UUID
	clientID   uuid.UUID
}

func newLedgerHarness(t *testing.T) *ledgerHarness {
	t.Helper()
	return newLedgerHarnessOn(t, newTestDatabase(t))
}

func newLedgerHarnessOn(t *testing.T, db *Database) *ledgerHarness {
	t.Helper()
	ctx := context.Background()
	repos := db.NewRepositories()
	scope := NewGormTransactionScope(db.DB)
	adjuster := inventory.NewBalanceAdjuster(inventory.DefaultAdjustPolicy())
	log := zaptest.NewLogger(t)

	resource, err := catalog.NewResource("Cement")
	require.NoError(t, err)
	require.NoError(t, repos.Resources.Save(ctx, resource))
	unit, err := catalog.NewUnit("bag")
	require.NoError(t, err)
	require.NoError(t, repos.Units.Save(ctx, unit))
	client, err := partner.NewClient("BuildCo", "")
	require.NoError(t, err)
	require.NoError(t, repos.Clients.Save(ctx, client))

	h := &ledgerHarness{
		receipts:   appinv.NewReceiptService(repos.Receipts, scope, adjuster, log),
		shipments:  appinv.NewShipmentService(repos.Shipments, scope, adjuster, log),
		balances:   appinv.NewBalanceService(repos.Balances, repos.Receipts, repos.Shipments),
		resourceID: resource.ID,
		unitID:     unit.ID,
		clientID:   client.ID,
	}
	h.receipts.SetNameDirectory(repos.Names)
	h.shipments.SetNameDirectory(repos.Names)
	h.balances.SetNameDirectory(repos.Names)
	return h
}

func (h *ledgerHarness) lines(qty int64) []appinv.LineRequest {
	return []appinv.LineRequest{{ResourceID: h.resourceID, UnitID: h.unitID, Quantity: decimal.NewFromInt(qty)}}
}

// onHand returns the quantity of the harness pair, zero when no row exists
func (h *ledgerHarness) onHand(t *testing.T) decimal.Decimal {
	t.Helper()
	rows, err := h.balances.GetBalance(context.Background(), appinv.BalanceQuery{})
	require.NoError(t, err)
	for _, row := range rows {
		if row.ResourceID == h.resourceID && row.UnitID == h.unitID {
			return row.Quantity
		}
	}
	return decimal.Zero
}

func assertOnHand(t *testing.T, h *ledgerHarness, want int64) {
	t.Helper()
	got := h.onHand(t)
	assert.True(t, got.Equal(decimal.NewFromInt(want)), "on hand = %s, want %d", got, want)
}

func TestLedger_SignAndRevokeRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newLedgerHarness(t)

	_, err := h.receipts.Create(ctx, appinv.CreateReceiptRequest{Number: "R-1", Date: day(1), Lines: h.lines(1000)})
	require.NoError(t, err)
	assertOnHand(t, h, 1000)

	shipment, err := h.shipments.Create(ctx, appinv.CreateShipmentRequest{Number: "S-1", ClientID: h.clientID, Date: day(2), Lines: h.lines(200)})
	require.NoError(t, err)
	assertOnHand(t, h, 1000)

	signed, err := h.shipments.Sign(ctx, shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "SIGNED", signed.State)
	assertOnHand(t, h, 800)

	revoked, err := h.shipments.Revoke(ctx, shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "REVOKED", revoked.State)
	assertOnHand(t, h, 1000)
}

func TestLedger_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	h := newLedgerHarness(t)

	_, err := h.receipts.Create(ctx, appinv.CreateReceiptRequest{Number: "R-1", Date: day(1), Lines: h.lines(50)})
	require.NoError(t, err)

	shipment, err := h.shipments.Create(ctx, appinv.CreateShipmentRequest{Number: "S-1", ClientID: h.clientID, Date: day(2), Lines: h.lines(100)})
	require.NoError(t, err)

	_, err = h.shipments.Sign(ctx, shipment.ID)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assertOnHand(t, h, 50)

	reloaded, err := h.shipments.GetByID(ctx, shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", reloaded.State)
}

func TestLedger_ReceiptUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	h := newLedgerHarness(t)

	receipt, err := h.receipts.Create(ctx, appinv.CreateReceiptRequest{Number: "R-1", Date: day(1), Lines: h.lines(100)})
	require.NoError(t, err)

	_, err = h.receipts.Update(ctx, receipt.ID, appinv.UpdateReceiptRequest{Number: "R-1", Date: day(1), Lines: h.lines(30)})
	require.NoError(t, err)
	assertOnHand(t, h, 30)

	shipment, err := h.shipments.Create(ctx, appinv.CreateShipmentRequest{Number: "S-1", ClientID: h.clientID, Date: day(2), Lines: h.lines(20)})
	require.NoError(t, err)
	_, err = h.shipments.Sign(ctx, shipment.ID)
	require.NoError(t, err)
	assertOnHand(t, h, 10)

	// removing the receipt would drive the balance negative
	err = h.receipts.Delete(ctx, receipt.ID)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assertOnHand(t, h, 10)

	require.NoError(t, h.shipments.Delete(ctx, shipment.ID))
	assertOnHand(t, h, 30)

	require.NoError(t, h.receipts.Delete(ctx, receipt.ID))
	assertOnHand(t, h, 0)

	rows, err := h.balances.GetBalance(ctx, appinv.BalanceQuery{})
	require.NoError(t, err)
	assert.Empty(t, rows, "a balance that reaches zero is removed")

	free, err := h.balances.CanDeleteResource(ctx, h.resourceID)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestLedger_DuplicateNumbersAndReferences(t *testing.T) {
	ctx := context.Background()
	h := newLedgerHarness(t)

	_, err := h.receipts.Create(ctx, appinv.CreateReceiptRequest{Number: "DOC-1", Date: day(1), Lines: h.lines(5)})
	require.NoError(t, err)
	_, err = h.receipts.Create(ctx, appinv.CreateReceiptRequest{Number: "DOC-1", Date: day(1), Lines: h.lines(5)})
	assert.ErrorIs(t, err, shared.ErrDuplicateNumber)
	assertOnHand(t, h, 5)

	_, err = h.shipments.Create(ctx, appinv.CreateShipmentRequest{Number: "S-1", ClientID: uuid.New(), Date: day(2), Lines: h.lines(1)})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = h.shipments.Create(ctx, appinv.CreateShipmentRequest{Number: "S-1", ClientID: h.clientID, Date: day(2), Lines: h.lines(1)})
	require.NoError(t, err)

	free, err := h.balances.CanDeleteClient(ctx, h.clientID)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = h.balances.CanDeleteUnit(ctx, h.unitID)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestLedger_UnknownLineReferencesLeaveNoBalance(t *testing.T) {
	ctx := context.Background()
	h := newLedgerHarness(t)
	unknown := uuid.New()

	_, err := h.receipts.Create(ctx, appinv.CreateReceiptRequest{
		Number: "R-1",
		Date:   day(1),
		Lines:  []appinv.LineRequest{{ResourceID: unknown, UnitID: h.unitID, Quantity: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	rows, err := h.balances.GetBalance(ctx, appinv.BalanceQuery{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	receipt, err := h.receipts.Create(ctx, appinv.CreateReceiptRequest{Number: "R-1", Date: day(1), Lines: h.lines(5)})
	require.NoError(t, err)
	_, err = h.receipts.Update(ctx, receipt.ID, appinv.UpdateReceiptRequest{
		Number: "R-1",
		Date:   day(1),
		Lines:  []appinv.LineRequest{{ResourceID: h.resourceID, UnitID: unknown, Quantity: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assertOnHand(t, h, 5)

	_, err = h.shipments.Create(ctx, appinv.CreateShipmentRequest{
		Number:   "S-1",
		ClientID: h.clientID,
		Date:     day(2),
		Lines:    []appinv.LineRequest{{ResourceID: unknown, UnitID: h.unitID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
