package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
)

func TestGormBalanceRepository_FindForUpdate_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormBalanceRepository(db)

	resourceID, unitID := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"resource_id", "unit_id", "quantity", "updated_at"}).
		AddRow(resourceID.String(), unitID.String(), "12.5", time.Now())
	mock.ExpectQuery(`SELECT \* FROM "balances" WHERE \(?resource_id = \$1 AND unit_id = \$2\)? ORDER BY .* LIMIT \$3 FOR UPDATE`).
		WithArgs(resourceID, unitID, 1).
		WillReturnRows(rows)

	balance, err := repo.FindForUpdate(context.Background(), resourceID, unitID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(decimal.RequireFromString("12.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBalanceRepository_FindForUpdate_Missing(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormBalanceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "balances" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"resource_id", "unit_id", "quantity", "updated_at"}))

	_, err := repo.FindForUpdate(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBalanceRepository_Insert_Upserts(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormBalanceRepository(db)

	balance, err := inventory.NewBalance(uuid.New(), uuid.New(), decimal.NewFromInt(3))
	require.NoError(t, err)
	mock.ExpectExec(`INSERT INTO "balances" .* ON CONFLICT \("resource_id","unit_id"\) DO UPDATE SET "quantity"=balances\.quantity \+ excluded\.quantity`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBalanceRepository_UpdateAndDelete_SQL(t *testing.T) {
	ctx := context.Background()
	resourceID, unitID := uuid.New(), uuid.New()

	t.Run("update touches one row", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBalanceRepository(db)

		mock.ExpectExec(`UPDATE "balances" SET "quantity"=\$1,"updated_at"=\$2 WHERE resource_id = \$3 AND unit_id = \$4`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, &inventory.Balance{ResourceID: resourceID, UnitID: unitID, Quantity: decimal.NewFromInt(5), UpdatedAt: time.Now()})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update of a vanished row", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBalanceRepository(db)

		mock.ExpectExec(`UPDATE "balances"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &inventory.Balance{ResourceID: resourceID, UnitID: unitID, Quantity: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete removes the pair", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBalanceRepository(db)

		mock.ExpectExec(`DELETE FROM "balances" WHERE resource_id = \$1 AND unit_id = \$2`).
			WithArgs(resourceID, unitID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, resourceID, unitID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors are wrapped", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBalanceRepository(db)

		boom := errors.New("connection reset")
		mock.ExpectExec(`DELETE FROM "balances"`).WillReturnError(boom)

		err := repo.Delete(ctx, resourceID, unitID)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "delete balance")
	})
}

func TestGormBalanceRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBalanceRepository(newTestDatabase(t).DB)

	r1, r2, u1 := uuid.New(), uuid.New(), uuid.New()
	b1, err := inventory.NewBalance(r1, u1, decimal.NewFromInt(10))
	require.NoError(t, err)
	b2, err := inventory.NewBalance(r2, u1, decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, b1))
	require.NoError(t, repo.Insert(ctx, b2))

	// a second first insert for the pair lands on the existing row
	late, _ := inventory.NewBalance(r1, u1, decimal.NewFromInt(1))
	require.NoError(t, repo.Insert(ctx, late))

	locked, err := repo.FindForUpdate(ctx, r1, u1)
	require.NoError(t, err)
	require.NoError(t, locked.Apply(decimal.NewFromInt(-4)))
	require.NoError(t, repo.Update(ctx, locked))

	rows, err := repo.Find(ctx, inventory.BalanceFilter{ResourceIDs: []uuid.UUID{r1}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(7)), "got %s", rows[0].Quantity)

	rows, err = repo.Find(ctx, inventory.BalanceFilter{UnitIDs: []uuid.UUID{u1}})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	used, err := repo.ExistsByResource(ctx, r2)
	require.NoError(t, err)
	assert.True(t, used)

	require.NoError(t, repo.Delete(ctx, r2, u1))
	used, err = repo.ExistsByResource(ctx, r2)
	require.NoError(t, err)
	assert.False(t, used)

	used, err = repo.ExistsByUnit(ctx, u1)
	require.NoError(t, err)
	assert.True(t, used)
}
