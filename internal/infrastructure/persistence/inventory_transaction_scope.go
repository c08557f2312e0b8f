package persistence

import (
	"context"

	appinv "github.com/warehouse/backend/internal/application/inventory"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// The transaction is rolled back when fn returns an error and committed otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) BalanceRepo() inventory.BalanceRepository {
	return NewGormBalanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) ReceiptRepo() inventory.ReceiptRepository {
	return NewGormReceiptRepository(r.tx)
}

func (r *gormTransactionalRepositories) ShipmentRepo() inventory.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormTransactionalRepositories) ResourceRepo() catalog.ResourceRepository {
	return NewGormResourceRepository(r.tx)
}

func (r *gormTransactionalRepositories) UnitRepo() catalog.UnitRepository {
	return NewGormUnitRepository(r.tx)
}

var (
	_ appinv.TransactionScope          = (*GormTransactionScope)(nil)
	_ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
