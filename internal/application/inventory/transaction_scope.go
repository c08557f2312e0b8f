package inventory

import (
	"context"

	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the ledger repositories.
// All repository operations performed inside fn belong to one database
// transaction that is committed when fn returns nil and rolled back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction.
//
// Balance rows are only mutated through BalanceRepo by the BalanceAdjuster.
// ResourceRepo, UnitRepo and ClientRepo are read-only here; they exist so the
// workflows can check line and client references under the same snapshot as
// the document write.
type TransactionalRepositories interface {
	BalanceRepo() inventory.BalanceRepository
	ReceiptRepo() inventory.ReceiptRepository
	ShipmentRepo() inventory.ShipmentRepository
	ClientRepo() partner.ClientRepository
	ResourceRepo() catalog.ResourceRepository
	UnitRepo() catalog.UnitRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Useful for tests and for stores that have no transactions.
type NoOpTransactionScope struct {
	balanceRepo  inventory.BalanceRepository
	receiptRepo  inventory.ReceiptRepository
	shipmentRepo inventory.ShipmentRepository
	clientRepo   partner.ClientRepository
	resourceRepo catalog.ResourceRepository
	unitRepo     catalog.UnitRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	balanceRepo inventory.BalanceRepository,
	receiptRepo inventory.ReceiptRepository,
	shipmentRepo inventory.ShipmentRepository,
	clientRepo partner.ClientRepository,
	resourceRepo catalog.ResourceRepository,
	unitRepo catalog.UnitRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		balanceRepo:  balanceRepo,
		receiptRepo:  receiptRepo,
		shipmentRepo: shipmentRepo,
		clientRepo:   clientRepo,
		resourceRepo: resourceRepo,
		unitRepo:     unitRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) BalanceRepo() inventory.BalanceRepository   { return s.balanceRepo }
func (s *NoOpTransactionScope) ReceiptRepo() inventory.ReceiptRepository   { return s.receiptRepo }
func (s *NoOpTransactionScope) ShipmentRepo() inventory.ShipmentRepository { return s.shipmentRepo }
func (s *NoOpTransactionScope) ClientRepo() partner.ClientRepository       { return s.clientRepo }
func (s *NoOpTransactionScope) ResourceRepo() catalog.ResourceRepository   { return s.resourceRepo }
func (s *NoOpTransactionScope) UnitRepo() catalog.UnitRepository           { return s.unitRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
