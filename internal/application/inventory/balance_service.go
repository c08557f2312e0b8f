package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
)

// BalanceService answers balance snapshots and the reference checks that gate
// master-data deletion
type BalanceService struct {
	balanceRepo  inventory.BalanceRepository
	receiptRepo  inventory.ReceiptRepository
	shipmentRepo inventory.ShipmentRepository
	names        NameDirectory
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	balanceRepo inventory.BalanceRepository,
	receiptRepo inventory.ReceiptRepository,
	shipmentRepo inventory.ShipmentRepository,
) *BalanceService {
	return &BalanceService{
		balanceRepo:  balanceRepo,
		receiptRepo:  receiptRepo,
		shipmentRepo: shipmentRepo,
	}
}

// SetNameDirectory sets the directory balance rows take reference names from
func (s *BalanceService) SetNameDirectory(d NameDirectory) {
	s.names = d
}

// GetBalance returns the balance rows matching the query.
// Pairs without stock have no row and are therefore absent from the result.
func (s *BalanceService) GetBalance(ctx context.Context, query BalanceQuery) ([]BalanceResponse, error) {
	filter, err := query.ToDomain()
	if err != nil {
		return nil, err
	}
	balances, err := s.balanceRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return balanceResponses(ctx, s.names, balances)
}

// CanDeleteResource reports whether no balance row or document line references the resource
func (s *BalanceService) CanDeleteResource(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	return noneExists(
		func() (bool, error) { return s.balanceRepo.ExistsByResource(ctx, resourceID) },
		func() (bool, error) { return s.receiptRepo.ExistsLineByResource(ctx, resourceID) },
		func() (bool, error) { return s.shipmentRepo.ExistsLineByResource(ctx, resourceID) },
	)
}

// CanDeleteUnit reports whether no balance row or document line references the unit
func (s *BalanceService) CanDeleteUnit(ctx context.Context, unitID uuid.UUID) (bool, error) {
	return noneExists(
		func() (bool, error) { return s.balanceRepo.ExistsByUnit(ctx, unitID) },
		func() (bool, error) { return s.receiptRepo.ExistsLineByUnit(ctx, unitID) },
		func() (bool, error) { return s.shipmentRepo.ExistsLineByUnit(ctx, unitID) },
	)
}

// CanDeleteClient reports whether no shipment references the client
func (s *BalanceService) CanDeleteClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	return noneExists(
		func() (bool, error) { return s.shipmentRepo.ExistsByClient(ctx, clientID) },
	)
}

func noneExists(checks ...func() (bool, error)) (bool, error) {
	for _, check := range checks {
		exists, err := check()
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
	}
	return true, nil
}
