package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// UnitUsageChecker reports whether the ledger still references a unit
type UnitUsageChecker interface {
	CanDeleteUnit(ctx context.Context, unitID uuid.UUID) (bool, error)
}

// UnitService handles unit master data
type UnitService struct {
	unitRepo catalog.UnitRepository
	usage    UnitUsageChecker
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitRepository, usage UnitUsageChecker) *UnitService {
	return &UnitService{
		unitRepo: unitRepo,
		usage:    usage,
	}
}

func (s *UnitService) ensureNameFree(ctx context.Context, name string, excludeID uuid.UUID) error {
	exists, err := s.unitRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Unit with name '%s' already exists", name))
	}
	return nil
}

// Create creates a new active unit
func (s *UnitService) Create(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	unit, err := catalog.NewUnit(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, unit.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// GetByID retrieves a unit by ID
func (s *UnitService) GetByID(ctx context.Context, id uuid.UUID) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// List returns all units
func (s *UnitService) List(ctx context.Context) ([]UnitResponse, error) {
	units, err := s.unitRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUnitResponses(units), nil
}

// ListActive returns units that are not archived
func (s *UnitService) ListActive(ctx context.Context) ([]UnitResponse, error) {
	units, err := s.unitRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToUnitResponses(units), nil
}

// Update renames a unit
func (s *UnitService) Update(ctx context.Context, id uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := unit.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, unit.Name, unit.ID); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// Archive moves a unit out of active use
func (s *UnitService) Archive(ctx context.Context, id uuid.UUID) (*UnitResponse, error) {
	return s.transition(ctx, id, (*catalog.Unit).Archive)
}

// Restore returns an archived unit to active use
func (s *UnitService) Restore(ctx context.Context, id uuid.UUID) (*UnitResponse, error) {
	return s.transition(ctx, id, (*catalog.Unit).Restore)
}

func (s *UnitService) transition(ctx context.Context, id uuid.UUID, apply func(*catalog.Unit) error) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(unit); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// Delete removes a unit nothing in the ledger references
func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	free, err := s.usage.CanDeleteUnit(ctx, unit.ID)
	if err != nil {
		return err
	}
	if !free {
		return shared.NewDomainError(shared.CodeInUse, "Unit is used in balances or documents and cannot be deleted; archive it instead")
	}
	return s.unitRepo.Delete(ctx, unit.ID)
}
