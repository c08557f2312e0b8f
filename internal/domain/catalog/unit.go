package catalog

import (
	"github.com/warehouse/backend/internal/domain/shared"
)

// MaxUnitNameLength bounds Unit.Name
const MaxUnitNameLength = 100

// Unit is a unit of measurement (kg, pcs, m) that balances and document lines are expressed in
type Unit struct {
	shared.BaseAggregateRoot
	Name  string
	State shared.EntityState
}

// NewUnit creates an active unit of measurement
func NewUnit(name string) (*Unit, error) {
	name, err := shared.NormalizeName("Unit name", name, MaxUnitNameLength)
	if err != nil {
		return nil, err
	}
	return &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		State:             shared.EntityStateActive,
	}, nil
}

// Rename changes the unit name
func (u *Unit) Rename(name string) error {
	name, err := shared.NormalizeName("Unit name", name, MaxUnitNameLength)
	if err != nil {
		return err
	}
	u.Name = name
	u.MarkModified()
	return nil
}

// Archive moves the unit out of active use
func (u *Unit) Archive() error {
	if u.State == shared.EntityStateArchived {
		return shared.NewDomainError(shared.CodeInvalidState, "Unit is already archived")
	}
	u.State = shared.EntityStateArchived
	u.MarkModified()
	return nil
}

// Restore returns an archived unit to active use
func (u *Unit) Restore() error {
	if u.State == shared.EntityStateActive {
		return shared.NewDomainError(shared.CodeInvalidState, "Unit is already active")
	}
	u.State = shared.EntityStateActive
	u.MarkModified()
	return nil
}

// IsActive returns true if the unit is not archived
func (u *Unit) IsActive() bool {
	return u.State == shared.EntityStateActive
}
