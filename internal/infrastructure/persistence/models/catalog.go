package models

import (
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ResourceModel is the persistence model for the Resource aggregate root.
type ResourceModel struct {
	AggregateModel
	Name  string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_resources_name"`
	State shared.EntityState `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (ResourceModel) TableName() string {
	return "resources"
}

// ToDomain converts the persistence model to a domain Resource.
func (m *ResourceModel) ToDomain() *catalog.Resource {
	return &catalog.Resource{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		State:             m.State,
	}
}

// FromDomain populates the persistence model from a domain Resource.
func (m *ResourceModel) FromDomain(r *catalog.Resource) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Name = r.Name
	m.State = r.State
}

// ResourceModelFromDomain creates a new persistence model from a domain Resource.
func ResourceModelFromDomain(r *catalog.Resource) *ResourceModel {
	m := &ResourceModel{}
	m.FromDomain(r)
	return m
}

// UnitModel is the persistence model for the Unit aggregate root.
type UnitModel struct {
	AggregateModel
	Name  string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_units_name"`
	State shared.EntityState `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit.
func (m *UnitModel) ToDomain() *catalog.Unit {
	return &catalog.Unit{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		State:             m.State,
	}
}

// FromDomain populates the persistence model from a domain Unit.
func (m *UnitModel) FromDomain(u *catalog.Unit) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Name = u.Name
	m.State = u.State
}

// UnitModelFromDomain creates a new persistence model from a domain Unit.
func UnitModelFromDomain(u *catalog.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}
