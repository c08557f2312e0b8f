package models

import (
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	AggregateModel
	Name    string             `gorm:"type:varchar(200);not null;uniqueIndex:idx_clients_name"`
	Address string             `gorm:"type:varchar(500);not null;default:''"`
	State   shared.EntityState `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		State:             m.State,
	}
}

// FromDomain populates the persistence model from a domain Client.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Address = c.Address
	m.State = c.State
}

// ClientModelFromDomain creates a new persistence model from a domain Client.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}
