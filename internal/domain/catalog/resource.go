package catalog

import (
	"github.com/warehouse/backend/internal/domain/shared"
)

// MaxResourceNameLength bounds Resource.Name
const MaxResourceNameLength = 100

// Resource is a kind of physical good tracked by the warehouse
type Resource struct {
	shared.BaseAggregateRoot
	Name  string
	State shared.EntityState
}

// NewResource creates an active resource
func NewResource(name string) (*Resource, error) {
	name, err := shared.NormalizeName("Resource name", name, MaxResourceNameLength)
	if err != nil {
		return nil, err
	}
	return &Resource{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		State:             shared.EntityStateActive,
	}, nil
}

// Rename changes the resource name
func (r *Resource) Rename(name string) error {
	name, err := shared.NormalizeName("Resource name", name, MaxResourceNameLength)
	if err != nil {
		return err
	}
	r.Name = name
	r.MarkModified()
	return nil
}

// Archive moves the resource out of active use
func (r *Resource) Archive() error {
	if r.State == shared.EntityStateArchived {
		return shared.NewDomainError(shared.CodeInvalidState, "Resource is already archived")
	}
	r.State = shared.EntityStateArchived
	r.MarkModified()
	return nil
}

// Restore returns an archived resource to active use
func (r *Resource) Restore() error {
	if r.State == shared.EntityStateActive {
		return shared.NewDomainError(shared.CodeInvalidState, "Resource is already active")
	}
	r.State = shared.EntityStateActive
	r.MarkModified()
	return nil
}

// IsActive returns true if the resource is not archived
func (r *Resource) IsActive() bool {
	return r.State == shared.EntityStateActive
}
