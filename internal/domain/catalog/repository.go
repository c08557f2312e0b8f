package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ResourceRepository defines the interface for resource persistence
type ResourceRepository interface {
	// FindByID finds a resource by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Resource, error)

	// FindAll returns all resources ordered by name
	FindAll(ctx context.Context) ([]Resource, error)

	// FindActive returns resources that are not archived
	FindActive(ctx context.Context) ([]Resource, error)

	// ExistsByID checks whether a resource exists, archived or not
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByName checks whether another resource already uses the name.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a resource
	Save(ctx context.Context, resource *Resource) error

	// Delete removes a resource
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository defines the interface for unit of measurement persistence
type UnitRepository interface {
	// FindByID finds a unit by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindAll returns all units ordered by name
	FindAll(ctx context.Context) ([]Unit, error)

	// FindActive returns units that are not archived
	FindActive(ctx context.Context) ([]Unit, error)

	// ExistsByID checks whether a unit exists, archived or not
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByName checks whether another unit already uses the name.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *Unit) error

	// Delete removes a unit
	Delete(ctx context.Context, id uuid.UUID) error
}
