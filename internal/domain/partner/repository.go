package partner

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindAll returns all clients ordered by name
	FindAll(ctx context.Context) ([]Client, error)

	// FindActive returns clients that are not archived
	FindActive(ctx context.Context) ([]Client, error)

	// ExistsByID checks whether a client exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByName checks whether another client already uses the name.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete removes a client
	Delete(ctx context.Context, id uuid.UUID) error
}
