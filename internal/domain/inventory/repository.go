package inventory

import (
	"context"

	"github.com/google/uuid"
)

// BalanceRepository defines the interface for balance persistence.
// Mutating methods are only called by the BalanceAdjuster inside a transaction.
type BalanceRepository interface {
	// FindForUpdate loads a balance row and locks it for the rest of the transaction.
	// Returns shared.ErrNotFound when the pair has no row.
	FindForUpdate(ctx context.Context, resourceID, unitID uuid.UUID) (*Balance, error)

	// Insert creates a new balance row
	Insert(ctx context.Context, balance *Balance) error

	// Update persists the quantity of an existing row
	Update(ctx context.Context, balance *Balance) error

	// Delete removes a row
	Delete(ctx context.Context, resourceID, unitID uuid.UUID) error

	// Find returns balance rows matching the filter
	Find(ctx context.Context, filter BalanceFilter) ([]Balance, error)

	// ExistsByResource checks whether any row references the resource
	ExistsByResource(ctx context.Context, resourceID uuid.UUID) (bool, error)

	// ExistsByUnit checks whether any row references the unit
	ExistsByUnit(ctx context.Context, unitID uuid.UUID) (bool, error)
}

// ReceiptRepository defines the interface for receipt document persistence
type ReceiptRepository interface {
	// FindByID loads a receipt with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*ReceiptDocument, error)

	// FindByIDForUpdate loads a receipt with its lines and locks the header row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ReceiptDocument, error)

	// Find returns receipts matching the filter, newest date first
	Find(ctx context.Context, filter DocumentFilter) ([]ReceiptDocument, error)

	// ExistsByNumber checks whether another receipt holds the number.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error)

	// Create inserts the header and its lines
	Create(ctx context.Context, doc *ReceiptDocument) error

	// Update persists header changes guarded by the version and replaces the lines
	Update(ctx context.Context, doc *ReceiptDocument) error

	// Delete removes the lines and then the header
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsLineByResource checks whether any receipt line references the resource
	ExistsLineByResource(ctx context.Context, resourceID uuid.UUID) (bool, error)

	// ExistsLineByUnit checks whether any receipt line references the unit
	ExistsLineByUnit(ctx context.Context, unitID uuid.UUID) (bool, error)
}

// ShipmentRepository defines the interface for shipment document persistence
type ShipmentRepository interface {
	// FindByID loads a shipment with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*ShipmentDocument, error)

	// FindByIDForUpdate loads a shipment with its lines and locks the header row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ShipmentDocument, error)

	// Find returns shipments matching the filter, newest date first
	Find(ctx context.Context, filter DocumentFilter) ([]ShipmentDocument, error)

	// ExistsByNumber checks whether another shipment holds the number.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error)

	// Create inserts the header and its lines
	Create(ctx context.Context, doc *ShipmentDocument) error

	// Update persists header changes guarded by the version and replaces the lines
	Update(ctx context.Context, doc *ShipmentDocument) error

	// UpdateState persists a state transition guarded by the version
	UpdateState(ctx context.Context, doc *ShipmentDocument) error

	// Delete removes the lines and then the header
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsLineByResource checks whether any shipment line references the resource
	ExistsLineByResource(ctx context.Context, resourceID uuid.UUID) (bool, error)

	// ExistsLineByUnit checks whether any shipment line references the unit
	ExistsLineByUnit(ctx context.Context, unitID uuid.UUID) (bool, error)

	// ExistsByClient checks whether any shipment references the client
	ExistsByClient(ctx context.Context, clientID uuid.UUID) (bool, error)
}
