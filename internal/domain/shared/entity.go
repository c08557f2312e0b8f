package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and audit timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BaseAggregateRoot adds the row version used for optimistic concurrency.
// A freshly built aggregate starts at version 1; every persisted change bumps it.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot assigns a new ID and stamps both timestamps with the same instant
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now().UTC()
	return BaseAggregateRoot{
		BaseEntity: BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Version:    1,
	}
}

// MarkModified records a state change
func (a *BaseAggregateRoot) MarkModified() {
	a.UpdatedAt = time.Now().UTC()
	a.Version++
}
