package inventory

import (
	"time"

	"github.com/google/uuid"
)

// BalanceFilter narrows a balance snapshot; empty slices match everything
type BalanceFilter struct {
	ResourceIDs []uuid.UUID
	UnitIDs     []uuid.UUID
}

// DocumentFilter narrows a document listing; zero values match everything.
// ResourceIDs and UnitIDs match documents having at least one such line.
type DocumentFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	Numbers     []string
	ResourceIDs []uuid.UUID
	UnitIDs     []uuid.UUID
}
