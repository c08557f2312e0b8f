package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// MinLineQuantity is the smallest quantity a document line may carry
var MinLineQuantity = decimal.NewFromFloat(0.01)

// QuantityScale and MaxQuantity bound quantities to the DECIMAL(18,4) columns.
// MaxQuantity itself is out of range.
const QuantityScale = 4

var MaxQuantity = decimal.New(1, 18-QuantityScale)

// DocumentLine is one (resource, unit, quantity) entry of a receipt or shipment.
// Lines are owned by their document and ordered by Position.
type DocumentLine struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Position   int
	ResourceID uuid.UUID
	UnitID     uuid.UUID
	Quantity   decimal.Decimal
}

// LineInput is the caller-supplied content of a line
type LineInput struct {
	ResourceID uuid.UUID
	UnitID     uuid.UUID
	Quantity   decimal.Decimal
}

// Key returns the balance key the line adjusts
func (l DocumentLine) Key() BalanceKey {
	return BalanceKey{ResourceID: l.ResourceID, UnitID: l.UnitID}
}

// buildLines validates inputs and turns them into lines owned by documentID
func buildLines(documentID uuid.UUID, inputs []LineInput) ([]DocumentLine, error) {
	lines := make([]DocumentLine, 0, len(inputs))
	for i, in := range inputs {
		if in.ResourceID == uuid.Nil {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Line %d: resource is required", i+1))
		}
		if in.UnitID == uuid.Nil {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Line %d: unit of measurement is required", i+1))
		}
		if in.Quantity.LessThan(MinLineQuantity) {
			return nil, shared.NewDomainError(shared.CodeInvalidInput,
				fmt.Sprintf("Line %d: quantity must be at least %s", i+1, MinLineQuantity.String()))
		}
		if !in.Quantity.Equal(in.Quantity.Truncate(QuantityScale)) {
			return nil, shared.NewDomainError(shared.CodeInvalidInput,
				fmt.Sprintf("Line %d: quantity allows at most %d decimal places", i+1, QuantityScale))
		}
		if in.Quantity.GreaterThanOrEqual(MaxQuantity) {
			return nil, shared.NewDomainError(shared.CodeInvalidInput,
				fmt.Sprintf("Line %d: quantity must be less than %s", i+1, MaxQuantity.String()))
		}
		lines = append(lines, DocumentLine{
			ID:         uuid.New(),
			DocumentID: documentID,
			Position:   i + 1,
			ResourceID: in.ResourceID,
			UnitID:     in.UnitID,
			Quantity:   in.Quantity,
		})
	}
	return lines, nil
}

// cloneLines copies a line slice so callers can keep a snapshot across a mutation
func cloneLines(lines []DocumentLine) []DocumentLine {
	out := make([]DocumentLine, len(lines))
	copy(out, lines)
	return out
}
