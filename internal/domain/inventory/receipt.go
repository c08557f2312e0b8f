package inventory

import (
	"time"

	"github.com/warehouse/backend/internal/domain/shared"
)

// ReceiptDocument records stock entering the warehouse.
// A receipt has no lifecycle: while it exists its lines are counted in the balance.
type ReceiptDocument struct {
	shared.BaseAggregateRoot
	Number string
	Date   time.Time
	Lines  []DocumentLine
}

// NewReceiptDocument creates a receipt with validated lines
func NewReceiptDocument(number string, date time.Time, inputs []LineInput) (*ReceiptDocument, error) {
	number, err := normalizeNumber(number)
	if err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	doc := &ReceiptDocument{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Date:              date,
	}
	lines, err := buildLines(doc.ID, inputs)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

// Update replaces the header fields and the line set.
// It returns the lines the receipt held before the call.
func (r *ReceiptDocument) Update(number string, date time.Time, inputs []LineInput) ([]DocumentLine, error) {
	number, err := normalizeNumber(number)
	if err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	lines, err := buildLines(r.ID, inputs)
	if err != nil {
		return nil, err
	}

	previous := cloneLines(r.Lines)
	r.Number = number
	r.Date = date
	r.Lines = lines
	r.MarkModified()
	return previous, nil
}
