package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
)

// LineRequest is one document line in a create/update request
type LineRequest struct {
	ResourceID uuid.UUID       `json:"resource_id" binding:"required"`
	UnitID     uuid.UUID       `json:"unit_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required,gte=0.01"`
}

// CreateReceiptRequest represents a request to create a receipt
type CreateReceiptRequest struct {
	Number string        `json:"number" binding:"required,max=50"`
	Date   time.Time     `json:"date" binding:"required"`
	Lines  []LineRequest `json:"lines" binding:"dive"`
}

// UpdateReceiptRequest represents a request to update a receipt
type UpdateReceiptRequest struct {
	Number string        `json:"number" binding:"required,max=50"`
	Date   time.Time     `json:"date" binding:"required"`
	Lines  []LineRequest `json:"lines" binding:"dive"`
}

// CreateShipmentRequest represents a request to create a draft shipment.
// An empty line set is reported as EMPTY_DOCUMENT by the domain, not by binding.
type CreateShipmentRequest struct {
	Number   string        `json:"number" binding:"required,max=50"`
	ClientID uuid.UUID     `json:"client_id" binding:"required"`
	Date     time.Time     `json:"date" binding:"required"`
	Lines    []LineRequest `json:"lines" binding:"dive"`
}

// UpdateShipmentRequest represents a request to update a draft shipment
type UpdateShipmentRequest struct {
	Number   string        `json:"number" binding:"required,max=50"`
	ClientID uuid.UUID     `json:"client_id" binding:"required"`
	Date     time.Time     `json:"date" binding:"required"`
	Lines    []LineRequest `json:"lines" binding:"dive"`
}

// DocumentListFilter represents list filters for receipts and shipments.
// Id lists accept repeated parameters or comma separated values.
type DocumentListFilter struct {
	DateFrom    *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"date_to" time_format:"2006-01-02"`
	Numbers     []string   `form:"numbers"`
	ResourceIDs []string   `form:"resource_ids"`
	UnitIDs     []string   `form:"unit_ids"`
}

// BalanceQuery represents balance snapshot filters
type BalanceQuery struct {
	ResourceIDs []string `form:"resource_ids"`
	UnitIDs     []string `form:"unit_ids"`
}

// LineResponse represents a document line in API responses
type LineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Position     int             `json:"position"`
	ResourceID   uuid.UUID       `json:"resource_id"`
	ResourceName string          `json:"resource_name"`
	UnitID       uuid.UUID       `json:"unit_id"`
	UnitName     string          `json:"unit_name"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID        uuid.UUID      `json:"id"`
	Number    string         `json:"number"`
	Date      time.Time      `json:"date"`
	Lines     []LineResponse `json:"lines"`
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID         uuid.UUID      `json:"id"`
	Number     string         `json:"number"`
	ClientID   uuid.UUID      `json:"client_id"`
	ClientName string         `json:"client_name"`
	Date       time.Time      `json:"date"`
	State      string         `json:"state"`
	Lines      []LineResponse `json:"lines"`
	Version    int            `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// BalanceResponse represents one balance row in API responses.
// Names are empty when no NameDirectory is configured.
type BalanceResponse struct {
	ResourceID   uuid.UUID       `json:"resource_id"`
	ResourceName string          `json:"resource_name"`
	UnitID       uuid.UUID       `json:"unit_id"`
	UnitName     string          `json:"unit_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toLineInputs(lines []LineRequest) []inventory.LineInput {
	inputs := make([]inventory.LineInput, len(lines))
	for i, l := range lines {
		inputs[i] = inventory.LineInput{ResourceID: l.ResourceID, UnitID: l.UnitID, Quantity: l.Quantity}
	}
	return inputs
}

func toLineResponses(lines []inventory.DocumentLine) []LineResponse {
	out := make([]LineResponse, len(lines))
	for i, l := range lines {
		out[i] = LineResponse{
			ID:         l.ID,
			Position:   l.Position,
			ResourceID: l.ResourceID,
			UnitID:     l.UnitID,
			Quantity:   l.Quantity,
		}
	}
	return out
}

// ToReceiptResponse converts a domain ReceiptDocument to ReceiptResponse
func ToReceiptResponse(doc *inventory.ReceiptDocument) ReceiptResponse {
	return ReceiptResponse{
		ID:        doc.ID,
		Number:    doc.Number,
		Date:      doc.Date,
		Lines:     toLineResponses(doc.Lines),
		Version:   doc.Version,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ToShipmentResponse converts a domain ShipmentDocument to ShipmentResponse
func ToShipmentResponse(doc *inventory.ShipmentDocument) ShipmentResponse {
	return ShipmentResponse{
		ID:        doc.ID,
		Number:    doc.Number,
		ClientID:  doc.ClientID,
		Date:      doc.Date,
		State:     doc.State.String(),
		Lines:     toLineResponses(doc.Lines),
		Version:   doc.Version,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ToBalanceResponse converts a domain Balance to BalanceResponse
func ToBalanceResponse(b inventory.Balance) BalanceResponse {
	return BalanceResponse{
		ResourceID: b.ResourceID,
		UnitID:     b.UnitID,
		Quantity:   b.Quantity,
		UpdatedAt:  b.UpdatedAt,
	}
}

// ParseIDs parses repeated or comma separated UUID parameters
func ParseIDs(field string, values []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid "+field+": "+part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ToDomain converts the list filter to a domain DocumentFilter
func (f DocumentListFilter) ToDomain() (inventory.DocumentFilter, error) {
	resourceIDs, err := ParseIDs("resource_ids", f.ResourceIDs)
	if err != nil {
		return inventory.DocumentFilter{}, err
	}
	unitIDs, err := ParseIDs("unit_ids", f.UnitIDs)
	if err != nil {
		return inventory.DocumentFilter{}, err
	}
	var numbers []string
	for _, n := range f.Numbers {
		for _, part := range strings.Split(n, ",") {
			if part = strings.TrimSpace(part); part != "" {
				numbers = append(numbers, part)
			}
		}
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return inventory.DocumentFilter{}, shared.NewDomainError(shared.CodeInvalidInput, "date_to must not be before date_from")
	}
	return inventory.DocumentFilter{
		DateFrom:    f.DateFrom,
		DateTo:      f.DateTo,
		Numbers:     numbers,
		ResourceIDs: resourceIDs,
		UnitIDs:     unitIDs,
	}, nil
}

// ToDomain converts the balance query to a domain BalanceFilter
func (q BalanceQuery) ToDomain() (inventory.BalanceFilter, error) {
	resourceIDs, err := ParseIDs("resource_ids", q.ResourceIDs)
	if err != nil {
		return inventory.BalanceFilter{}, err
	}
	unitIDs, err := ParseIDs("unit_ids", q.UnitIDs)
	if err != nil {
		return inventory.BalanceFilter{}, err
	}
	return inventory.BalanceFilter{ResourceIDs: resourceIDs, UnitIDs: unitIDs}, nil
}
