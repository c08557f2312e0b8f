package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ShipmentState represents the lifecycle state of a shipment document
type ShipmentState string

const (
	ShipmentStateDraft   ShipmentState = "DRAFT"
	ShipmentStateSigned  ShipmentState = "SIGNED"
	ShipmentStateRevoked ShipmentState = "REVOKED"
)

// IsValid checks if the state is a known value
func (s ShipmentState) IsValid() bool {
	switch s {
	case ShipmentStateDraft, ShipmentStateSigned, ShipmentStateRevoked:
		return true
	}
	return false
}

// String returns the string representation
func (s ShipmentState) String() string {
	return string(s)
}

// CanTransitionTo checks if the state can transition to the target state
func (s ShipmentState) CanTransitionTo(target ShipmentState) bool {
	switch s {
	case ShipmentStateDraft:
		return target == ShipmentStateSigned
	case ShipmentStateSigned:
		return target == ShipmentStateRevoked
	default:
		return false
	}
}

// ShipmentDocument records stock leaving the warehouse.
// Its lines affect the balance only while it is Signed.
type ShipmentDocument struct {
	shared.BaseAggregateRoot
	Number   string
	ClientID uuid.UUID
	Date     time.Time
	State    ShipmentState
	Lines    []DocumentLine
}

// NewShipmentDocument creates a draft shipment; at least one line is required
func NewShipmentDocument(number string, clientID uuid.UUID, date time.Time, inputs []LineInput) (*ShipmentDocument, error) {
	number, err := normalizeNumber(number)
	if err != nil {
		return nil, err
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Client is required")
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, shared.ErrEmptyDocument
	}

	doc := &ShipmentDocument{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ClientID:          clientID,
		Date:              date,
		State:             ShipmentStateDraft,
	}
	lines, err := buildLines(doc.ID, inputs)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

// Update replaces the header fields and the line set of a draft
func (s *ShipmentDocument) Update(number string, clientID uuid.UUID, date time.Time, inputs []LineInput) error {
	if s.State != ShipmentStateDraft {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot edit shipment in %s state", s.State))
	}
	number, err := normalizeNumber(number)
	if err != nil {
		return err
	}
	if clientID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Client is required")
	}
	if err := validateDate(date); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return shared.ErrEmptyDocument
	}
	lines, err := buildLines(s.ID, inputs)
	if err != nil {
		return err
	}

	s.Number = number
	s.ClientID = clientID
	s.Date = date
	s.Lines = lines
	s.MarkModified()
	return nil
}

// Sign commits the shipment; the caller must take its lines out of stock
func (s *ShipmentDocument) Sign() error {
	if s.State == ShipmentStateSigned {
		return shared.ErrAlreadySigned
	}
	if !s.State.CanTransitionTo(ShipmentStateSigned) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot sign shipment in %s state", s.State))
	}
	s.State = ShipmentStateSigned
	s.MarkModified()
	return nil
}

// Revoke cancels a signed shipment; the caller must return its lines to stock
func (s *ShipmentDocument) Revoke() error {
	if !s.State.CanTransitionTo(ShipmentStateRevoked) {
		return shared.NewDomainError(shared.CodeInvalidState, "Only a signed document can be revoked")
	}
	s.State = ShipmentStateRevoked
	s.MarkModified()
	return nil
}

// HoldsStock returns true while the shipment's lines are deducted from the balance
func (s *ShipmentDocument) HoldsStock() bool {
	return s.State == ShipmentStateSigned
}

// IsDraft returns true if the shipment has not been signed yet
func (s *ShipmentDocument) IsDraft() bool {
	return s.State == ShipmentStateDraft
}
