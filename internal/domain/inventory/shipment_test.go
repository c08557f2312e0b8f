package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared"
)

func newTestShipment(t *testing.T) *ShipmentDocument {
	t.Helper()
	doc, err := NewShipmentDocument("S-001", uuid.New(), time.Now(), []LineInput{testLine(200)})
	require.NoError(t, err)
	return doc
}

func TestNewShipmentDocument(t *testing.T) {
	clientID := uuid.New()
	date := time.Now()

	t.Run("creates draft shipment", func(t *testing.T) {
		doc, err := NewShipmentDocument("S-001", clientID, date, []LineInput{testLine(1)})

		require.NoError(t, err)
		assert.Equal(t, ShipmentStateDraft, doc.State)
		assert.Equal(t, clientID, doc.ClientID)
		assert.True(t, doc.IsDraft())
		assert.False(t, doc.HoldsStock())
	})

	t.Run("rejects empty document", func(t *testing.T) {
		_, err := NewShipmentDocument("S-001", clientID, date, nil)
		assert.ErrorIs(t, err, shared.ErrEmptyDocument)
	})

	t.Run("rejects missing client", func(t *testing.T) {
		_, err := NewShipmentDocument("S-001", uuid.Nil, date, []LineInput{testLine(1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestShipmentDocument_Update(t *testing.T) {
	t.Run("replaces lines while draft", func(t *testing.T) {
		doc := newTestShipment(t)
		clientID := uuid.New()

		err := doc.Update("S-002", clientID, time.Now(), []LineInput{testLine(1), testLine(2)})

		require.NoError(t, err)
		assert.Equal(t, "S-002", doc.Number)
		assert.Equal(t, clientID, doc.ClientID)
		assert.Len(t, doc.Lines, 2)
		assert.Equal(t, 2, doc.Version)
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		doc := newTestShipment(t)

		err := doc.Update("S-001", doc.ClientID, time.Now(), []LineInput{})

		assert.ErrorIs(t, err, shared.ErrEmptyDocument)
		assert.Len(t, doc.Lines, 1)
	})

	t.Run("rejects edits after signing", func(t *testing.T) {
		doc := newTestShipment(t)
		require.NoError(t, doc.Sign())

		err := doc.Update("S-001", doc.ClientID, time.Now(), []LineInput{testLine(1)})

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestShipmentDocument_Sign(t *testing.T) {
	t.Run("signs draft", func(t *testing.T) {
		doc := newTestShipment(t)

		require.NoError(t, doc.Sign())
		assert.Equal(t, ShipmentStateSigned, doc.State)
		assert.True(t, doc.HoldsStock())
	})

	t.Run("signing twice fails with already signed", func(t *testing.T) {
		doc := newTestShipment(t)
		require.NoError(t, doc.Sign())

		err := doc.Sign()

		assert.ErrorIs(t, err, shared.ErrAlreadySigned)
	})

	t.Run("revoked document cannot be signed again", func(t *testing.T) {
		doc := newTestShipment(t)
		require.NoError(t, doc.Sign())
		require.NoError(t, doc.Revoke())

		err := doc.Sign()

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, ShipmentStateRevoked, doc.State)
	})
}

func TestShipmentDocument_Revoke(t *testing.T) {
	t.Run("revokes signed document", func(t *testing.T) {
		doc := newTestShipment(t)
		require.NoError(t, doc.Sign())

		require.NoError(t, doc.Revoke())
		assert.Equal(t, ShipmentStateRevoked, doc.State)
		assert.False(t, doc.HoldsStock())
	})

	t.Run("draft cannot be revoked", func(t *testing.T) {
		doc := newTestShipment(t)

		err := doc.Revoke()

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Contains(t, err.Error(), "Only a signed document can be revoked")
	})

	t.Run("revoked cannot be revoked again", func(t *testing.T) {
		doc := newTestShipment(t)
		require.NoError(t, doc.Sign())
		require.NoError(t, doc.Revoke())

		assert.ErrorIs(t, doc.Revoke(), shared.ErrInvalidState)
	})
}

func TestShipmentState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from   ShipmentState
		to     ShipmentState
		expect bool
	}{
		{ShipmentStateDraft, ShipmentStateSigned, true},
		{ShipmentStateDraft, ShipmentStateRevoked, false},
		{ShipmentStateSigned, ShipmentStateRevoked, true},
		{ShipmentStateSigned, ShipmentStateDraft, false},
		{ShipmentStateRevoked, ShipmentStateSigned, false},
		{ShipmentStateRevoked, ShipmentStateDraft, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, ShipmentStateDraft.IsValid())
	assert.False(t, ShipmentState("UNKNOWN").IsValid())
}
