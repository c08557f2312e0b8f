package partner

import (
	"strings"
	"unicode/utf8"

	"github.com/warehouse/backend/internal/domain/shared"
)

const (
	// MaxClientNameLength bounds Client.Name
	MaxClientNameLength = 200
	// MaxClientAddressLength bounds Client.Address
	MaxClientAddressLength = 500
)

// Client is the counterparty a shipment is sent to
type Client struct {
	shared.BaseAggregateRoot
	Name    string
	Address string
	State   shared.EntityState
}

// NewClient creates an active client
func NewClient(name, address string) (*Client, error) {
	name, err := shared.NormalizeName("Client name", name, MaxClientNameLength)
	if err != nil {
		return nil, err
	}
	address, err = normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		State:             shared.EntityStateActive,
	}, nil
}

// Update changes the client name and address
func (c *Client) Update(name, address string) error {
	name, err := shared.NormalizeName("Client name", name, MaxClientNameLength)
	if err != nil {
		return err
	}
	address, err = normalizeAddress(address)
	if err != nil {
		return err
	}
	c.Name = name
	c.Address = address
	c.MarkModified()
	return nil
}

// Archive moves the client out of active use
func (c *Client) Archive() error {
	if c.State == shared.EntityStateArchived {
		return shared.NewDomainError(shared.CodeInvalidState, "Client is already archived")
	}
	c.State = shared.EntityStateArchived
	c.MarkModified()
	return nil
}

// Restore returns an archived client to active use
func (c *Client) Restore() error {
	if c.State == shared.EntityStateActive {
		return shared.NewDomainError(shared.CodeInvalidState, "Client is already active")
	}
	c.State = shared.EntityStateActive
	c.MarkModified()
	return nil
}

// IsActive returns true if the client is not archived
func (c *Client) IsActive() bool {
	return c.State == shared.EntityStateActive
}

func normalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if utf8.RuneCountInString(address) > MaxClientAddressLength {
		return "", shared.NewDomainError(shared.CodeInvalidInput, "Address cannot exceed 500 characters")
	}
	return address, nil
}
