package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ClientUsageChecker reports whether any shipment references a client
type ClientUsageChecker interface {
	CanDeleteClient(ctx context.Context, clientID uuid.UUID) (bool, error)
}

// ClientService handles client master data
type ClientService struct {
	clientRepo partner.ClientRepository
	usage      ClientUsageChecker
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, usage ClientUsageChecker) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		usage:      usage,
	}
}

func (s *ClientService) ensureNameFree(ctx context.Context, name string, excludeID uuid.UUID) error {
	exists, err := s.clientRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Client with name '%s' already exists", name))
	}
	return nil
}

// Create creates a new active client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, client.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List returns all clients
func (s *ClientService) List(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToClientResponses(clients), nil
}

// ListActive returns clients that can receive new shipments
func (s *ClientService) ListActive(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToClientResponses(clients), nil
}

// Update changes a client's name and address
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := client.Update(req.Name, req.Address); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, client.Name, client.ID); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Archive moves a client out of active use
func (s *ClientService) Archive(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := client.Archive(); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Restore returns an archived client to active use
func (s *ClientService) Restore(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := client.Restore(); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client no shipment references
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	free, err := s.usage.CanDeleteClient(ctx, client.ID)
	if err != nil {
		return err
	}
	if !free {
		return shared.NewDomainError(shared.CodeInUse, "Client is referenced by shipments and cannot be deleted; archive it instead")
	}
	return s.clientRepo.Delete(ctx, client.ID)
}
