package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ResourceUsageChecker reports whether the ledger still references a resource
type ResourceUsageChecker interface {
	CanDeleteResource(ctx context.Context, resourceID uuid.UUID) (bool, error)
}

// ResourceService handles resource master data
type ResourceService struct {
	resourceRepo catalog.ResourceRepository
	usage        ResourceUsageChecker
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo catalog.ResourceRepository, usage ResourceUsageChecker) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		usage:        usage,
	}
}

func (s *ResourceService) ensureNameFree(ctx context.Context, name string, excludeID uuid.UUID) error {
	exists, err := s.resourceRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Resource with name '%s' already exists", name))
	}
	return nil
}

// Create creates a new active resource
func (s *ResourceService) Create(ctx context.Context, req CreateResourceRequest) (*ResourceResponse, error) {
	resource, err := catalog.NewResource(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, resource.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Save(ctx, resource); err != nil {
		return nil, err
	}
	response := ToResourceResponse(resource)
	return &response, nil
}

// GetByID retrieves a resource by ID
func (s *ResourceService) GetByID(ctx context.Context, id uuid.UUID) (*ResourceResponse, error) {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToResourceResponse(resource)
	return &response, nil
}

// List returns all resources
func (s *ResourceService) List(ctx context.Context) ([]ResourceResponse, error) {
	resources, err := s.resourceRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToResourceResponses(resources), nil
}

// ListActive returns resources that are not archived
func (s *ResourceService) ListActive(ctx context.Context) ([]ResourceResponse, error) {
	resources, err := s.resourceRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToResourceResponses(resources), nil
}

// Update renames a resource
func (s *ResourceService) Update(ctx context.Context, id uuid.UUID, req UpdateResourceRequest) (*ResourceResponse, error) {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := resource.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, resource.Name, resource.ID); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Save(ctx, resource); err != nil {
		return nil, err
	}
	response := ToResourceResponse(resource)
	return &response, nil
}

// Archive moves a resource out of active use
func (s *ResourceService) Archive(ctx context.Context, id uuid.UUID) (*ResourceResponse, error) {
	return s.transition(ctx, id, (*catalog.Resource).Archive)
}

// Restore returns an archived resource to active use
func (s *ResourceService) Restore(ctx context.Context, id uuid.UUID) (*ResourceResponse, error) {
	return s.transition(ctx, id, (*catalog.Resource).Restore)
}

func (s *ResourceService) transition(ctx context.Context, id uuid.UUID, apply func(*catalog.Resource) error) (*ResourceResponse, error) {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(resource); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Save(ctx, resource); err != nil {
		return nil, err
	}
	response := ToResourceResponse(resource)
	return &response, nil
}

// Delete removes a resource nothing in the ledger references
func (s *ResourceService) Delete(ctx context.Context, id uuid.UUID) error {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	free, err := s.usage.CanDeleteResource(ctx, resource.ID)
	if err != nil {
		return err
	}
	if !free {
		return shared.NewDomainError(shared.CodeInUse, "Resource is used in balances or documents and cannot be deleted; archive it instead")
	}
	return s.resourceRepo.Delete(ctx, resource.ID)
}
