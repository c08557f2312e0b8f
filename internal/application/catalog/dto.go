package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
)

// CreateResourceRequest represents a request to create a resource
type CreateResourceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateResourceRequest represents a request to rename a resource
type UpdateResourceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateUnitRequest represents a request to create a unit of measurement
type CreateUnitRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateUnitRequest represents a request to rename a unit of measurement
type UpdateUnitRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ResourceResponse represents a resource in API responses
type ResourceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitResponse represents a unit of measurement in API responses
type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResourceResponse converts a domain Resource to ResourceResponse
func ToResourceResponse(r *catalog.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        r.ID,
		Name:      r.Name,
		State:     r.State.String(),
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToResourceResponses converts a slice of resources
func ToResourceResponses(resources []catalog.Resource) []ResourceResponse {
	out := make([]ResourceResponse, len(resources))
	for i := range resources {
		out[i] = ToResourceResponse(&resources[i])
	}
	return out
}

// ToUnitResponse converts a domain Unit to UnitResponse
func ToUnitResponse(u *catalog.Unit) UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		State:     u.State.String(),
		Version:   u.Version,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUnitResponses converts a slice of units
func ToUnitResponses(units []catalog.Unit) []UnitResponse {
	out := make([]UnitResponse, len(units))
	for i := range units {
		out[i] = ToUnitResponse(&units[i])
	}
	return out
}
