package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/warehouse/backend/internal/application/catalog"
)

// ResourceHandler handles resource master data endpoints
type ResourceHandler struct {
	BaseHandler
	resourceService *catalogapp.ResourceService
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(resourceService *catalogapp.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List returns every resource, archived ones included
func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.resourceService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resources, len(resources))
}

// ListActive returns resources that can be picked on new documents
func (h *ResourceHandler) ListActive(c *gin.Context) {
	resources, err := h.resourceService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, resources, len(resources))
}

func (h *ResourceHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "resource")
	if !ok {
		return
	}

	resource, err := h.resourceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resource)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req catalogapp.CreateResourceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resource, err := h.resourceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resource)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "resource")
	if !ok {
		return
	}
	var req catalogapp.UpdateResourceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resource, err := h.resourceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resource)
}

// Archive handles POST /resources/:id/archive
func (h *ResourceHandler) Archive(c *gin.Context) {
	h.transition(c, h.resourceService.Archive)
}

// Restore handles POST /resources/:id/restore
func (h *ResourceHandler) Restore(c *gin.Context) {
	h.transition(c, h.resourceService.Restore)
}

// Delete removes a resource that no balance or document line references
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "resource")
	if !ok {
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ResourceHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*catalogapp.ResourceResponse, error)) {
	id, ok := h.parseID(c, "resource")
	if !ok {
		return
	}

	resource, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resource)
}
