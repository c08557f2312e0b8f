package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/warehouse/backend/internal/application/partner"
)

// ClientHandler handles client master data endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List returns every client, archived ones included
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, clients, len(clients))
}

// ListActive returns clients that new shipments may reference
func (h *ClientHandler) ListActive(c *gin.Context) {
	clients, err := h.clientService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, clients, len(clients))
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req partnerapp.CreateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}
	var req partnerapp.UpdateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Archive handles POST /clients/:id/archive
func (h *ClientHandler) Archive(c *gin.Context) {
	h.transition(c, h.clientService.Archive)
}

// Restore handles POST /clients/:id/restore
func (h *ClientHandler) Restore(c *gin.Context) {
	h.transition(c, h.clientService.Restore)
}

// Delete removes a client that no shipment references
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ClientHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*partnerapp.ClientResponse, error)) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	client, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}
