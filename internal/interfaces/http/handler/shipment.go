package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/warehouse/backend/internal/application/inventory"
)

// ShipmentHandler handles shipment document endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *inventoryapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *inventoryapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

func (h *ShipmentHandler) List(c *gin.Context) {
	var filter inventoryapp.DocumentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	shipments, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, shipments, len(shipments))
}

func (h *ShipmentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "shipment")
	if !ok {
		return
	}

	shipment, err := h.shipmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Create saves a draft shipment; stock is untouched until it is signed
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// Update edits a draft shipment
func (h *ShipmentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "shipment")
	if !ok {
		return
	}
	var req inventoryapp.UpdateShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shipment, err := h.shipmentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Delete removes a draft shipment
func (h *ShipmentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "shipment")
	if !ok {
		return
	}

	if err := h.shipmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sign handles POST /shipments/:id/sign
func (h *ShipmentHandler) Sign(c *gin.Context) {
	h.transition(c, h.shipmentService.Sign)
}

// Revoke handles POST /shipments/:id/revoke
func (h *ShipmentHandler) Revoke(c *gin.Context) {
	h.transition(c, h.shipmentService.Revoke)
}

func (h *ShipmentHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*inventoryapp.ShipmentResponse, error)) {
	id, ok := h.parseID(c, "shipment")
	if !ok {
		return
	}

	shipment, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}
