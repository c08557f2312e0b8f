package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/warehouse/backend/internal/application/catalog"
)

// UnitHandler handles unit master data endpoints
type UnitHandler struct {
	BaseHandler
	unitService *catalogapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *catalogapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

func (h *UnitHandler) List(c *gin.Context) {
	units, err := h.unitService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, units, len(units))
}

// ListActive returns units that can be picked on new documents
func (h *UnitHandler) ListActive(c *gin.Context) {
	units, err := h.unitService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, units, len(units))
}

func (h *UnitHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "unit")
	if !ok {
		return
	}

	unit, err := h.unitService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

func (h *UnitHandler) Create(c *gin.Context) {
	var req catalogapp.CreateUnitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	unit, err := h.unitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, unit)
}

func (h *UnitHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "unit")
	if !ok {
		return
	}
	var req catalogapp.UpdateUnitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

func (h *UnitHandler) Archive(c *gin.Context) {
	h.transition(c, h.unitService.Archive)
}

func (h *UnitHandler) Restore(c *gin.Context) {
	h.transition(c, h.unitService.Restore)
}

// Delete removes a unit that no balance or document line references
func (h *UnitHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "unit")
	if !ok {
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *UnitHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*catalogapp.UnitResponse, error)) {
	id, ok := h.parseID(c, "unit")
	if !ok {
		return
	}

	unit, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}
