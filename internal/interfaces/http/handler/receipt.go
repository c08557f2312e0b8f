package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/warehouse/backend/internal/application/inventory"
)

// ReceiptHandler handles receipt document endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *inventoryapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *inventoryapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List returns receipts matching date_from, date_to, numbers, resource_ids and unit_ids
func (h *ReceiptHandler) List(c *gin.Context) {
	var filter inventoryapp.DocumentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	receipts, err := h.receiptService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, receipts, len(receipts))
}

// GetByID handles GET /receipts/:id
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "receipt")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// Create records a receipt and adds its lines to the balance
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateReceiptRequest
	if !h.bindJSON(c, &req) {
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// Update replaces a receipt's header and lines, moving the difference through the balance
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "receipt")
	if !ok {
		return
	}
	var req inventoryapp.UpdateReceiptRequest
	if !h.bindJSON(c, &req) {
		return
	}

	receipt, err := h.receiptService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// Delete removes a receipt and takes its quantities back out of the balance
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "receipt")
	if !ok {
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
