package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/warehouse/backend/internal/application/inventory"
)

// BalanceHandler serves the on-hand balance snapshot
type BalanceHandler struct {
	BaseHandler
	balanceService *inventoryapp.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService *inventoryapp.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// List handles GET /balances?resource_ids=&unit_ids=
func (h *BalanceHandler) List(c *gin.Context) {
	var query inventoryapp.BalanceQuery
	if !h.bindQuery(c, &query) {
		return
	}

	rows, err := h.balanceService.GetBalance(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, rows, len(rows))
}
