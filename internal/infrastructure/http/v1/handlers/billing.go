package handlers

import (
	"github.com/gin-gonic/gin"

	"bengkel/internal/core/types"
	"bengkel/internal/domain/billing"
	"bengkel/internal/infrastructure/http/v1/dto"
)

// BillingHandler serves the bill preview endpoint used by the order
// forms while the admin is still typing.
type BillingHandler struct {
	*BaseHandler
	lines *LineResolver
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(base *BaseHandler, lines *LineResolver) *BillingHandler {
	return &BillingHandler{BaseHandler: base, lines: lines}
}

// RegisterRoutes mounts the billing endpoints.
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/totals", h.Totals)
}

// Totals handles POST /billing/totals. Computes the bill for the given
// lines without persisting anything.
func (h *BillingHandler) Totals(c *gin.Context) {
	var req dto.TotalsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines, err := h.lines.Resolve(c.Request.Context(), req.Lines)
	if err != nil {
		h.Error(c, err)
		return
	}

	fee := types.ClampNonNegative(req.ServiceFee.Decimal)
	discount := types.ClampNonNegative(req.Discount.Decimal)
	totals := billing.ComputeTotals(lines, fee, discount)

	h.OK(c, dto.NewTotalsResponse(lines, fee, discount, totals))
}
