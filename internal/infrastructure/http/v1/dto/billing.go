package dto

import (
	"github.com/shopspring/decimal"

	"bengkel/internal/domain/billing"
	"bengkel/internal/domain/units"
)

// LineRequest is one spare part line on an estimate or work order.
// unitPrice optionally overrides the catalog's base-unit sell price;
// pack and bottle prices are always derived from the base price.
type LineRequest struct {
	SparepartID string            `json:"sparepartId" binding:"required"`
	Qty         LenientDecimal    `json:"qty"`
	DisplayUnit units.DisplayUnit `json:"displayUnit" binding:"required"`
	UnitPrice   *LenientDecimal   `json:"unitPrice"`
}

// PriceOverride returns the explicit price, or nil when the catalog
// price should be used.
func (r LineRequest) PriceOverride() *decimal.Decimal {
	if r.UnitPrice == nil {
		return nil
	}
	return &r.UnitPrice.Decimal
}

// LineResponse is one priced line.
type LineResponse struct {
	SparepartID string            `json:"sparepartId"`
	Name        string            `json:"name"`
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	Qty         decimal.Decimal   `json:"qty"`
	DisplayUnit units.DisplayUnit `json:"displayUnit"`
	QtyBase     decimal.Decimal   `json:"qtyBase,omitempty"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
}

// FromLine creates a line response, computing the line subtotal.
func FromLine(p billing.UsedPart) LineResponse {
	subtotal, _ := billing.LineSubtotal(p)
	return LineResponse{
		SparepartID: p.SparepartID.String(),
		Name:        p.Name,
		UnitPrice:   p.UnitPrice,
		Qty:         p.Qty,
		DisplayUnit: p.DisplayUnit,
		QtyBase:     p.QtyBase,
		Subtotal:    subtotal,
	}
}

// FromLines maps a slice of lines.
func FromLines(parts []billing.UsedPart) []LineResponse {
	out := make([]LineResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, FromLine(p))
	}
	return out
}

// --- Totals preview ---

// TotalsRequest asks for a bill preview without persisting anything.
type TotalsRequest struct {
	Lines      []LineRequest  `json:"lines"`
	ServiceFee LenientDecimal `json:"serviceFee"`
	Discount   LenientDecimal `json:"discount"`
}

// TotalsResponse is the computed bill.
type TotalsResponse struct {
	Lines      []LineResponse  `json:"lines"`
	PartsTotal decimal.Decimal `json:"partsTotal"`
	ServiceFee decimal.Decimal `json:"serviceFee"`
	Discount   decimal.Decimal `json:"discount"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	Anomalies  int             `json:"anomalies,omitempty"`
}

// NewTotalsResponse assembles the preview from computed totals.
func NewTotalsResponse(parts []billing.UsedPart, serviceFee, discount decimal.Decimal, t billing.Totals) TotalsResponse {
	return TotalsResponse{
		Lines:      FromLines(parts),
		PartsTotal: t.PartsTotal,
		ServiceFee: serviceFee,
		Discount:   discount,
		Subtotal:   t.Subtotal,
		GrandTotal: t.GrandTotal,
		Anomalies:  len(t.Anomalies),
	}
}
