package billing

import (
	"github.com/shopspring/decimal"

	"bengkel/internal/core/types"
	"bengkel/internal/domain/units"
)

// Totals is the financial summary of an estimate or work order.
type Totals struct {
	// PartsTotal is the sum of all line subtotals.
	PartsTotal types.Money `json:"partsTotal"`

	// Subtotal is service fee plus parts total, before discount.
	Subtotal types.Money `json:"subtotal"`

	// GrandTotal is the payable amount, floored at zero.
	GrandTotal types.Money `json:"grandTotal"`

	// Anomalies lists lines whose display unit was invalid for their base
	// unit. Such lines are priced at the base-unit price instead of
	// failing, so one corrupted historical line cannot take down a whole
	// report or reprint.
	Anomalies []LineAnomaly `json:"anomalies,omitempty"`
}

// LineAnomaly flags a line computed with the safe fallback price.
type LineAnomaly struct {
	Index       int               `json:"index"`
	SparepartID string            `json:"sparepartId"`
	DisplayUnit units.DisplayUnit `json:"displayUnit"`
	BaseUnit    units.BaseUnit    `json:"baseUnit"`
}

// LineSubtotal computes the monetary subtotal for one line: the price of
// one display unit times the entered quantity. The boolean reports whether
// the line's unit combination was invalid and the base-unit price was used
// as fallback.
func LineSubtotal(p UsedPart) (decimal.Decimal, bool) {
	qty := types.ClampNonNegative(p.Qty)

	price, err := units.PricePerDisplayUnit(p.UnitPrice, p.DisplayUnit, p.Conversion)
	if err != nil {
		return p.UnitPrice.Mul(qty), true
	}
	return price.Mul(qty), false
}

// ComputeTotals aggregates used-part lines plus a flat service fee and a
// discount into the document totals.
//
// Negative fee or discount is clamped to zero rather than rejected, and the
// grand total never goes below zero when the discount exceeds the subtotal.
// The function is pure and idempotent; callers invoke it on every re-render.
func ComputeTotals(parts []UsedPart, serviceFee, discount decimal.Decimal) Totals {
	fee := types.ClampNonNegative(serviceFee)
	disc := types.ClampNonNegative(discount)

	partsTotal := decimal.Zero
	var anomalies []LineAnomaly

	for i, p := range parts {
		line, anomalous := LineSubtotal(p)
		partsTotal = partsTotal.Add(line)

		if anomalous {
			anomalies = append(anomalies, LineAnomaly{
				Index:       i,
				SparepartID: p.SparepartID.String(),
				DisplayUnit: p.DisplayUnit,
				BaseUnit:    p.Conversion.BaseUnit,
			})
		}
	}

	subtotal := fee.Add(partsTotal)

	grandTotal := subtotal.Sub(disc)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	return Totals{
		PartsTotal: partsTotal,
		Subtotal:   subtotal,
		GrandTotal: grandTotal,
		Anomalies:  anomalies,
	}
}
