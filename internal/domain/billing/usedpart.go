// Package billing computes line and document totals for estimates and
// work orders. Like the conversion engine it is pure: the order-entry
// handlers call it on every input change, and the same functions produce
// the persisted totals at submit time.
package billing

import (
	"github.com/shopspring/decimal"

	"bengkel/internal/core/id"
	"bengkel/internal/core/types"
	"bengkel/internal/domain/units"
)

// UsedPart is one spare-part line on an estimate or work order. It is a
// denormalized snapshot of the catalog entry at selection time, not a live
// reference: the conversion factors travel with the line so historical
// documents remain computable even if the catalog entry changes or is
// soft-deleted later.
type UsedPart struct {
	// SparepartID weakly references the originating catalog entry
	// (lookup only, not ownership).
	SparepartID id.ID `bson:"sparepart_id" json:"sparepartId"`

	// Name is the display label copied at selection time.
	Name string `bson:"name" json:"name"`

	// UnitPrice is the sell price per one base unit, copied from the
	// catalog at selection time. It stays in base-unit terms regardless
	// of which display unit the user later picks for the line.
	UnitPrice types.Money `bson:"unit_price" json:"unitPrice"`

	// Qty is the quantity the user entered, expressed in DisplayUnit.
	Qty types.Quantity `bson:"qty" json:"qty"`

	// DisplayUnit is the unit the user picked for this line.
	DisplayUnit units.DisplayUnit `bson:"display_unit" json:"displayUnit"`

	// Conversion is the factor snapshot copied from the catalog entry.
	Conversion units.Conversion `bson:"conversion" json:"conversion"`

	// QtyBase is the quantity in base units, recorded when the work order
	// is submitted (the stock decrement actually applied).
	QtyBase types.Quantity `bson:"qty_base,omitempty" json:"qtyBase,omitempty"`
}

// BaseQuantity converts the line quantity into base units for stock
// deduction.
func (p UsedPart) BaseQuantity() (decimal.Decimal, error) {
	return units.ToBase(p.Qty, p.DisplayUnit, p.Conversion)
}
