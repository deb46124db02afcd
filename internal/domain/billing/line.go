package billing

import (
	"github.com/shopspring/decimal"

	"bengkel/internal/core/id"
	"bengkel/internal/domain/units"
)

// NewLine builds a line from catalog data, snapshotting the conversion
// factors and the base-unit sell price. An explicit override replaces
// the base-unit price when the front desk negotiates one. The unit
// combination is validated here so a bad line never reaches the stock
// deduction or a stored document.
func NewLine(
	sparepartID id.ID,
	name string,
	sellPrice decimal.Decimal,
	conv units.Conversion,
	qty decimal.Decimal,
	unit units.DisplayUnit,
	priceOverride *decimal.Decimal,
) (UsedPart, error) {
	price := sellPrice
	if priceOverride != nil {
		price = *priceOverride
	}

	if _, err := units.ToBase(qty, unit, conv); err != nil {
		return UsedPart{}, err
	}
	if _, err := units.PricePerDisplayUnit(price, unit, conv); err != nil {
		return UsedPart{}, err
	}

	return UsedPart{
		SparepartID: sparepartID,
		Name:        name,
		UnitPrice:   price,
		Qty:         qty,
		DisplayUnit: unit,
		Conversion:  conv,
	}, nil
}
