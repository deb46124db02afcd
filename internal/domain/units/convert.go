package units

import (
	"github.com/shopspring/decimal"

	"bengkel/internal/core/apperror"
)

// ToBase converts a quantity entered in a display unit into the item's
// base unit, for stock deduction. The caller compares the result against
// the on-hand base quantity inside the stock transaction before writing.
func ToBase(qty decimal.Decimal, unit DisplayUnit, conv Conversion) (decimal.Decimal, error) {
	if qty.IsNegative() {
		return decimal.Zero, apperror.NewValidation("quantity cannot be negative").
			WithDetail("qty", qty.String())
	}

	switch conv.BaseUnit {
	case BaseLiter:
		if unit != UnitLiter {
			// The legacy forms silently passed the quantity through here,
			// which corrupts stock counts for mislabeled lines. Reject instead.
			return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit))
		}
		return qty, nil

	case BasePCS:
		switch unit {
		case UnitPCS:
			return qty, nil
		case UnitPack:
			if !conv.HasPack() {
				return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit)).
					WithDetail("reason", "item has no pack factor")
			}
			return qty.Mul(decimal.NewFromInt(conv.PcsPerPack)), nil
		case UnitBotol:
			// A bottle is one physical piece: the volume factor affects
			// pricing, never the piece count.
			return qty, nil
		}
		return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit))
	}

	return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit))
}

// PricePerDisplayUnit computes the price of one display unit given the
// item's stored sell price.
//
// For bottled liquids the stored price follows the item's pricing basis:
// with PER_VOLUME (the stocking convention, and the inferred default when a
// bottle factor is present) the stored price is per liter and one bottle
// costs price*literPerPcs; with an explicit PER_BASE_UNIT basis the stored
// price is already per bottle piece.
func PricePerDisplayUnit(basePrice decimal.Decimal, unit DisplayUnit, conv Conversion) (decimal.Decimal, error) {
	switch conv.BaseUnit {
	case BaseLiter:
		if unit != UnitLiter {
			return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit))
		}
		return basePrice, nil

	case BasePCS:
		switch unit {
		case UnitPCS:
			return basePrice, nil
		case UnitPack:
			if !conv.HasPack() {
				return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit)).
					WithDetail("reason", "item has no pack factor")
			}
			// A pack costs the sum of its constituent pieces.
			return basePrice.Mul(decimal.NewFromInt(conv.PcsPerPack)), nil
		case UnitBotol:
			if !conv.HasBottle() {
				return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit)).
					WithDetail("reason", "item has no bottle factor")
			}
			if conv.EffectiveBasis() == PricePerBaseUnit {
				return basePrice, nil
			}
			return basePrice.Mul(conv.LiterPerPcs), nil
		}
		return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit))
	}

	return decimal.Zero, apperror.NewInvalidUnit(string(unit), string(conv.BaseUnit))
}
