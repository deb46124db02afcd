// Package units provides the unit conversion engine for spare-part stock.
//
// Every stock item tracks its on-hand quantity in exactly one base unit
// (discrete pieces or bulk liters). Order lines may be entered in a
// user-facing display unit (piece, pack, liter, bottle); this package owns
// the translation between the two for both stock bookkeeping and pricing.
// All functions are pure and safe to call from any goroutine.
package units

import (
	"github.com/shopspring/decimal"

	"bengkel/internal/core/apperror"
)

// BaseUnit is the canonical unit in which a stock item's on-hand
// quantity is authoritatively tracked.
type BaseUnit string

const (
	BasePCS   BaseUnit = "PCS"   // discrete pieces
	BaseLiter BaseUnit = "LITER" // bulk volume
)

// DisplayUnit is the unit a user selects when entering a quantity
// on an order line.
type DisplayUnit string

const (
	UnitPCS   DisplayUnit = "PCS"
	UnitPack  DisplayUnit = "PACK"
	UnitLiter DisplayUnit = "LITER"
	UnitBotol DisplayUnit = "BOTOL" // bottled liquid, counted by piece, labeled by volume
)

// PricingBasis states what one unit of the item's sell price refers to.
// Bottled liquids are stocked by piece but conventionally priced per liter;
// the explicit basis removes the need to infer that from which conversion
// factor happens to be populated.
type PricingBasis string

const (
	PricePerBaseUnit PricingBasis = "PER_BASE_UNIT"
	PricePerVolume   PricingBasis = "PER_VOLUME"
)

// Conversion is the unit-conversion snapshot of a stock item. It is stored
// on the catalog entry and copied verbatim onto every order line, so
// historical orders stay computable after the catalog entry changes.
type Conversion struct {
	// BaseUnit is immutable once stock movements exist against the item.
	BaseUnit BaseUnit `bson:"base_unit" json:"baseUnit"`

	// PcsPerPack is how many base pieces make one pack. Zero when the item
	// is not pack-oriented; must be > 1 otherwise.
	PcsPerPack int64 `bson:"pcs_per_pack,omitempty" json:"pcsPerPack,omitempty"`

	// PackLabel is the display name of the pack grouping (e.g. "BOX").
	// Required whenever PcsPerPack is set.
	PackLabel string `bson:"pack_label,omitempty" json:"packLabel,omitempty"`

	// LiterPerPcs is how many liters one bottle/drum piece holds.
	// Zero when the item is not bottle-oriented.
	LiterPerPcs decimal.Decimal `bson:"liter_per_pcs,omitempty" json:"literPerPcs,omitempty"`

	// Basis defaults to PER_VOLUME when LiterPerPcs is set, PER_BASE_UNIT
	// otherwise. See EffectiveBasis.
	Basis PricingBasis `bson:"pricing_basis,omitempty" json:"pricingBasis,omitempty"`
}

// HasPack reports whether the item offers a pack framing.
func (c Conversion) HasPack() bool {
	return c.PcsPerPack > 1
}

// HasBottle reports whether the item offers a bottle framing.
func (c Conversion) HasBottle() bool {
	return c.LiterPerPcs.IsPositive()
}

// EffectiveBasis resolves the pricing basis, inferring it from the
// conversion factors when not explicitly set.
func (c Conversion) EffectiveBasis() PricingBasis {
	if c.Basis != "" {
		return c.Basis
	}
	if c.HasBottle() {
		return PricePerVolume
	}
	return PricePerBaseUnit
}

// Validate checks the conversion invariants. An item is either
// pack-oriented or bottle-oriented, never both.
func (c Conversion) Validate() error {
	if c.BaseUnit != BasePCS && c.BaseUnit != BaseLiter {
		return apperror.NewValidation("invalid base unit").
			WithDetail("field", "baseUnit").
			WithDetail("value", string(c.BaseUnit))
	}

	if c.PcsPerPack != 0 && c.PcsPerPack < 2 {
		return apperror.NewValidation("pcs per pack must be greater than 1").
			WithDetail("field", "pcsPerPack")
	}

	if c.LiterPerPcs.IsNegative() {
		return apperror.NewValidation("liter per pcs must be positive").
			WithDetail("field", "literPerPcs")
	}

	if c.HasPack() && c.HasBottle() {
		return apperror.NewValidation("pack and bottle factors are mutually exclusive").
			WithDetail("field", "pcsPerPack")
	}

	if c.HasPack() && c.PackLabel == "" {
		return apperror.NewValidation("pack label is required when pcs per pack is set").
			WithDetail("field", "packLabel")
	}

	if c.BaseUnit == BaseLiter && (c.PcsPerPack != 0 || !c.LiterPerPcs.IsZero()) {
		// Bulk liquid cannot be subdivided into packs or bottles.
		return apperror.NewValidation("bulk liter items cannot carry pack or bottle factors").
			WithDetail("field", "baseUnit")
	}

	if c.Basis != "" && c.Basis != PricePerBaseUnit && c.Basis != PricePerVolume {
		return apperror.NewValidation("invalid pricing basis").
			WithDetail("field", "pricingBasis").
			WithDetail("value", string(c.Basis))
	}

	return nil
}

// IsDisplayUnitValid reports whether a display unit may be used against
// a base unit at all. Bulk liters accept only LITER; pieces accept the
// piece, pack and bottle framings.
func IsDisplayUnitValid(unit DisplayUnit, base BaseUnit) bool {
	switch base {
	case BaseLiter:
		return unit == UnitLiter
	case BasePCS:
		return unit == UnitPCS || unit == UnitPack || unit == UnitBotol
	}
	return false
}

// AvailableDisplayUnits derives the selectable display units for an item.
// The item's own base unit is always first; pack and bottle framings are
// offered only when the corresponding factor is configured.
func AvailableDisplayUnits(conv Conversion) []DisplayUnit {
	if conv.BaseUnit == BaseLiter {
		return []DisplayUnit{UnitLiter}
	}

	out := []DisplayUnit{UnitPCS}
	if conv.HasPack() {
		out = append(out, UnitPack)
	}
	if conv.HasBottle() {
		out = append(out, UnitBotol)
	}
	return out
}
