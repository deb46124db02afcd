// Package sparepart provides the spare-part stock catalog.
package sparepart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/entity"
	"bengkel/internal/core/types"
	"bengkel/internal/domain/units"
)

// Categories offered by the stock form.
const (
	CategoryEngine     = "Mesin"
	CategoryBraking    = "Pengereman"
	CategoryElectrical = "Kelistrikan"
	CategorySuspension = "Suspensi & Kemudi"
	CategoryAC         = "Sistem AC"
	CategoryOther      = "Lain-lain"
)

// Categories lists the valid stock categories in form order.
var Categories = []string{
	CategoryEngine,
	CategoryBraking,
	CategoryElectrical,
	CategorySuspension,
	CategoryAC,
	CategoryOther,
}

// Sparepart is a purchasable/consumable part in the stock catalog.
// StockBase is always expressed in the item's base unit; order lines in
// other display units are converted through units.ToBase before any
// decrement.
type Sparepart struct {
	entity.Catalog `bson:",inline"`

	// PartNumber is the manufacturer part number.
	PartNumber string `bson:"part_number,omitempty" json:"partNumber,omitempty"`

	// NGKNumber is the NGK cross-reference number (spark plugs).
	NGKNumber string `bson:"ngk_number,omitempty" json:"ngkNumber,omitempty"`

	Brand    string `bson:"brand,omitempty" json:"brand,omitempty"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`

	// Source is a free-form supplier note.
	Source string `bson:"source,omitempty" json:"source,omitempty"`

	// Conversion carries the base unit and the pack/bottle factors.
	Conversion units.Conversion `bson:"conversion" json:"conversion"`

	// StockBase is the on-hand quantity in base units. Never negative;
	// decremented only through validated conversions inside the work
	// order submit transaction.
	StockBase types.Quantity `bson:"stock_base" json:"stockBase"`

	// StockMoved is set on the first stock movement against the item.
	// Once set, the base unit is immutable: changing it would invalidate
	// historical quantities.
	StockMoved bool `bson:"stock_moved" json:"stockMoved"`

	PriceBuy  types.Money `bson:"price_buy" json:"priceBuy"`
	PriceSell types.Money `bson:"price_sell" json:"priceSell"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// NewSparepart creates a catalog entry with required fields. Code is
// allocated by the service at save time.
func NewSparepart(name string, conv units.Conversion) *Sparepart {
	now := time.Now().UTC()
	return &Sparepart{
		Catalog:    entity.NewCatalog("", name),
		Conversion: conv,
		StockBase:  decimal.Zero,
		PriceBuy:   decimal.Zero,
		PriceSell:  decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate implements entity.Validatable.
func (s *Sparepart) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if err := s.Conversion.Validate(); err != nil {
		return err
	}

	if s.StockBase.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stockBase")
	}

	if s.PriceBuy.IsNegative() || s.PriceSell.IsNegative() {
		return apperror.NewValidation("prices cannot be negative").
			WithDetail("field", "price")
	}

	if s.Category != "" && !isValidCategory(s.Category) {
		return apperror.NewValidation("invalid category").
			WithDetail("field", "category").
			WithDetail("value", s.Category)
	}

	return nil
}

// AvailableUnits derives the display units selectable for this item.
func (s *Sparepart) AvailableUnits() []units.DisplayUnit {
	return units.AvailableDisplayUnits(s.Conversion)
}

// Deduct removes a base-unit quantity from stock. The caller is expected
// to hold the item inside a transaction and to have converted the order
// line through units.ToBase already.
func (s *Sparepart) Deduct(qtyBase decimal.Decimal) error {
	if qtyBase.IsNegative() {
		return apperror.NewValidation("deduction cannot be negative")
	}
	if s.StockBase.LessThan(qtyBase) {
		return apperror.NewInsufficientStock(s.Name, qtyBase.String(), s.StockBase.String())
	}
	s.StockBase = s.StockBase.Sub(qtyBase)
	s.StockMoved = true
	return nil
}

// Restock adds a base-unit quantity to stock. A restock is a stock
// movement like any other: once goods have arrived, the base unit is
// locked.
func (s *Sparepart) Restock(qtyBase decimal.Decimal) error {
	if !qtyBase.IsPositive() {
		return apperror.NewValidation("restock quantity must be positive").
			WithDetail("qty", qtyBase.String())
	}
	s.StockBase = s.StockBase.Add(qtyBase)
	s.StockMoved = true
	return nil
}

func isValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
