// Package types provides common type aliases and numeric utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors in pricing math.
type Money = decimal.Decimal

// Quantity represents a stock quantity. Piece-counted items carry whole
// values; bulk-liquid items may carry fractional liters.
type Quantity = decimal.Decimal

// ClampNonNegative returns d, or zero when d is negative.
// Matches the forgiving numeric handling of the order-entry forms:
// blank or negative fee/discount input is treated as zero, never an error.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
