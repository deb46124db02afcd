// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"github.com/shopspring/decimal"

	"bengkel/internal/core/id"
)

// LenientDecimal accepts JSON numbers, numeric strings, null, and the
// empty string. Anything unparseable decodes to zero rather than
// failing the whole request body. Admin forms send blanks freely.
type LenientDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *LenientDecimal) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Decimal = decimal.Zero
		return nil
	}
	if err := d.Decimal.UnmarshalJSON(data); err != nil {
		d.Decimal = decimal.Zero
	}
	return nil
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- List Response ---

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// NewListResponse creates a list response with the item count filled in.
func NewListResponse[T any](items []T) ListResponse {
	return ListResponse{Items: items, Count: len(items)}
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
