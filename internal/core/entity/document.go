package entity

import (
	"context"
	"time"

	"bengkel/internal/core/apperror"
)

// Document is the base type for dated business documents
// (estimates, work orders).
type Document struct {
	BaseDocument `bson:",inline"`

	// Number is the human-readable document number (e.g. SRV-2026-00012)
	Number string `bson:"number" json:"number"`

	// Date is the business date of the document, distinct from CreatedAt
	Date time.Time `bson:"date" json:"date"`
}

// NewDocument creates a new Document dated now.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
