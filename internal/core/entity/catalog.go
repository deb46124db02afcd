package entity

import (
	"context"

	"bengkel/internal/core/apperror"
)

// Catalog is the base type for reference data: spare parts, customers, vehicles.
type Catalog struct {
	BaseEntity `bson:",inline"`

	// Code is a human-readable identifier (unique per catalog)
	Code string `bson:"code" json:"code"`

	// Name is the display name
	Name string `bson:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Code is auto-allocated at save time when empty

	return nil
}
