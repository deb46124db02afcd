package sparepart

import (
	"context"

	"bengkel/internal/core/id"
)

// Filter narrows List results.
type Filter struct {
	Category       string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// Repository defines the interface for Sparepart persistence.
// Pages never fetch whole collections ad hoc; every read goes through
// these typed queries.
type Repository interface {
	Create(ctx context.Context, s *Sparepart) error

	// Update persists changes with an optimistic version check.
	Update(ctx context.Context, s *Sparepart) error

	FindByID(ctx context.Context, id id.ID) (*Sparepart, error)
	FindByCode(ctx context.Context, code string) (*Sparepart, error)

	List(ctx context.Context, f Filter) ([]*Sparepart, error)

	// Search matches name, code, brand or part number by prefix.
	Search(ctx context.Context, query string, limit int) ([]*Sparepart, error)

	// ListCodes returns the codes currently in use. Soft-deleted entries
	// are excluded: deleting an item frees its code for reuse.
	ListCodes(ctx context.Context) ([]string, error)
}
