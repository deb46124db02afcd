package estimate

import (
	"context"
	"time"

	"bengkel/internal/core/id"
)

// Filter narrows estimate listings.
type Filter struct {
	Status   Status
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}

// Repository defines estimate persistence.
type Repository interface {
	Create(ctx context.Context, e *Estimate) error
	Update(ctx context.Context, e *Estimate) error
	FindByID(ctx context.Context, id id.ID) (*Estimate, error)
	List(ctx context.Context, f Filter) ([]*Estimate, error)

	// MarkConverted links the estimate to its work order. Called inside
	// the work order submit transaction.
	MarkConverted(ctx context.Context, estimateID, workOrderID id.ID) error
}
