package workorder

import (
	"context"
	"time"

	"bengkel/internal/core/id"
)

// Filter narrows work order listings.
type Filter struct {
	Status     Status
	CustomerID *id.ID
	VehicleID  *id.ID
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// Repository defines work order persistence.
type Repository interface {
	Create(ctx context.Context, w *WorkOrder) error
	Update(ctx context.Context, w *WorkOrder) error
	FindByID(ctx context.Context, id id.ID) (*WorkOrder, error)
	List(ctx context.Context, f Filter) ([]*WorkOrder, error)
}

// TxRunner executes a function inside a single atomic read-modify-write
// transaction against the backing store. Every repository call made with
// the callback's context joins that transaction; any returned error
// aborts the whole transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
