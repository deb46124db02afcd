package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/documents/workorder"
)

// WorkOrderRepo implements workorder.Repository.
type WorkOrderRepo struct {
	coll *mongo.Collection
}

// NewWorkOrderRepo creates the work order repository.
func NewWorkOrderRepo(s *Store) *WorkOrderRepo {
	return &WorkOrderRepo{coll: s.db.Collection(collWorkOrders)}
}

var _ workorder.Repository = (*WorkOrderRepo)(nil)

func (r *WorkOrderRepo) Create(ctx context.Context, w *workorder.WorkOrder) error {
	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewDuplicate("work order", "number", w.Number)
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

func (r *WorkOrderRepo) Update(ctx context.Context, w *workorder.WorkOrder) error {
	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": w.ID, "version": w.Version - 1},
		w,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewConflict("work order was modified by another request").
			WithDetail("id", w.ID.String())
	}
	return nil
}

func (r *WorkOrderRepo) FindByID(ctx context.Context, orderID id.ID) (*workorder.WorkOrder, error) {
	var w workorder.WorkOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": orderID}).Decode(&w); err != nil {
		return nil, fmt.Errorf("find work order %s: %w", orderID, err)
	}
	return &w, nil
}

func (r *WorkOrderRepo) List(ctx context.Context, f workorder.Filter) ([]*workorder.WorkOrder, error) {
	filter := bson.M{"deletion_mark": false}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CustomerID != nil {
		filter["customer_id"] = *f.CustomerID
	}
	if f.VehicleID != nil {
		filter["vehicle_id"] = *f.VehicleID
	}
	if f.FromDate != nil || f.ToDate != nil {
		dateRange := bson.M{}
		if f.FromDate != nil {
			dateRange["$gte"] = *f.FromDate
		}
		if f.ToDate != nil {
			dateRange["$lt"] = *f.ToDate
		}
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}

	var out []*workorder.WorkOrder
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode work orders: %w", err)
	}
	return out, nil
}
