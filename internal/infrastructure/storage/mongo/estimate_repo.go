package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/documents/estimate"
)

// EstimateRepo implements estimate.Repository.
type EstimateRepo struct {
	coll *mongo.Collection
}

// NewEstimateRepo creates the estimate repository.
func NewEstimateRepo(s *Store) *EstimateRepo {
	return &EstimateRepo{coll: s.db.Collection(collEstimates)}
}

var _ estimate.Repository = (*EstimateRepo)(nil)

func (r *EstimateRepo) Create(ctx context.Context, e *estimate.Estimate) error {
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewDuplicate("estimate", "number", e.Number)
		}
		return fmt.Errorf("insert estimate: %w", err)
	}
	return nil
}

func (r *EstimateRepo) Update(ctx context.Context, e *estimate.Estimate) error {
	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": e.ID, "version": e.Version - 1},
		e,
	)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewConflict("estimate was modified by another request").
			WithDetail("id", e.ID.String())
	}
	return nil
}

func (r *EstimateRepo) FindByID(ctx context.Context, estimateID id.ID) (*estimate.Estimate, error) {
	var e estimate.Estimate
	if err := r.coll.FindOne(ctx, bson.M{"_id": estimateID}).Decode(&e); err != nil {
		return nil, fmt.Errorf("find estimate %s: %w", estimateID, err)
	}
	return &e, nil
}

func (r *EstimateRepo) List(ctx context.Context, f estimate.Filter) ([]*estimate.Estimate, error) {
	filter := bson.M{"deletion_mark": false}
	if f.Status != "" {
		filter["status"] = f.Status
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
		return nil, fmt.Errorf("list estimates: %w", err)
	}

	var out []*estimate.Estimate
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode estimates: %w", err)
	}
	return out, nil
}

// MarkConverted is a targeted update so it can run inside the work order
// submit transaction without racing a concurrent full-document edit.
func (r *EstimateRepo) MarkConverted(ctx context.Context, estimateID, workOrderID id.ID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": estimateID, "status": estimate.StatusOpen},
		bson.M{
			"$set": bson.M{
				"status":        estimate.StatusConverted,
				"work_order_id": workOrderID,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("mark estimate converted: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewBusinessRule(apperror.CodeOrderFinalized,
			"estimate is no longer open").WithDetail("id", estimateID.String())
	}
	return nil
}
