package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/catalogs/customer"
)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	coll *mongo.Collection
}

// NewCustomerRepo creates the customer repository.
func NewCustomerRepo(s *Store) *CustomerRepo {
	return &CustomerRepo{coll: s.db.Collection(collCustomers)}
}

var _ customer.Repository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": c.ID, "version": c.Version - 1},
		c,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewConflict("customer was modified by another request").
			WithDetail("id", c.ID.String())
	}
	return nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	var c customer.Customer
	if err := r.coll.FindOne(ctx, bson.M{"_id": customerID}).Decode(&c); err != nil {
		return nil, fmt.Errorf("find customer %s: %w", customerID, err)
	}
	return &c, nil
}

func (r *CustomerRepo) List(ctx context.Context, includeDeleted bool) ([]*customer.Customer, error) {
	filter := bson.M{}
	if !includeDeleted {
		filter["deletion_mark"] = false
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	var out []*customer.Customer
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return out, nil
}

func (r *CustomerRepo) Search(ctx context.Context, query string, limit int) ([]*customer.Customer, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(query), Options: "i"}

	filter := bson.M{
		"deletion_mark": false,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"phone": pattern},
		},
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}

	var out []*customer.Customer
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return out, nil
}
