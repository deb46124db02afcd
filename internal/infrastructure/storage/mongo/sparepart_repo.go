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
	"bengkel/internal/domain/catalogs/sparepart"
)

// SparepartRepo implements sparepart.Repository.
type SparepartRepo struct {
	coll *mongo.Collection
}

// NewSparepartRepo creates the spare-part repository.
func NewSparepartRepo(s *Store) *SparepartRepo {
	return &SparepartRepo{coll: s.db.Collection(collSpareparts)}
}

var _ sparepart.Repository = (*SparepartRepo)(nil)

func (r *SparepartRepo) Create(ctx context.Context, item *sparepart.Sparepart) error {
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewDuplicate("sparepart", "code", item.Code)
		}
		return fmt.Errorf("insert sparepart: %w", err)
	}
	return nil
}

// Update replaces the document, matching on the previous version so a
// concurrent writer loses cleanly instead of silently overwriting.
func (r *SparepartRepo) Update(ctx context.Context, item *sparepart.Sparepart) error {
	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": item.ID, "version": item.Version - 1},
		item,
	)
	if err != nil {
		return fmt.Errorf("update sparepart: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewConflict("sparepart was modified by another request").
			WithDetail("id", item.ID.String())
	}
	return nil
}

func (r *SparepartRepo) FindByID(ctx context.Context, itemID id.ID) (*sparepart.Sparepart, error) {
	var item sparepart.Sparepart
	if err := r.coll.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
		return nil, fmt.Errorf("find sparepart %s: %w", itemID, err)
	}
	return &item, nil
}

func (r *SparepartRepo) FindByCode(ctx context.Context, code string) (*sparepart.Sparepart, error) {
	var item sparepart.Sparepart
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&item); err != nil {
		return nil, fmt.Errorf("find sparepart by code %s: %w", code, err)
	}
	return &item, nil
}

func (r *SparepartRepo) List(ctx context.Context, f sparepart.Filter) ([]*sparepart.Sparepart, error) {
	filter := bson.M{}
	if !f.IncludeDeleted {
		filter["deletion_mark"] = false
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list spareparts: %w", err)
	}

	var items []*sparepart.Sparepart
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode spareparts: %w", err)
	}
	return items, nil
}

func (r *SparepartRepo) Search(ctx context.Context, query string, limit int) ([]*sparepart.Sparepart, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(query), Options: "i"}

	filter := bson.M{
		"deletion_mark": false,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"code": pattern},
			bson.M{"brand": pattern},
			bson.M{"part_number": pattern},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search spareparts: %w", err)
	}

	var items []*sparepart.Sparepart
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode spareparts: %w", err)
	}
	return items, nil
}

func (r *SparepartRepo) ListCodes(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "code", bson.M{"deletion_mark": false})
	if err != nil {
		return nil, fmt.Errorf("list sparepart codes: %w", err)
	}

	codes := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			codes = append(codes, s)
		}
	}
	return codes, nil
}
