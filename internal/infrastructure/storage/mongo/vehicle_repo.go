package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/catalogs/vehicle"
)

// VehicleRepo implements vehicle.Repository.
type VehicleRepo struct {
	coll *mongo.Collection
}

// NewVehicleRepo creates the vehicle repository.
func NewVehicleRepo(s *Store) *VehicleRepo {
	return &VehicleRepo{coll: s.db.Collection(collVehicles)}
}

var _ vehicle.Repository = (*VehicleRepo)(nil)

func (r *VehicleRepo) Create(ctx context.Context, v *vehicle.Vehicle) error {
	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewDuplicate("vehicle", "plateNumber", v.PlateNumber)
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepo) Update(ctx context.Context, v *vehicle.Vehicle) error {
	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": v.ID, "version": v.Version - 1},
		v,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewConflict("vehicle was modified by another request").
			WithDetail("id", v.ID.String())
	}
	return nil
}

func (r *VehicleRepo) FindByID(ctx context.Context, vehicleID id.ID) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	if err := r.coll.FindOne(ctx, bson.M{"_id": vehicleID}).Decode(&v); err != nil {
		return nil, fmt.Errorf("find vehicle %s: %w", vehicleID, err)
	}
	return &v, nil
}

func (r *VehicleRepo) FindByPlate(ctx context.Context, plate string) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := r.coll.FindOne(ctx, bson.M{
		"plate_number":  plate,
		"deletion_mark": false,
	}).Decode(&v)
	if err != nil {
		return nil, fmt.Errorf("find vehicle by plate %s: %w", plate, err)
	}
	return &v, nil
}

func (r *VehicleRepo) ListByCustomer(ctx context.Context, customerID id.ID) ([]*vehicle.Vehicle, error) {
	cur, err := r.coll.Find(ctx, bson.M{
		"customer_id":   customerID,
		"deletion_mark": false,
	}, options.Find().SetSort(bson.D{{Key: "plate_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list vehicles for customer %s: %w", customerID, err)
	}

	var out []*vehicle.Vehicle
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return out, nil
}

func (r *VehicleRepo) List(ctx context.Context, includeDeleted bool) ([]*vehicle.Vehicle, error) {
	filter := bson.M{}
	if !includeDeleted {
		filter["deletion_mark"] = false
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "plate_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	var out []*vehicle.Vehicle
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return out, nil
}
