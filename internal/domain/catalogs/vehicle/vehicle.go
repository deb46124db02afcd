// Package vehicle provides the vehicle catalog. Every vehicle belongs to
// one customer and shows up on order forms as "PLATE - MAKE".
package vehicle

import (
	"context"
	"fmt"
	"strings"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/entity"
	"bengkel/internal/core/id"
)

// Vehicle is a customer's vehicle.
type Vehicle struct {
	entity.Catalog `bson:",inline"`

	CustomerID id.ID `bson:"customer_id" json:"customerId"`

	PlateNumber string `bson:"plate_number" json:"plateNumber"`
	Make        string `bson:"make" json:"make"`
	Model       string `bson:"model,omitempty" json:"model,omitempty"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
}

// New creates a vehicle for a customer. The catalog Name doubles as the
// display label.
func New(customerID id.ID, plate, vehicleMake string) *Vehicle {
	v := &Vehicle{
		Catalog:     entity.NewCatalog("", ""),
		CustomerID:  customerID,
		PlateNumber: strings.ToUpper(strings.TrimSpace(plate)),
		Make:        vehicleMake,
	}
	v.Name = v.Label()
	return v
}

// Label renders the order-form display label.
func (v *Vehicle) Label() string {
	return fmt.Sprintf("%s - %s", v.PlateNumber, v.Make)
}

// Validate implements entity.Validatable.
func (v *Vehicle) Validate(ctx context.Context) error {
	if id.IsNil(v.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if v.PlateNumber == "" {
		return apperror.NewValidation("plate number is required").
			WithDetail("field", "plateNumber")
	}
	if v.Make == "" {
		return apperror.NewValidation("make is required").
			WithDetail("field", "make")
	}
	return nil
}

// Repository defines vehicle persistence.
type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id id.ID) (*Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*Vehicle, error)
	ListByCustomer(ctx context.Context, customerID id.ID) ([]*Vehicle, error)
	List(ctx context.Context, includeDeleted bool) ([]*Vehicle, error)
}

// Service provides vehicle business logic.
type Service struct {
	repo Repository
}

// NewService creates a vehicle service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, v *Vehicle) error {
	v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))
	v.Name = v.Label()
	if err := v.Validate(ctx); err != nil {
		return err
	}
	if existing, err := s.repo.FindByPlate(ctx, v.PlateNumber); err == nil && existing != nil {
		return apperror.NewDuplicate("vehicle", "plateNumber", v.PlateNumber)
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, v *Vehicle) error {
	v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))
	v.Name = v.Label()
	if err := v.Validate(ctx); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, v.ID)
	if err != nil {
		return apperror.NewNotFound("vehicle", v.ID)
	}
	v.Version = existing.Version
	v.Touch()
	if err := s.repo.Update(ctx, v); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, vehicleID id.ID) (*Vehicle, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, apperror.NewNotFound("vehicle", vehicleID)
	}
	return v, nil
}

func (s *Service) List(ctx context.Context) ([]*Vehicle, error) {
	out, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return out, nil
}

// ListByCustomer returns a customer's vehicles for the order-form selector.
func (s *Service) ListByCustomer(ctx context.Context, customerID id.ID) ([]*Vehicle, error) {
	out, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, vehicleID id.ID) error {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return apperror.NewNotFound("vehicle", vehicleID)
	}
	v.MarkDeleted()
	v.Touch()
	if err := s.repo.Update(ctx, v); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}
