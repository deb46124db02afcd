// Package customer provides the customer catalog.
package customer

import (
	"context"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/entity"
	"bengkel/internal/core/id"
)

// Customer is a workshop customer.
type Customer struct {
	entity.Catalog `bson:",inline"`

	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

// New creates a customer entry.
func New(name string) *Customer {
	return &Customer{Catalog: entity.NewCatalog("", name)}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// Repository defines customer persistence.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id id.ID) (*Customer, error)
	List(ctx context.Context, includeDeleted bool) ([]*Customer, error)
	Search(ctx context.Context, query string, limit int) ([]*Customer, error)
}

// Service provides customer business logic.
type Service struct {
	repo Repository
}

// NewService creates a customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, c.ID)
	if err != nil {
		return apperror.NewNotFound("customer", c.ID)
	}
	c.Version = existing.Version
	c.Touch()
	if err := s.repo.Update(ctx, c); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	out, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return out, nil
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]*Customer, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	out, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return out, nil
}

// Delete soft-deletes a customer; historical documents keep their own
// customer name snapshot.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return apperror.NewNotFound("customer", customerID)
	}
	c.MarkDeleted()
	c.Touch()
	if err := s.repo.Update(ctx, c); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}
