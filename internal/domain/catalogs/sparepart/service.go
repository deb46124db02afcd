package sparepart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/units"
	"bengkel/pkg/logger"
	"bengkel/pkg/numerator"
)

// CodePrefix for spare-part catalog codes (KP-001, KP-002, ...).
const CodePrefix = "KP"

// Service provides business logic for the spare-part catalog.
type Service struct {
	repo    Repository
	codeCfg numerator.Config
}

// NewService creates a new Sparepart service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		codeCfg: numerator.DefaultConfig(CodePrefix),
	}
}

// Create validates the entry, allocates a code when none is given and
// persists it.
func (s *Service) Create(ctx context.Context, item *Sparepart) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	if item.Code == "" {
		codes, err := s.repo.ListCodes(ctx)
		if err != nil {
			return apperror.NormalizeDatabase(err)
		}
		item.Code = numerator.NextCode(s.codeCfg, codes)
	} else if existing, err := s.repo.FindByCode(ctx, item.Code); err == nil && existing != nil {
		return apperror.NewDuplicate("sparepart", "code", item.Code)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return apperror.NormalizeDatabase(err)
	}

	logger.Info(ctx, "sparepart created",
		"id", item.ID,
		"code", item.Code,
		"name", item.Name,
	)
	return nil
}

// Update persists catalog edits. The base unit is immutable once stock
// movements exist against the item.
func (s *Service) Update(ctx context.Context, item *Sparepart) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, item.ID)
	if err != nil {
		return apperror.NewNotFound("sparepart", item.ID)
	}

	if existing.StockMoved && existing.Conversion.BaseUnit != item.Conversion.BaseUnit {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"base unit cannot change after stock movements exist").
			WithDetail("field", "baseUnit")
	}

	// Code and movement flag are not editable through updates.
	item.Code = existing.Code
	item.StockMoved = existing.StockMoved
	item.UpdatedAt = time.Now().UTC()
	item.Touch()

	if err := s.repo.Update(ctx, item); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}

// Get returns the catalog entry by id.
func (s *Service) Get(ctx context.Context, itemID id.ID) (*Sparepart, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, apperror.NewNotFound("sparepart", itemID)
	}
	return item, nil
}

// List returns catalog entries matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]*Sparepart, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return items, nil
}

// Search matches entries by name/code/brand/part-number prefix.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*Sparepart, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	items, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return items, nil
}

// Restock adds stock in base units and optionally records a new buy price.
func (s *Service) Restock(ctx context.Context, itemID id.ID, qtyBase decimal.Decimal, priceBuy *decimal.Decimal) (*Sparepart, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, apperror.NewNotFound("sparepart", itemID)
	}

	if err := item.Restock(qtyBase); err != nil {
		return nil, err
	}
	if priceBuy != nil {
		if priceBuy.IsNegative() {
			return nil, apperror.NewValidation("buy price cannot be negative")
		}
		item.PriceBuy = *priceBuy
	}
	item.UpdatedAt = time.Now().UTC()
	item.Touch()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}

	logger.Info(ctx, "sparepart restocked",
		"id", item.ID,
		"code", item.Code,
		"qty_base", qtyBase.String(),
		"stock_base", item.StockBase.String(),
	)
	return item, nil
}

// Delete soft-deletes the entry. Historical orders keep their own copies
// of the conversion factors, so the catalog entry can disappear safely.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return apperror.NewNotFound("sparepart", itemID)
	}

	item.MarkDeleted()
	item.UpdatedAt = time.Now().UTC()
	item.Touch()

	if err := s.repo.Update(ctx, item); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}

// UnitOptions returns the selectable display units for an item, used by
// the order forms to populate per-line unit selectors.
func (s *Service) UnitOptions(ctx context.Context, itemID id.ID) ([]units.DisplayUnit, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, apperror.NewNotFound("sparepart", itemID)
	}
	return item.AvailableUnits(), nil
}
