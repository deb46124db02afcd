package estimate

import (
	"context"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/pkg/logger"
	"bengkel/pkg/numerator"
)

// NumberPrefix for estimate document numbers.
const NumberPrefix = "EST"

// Service provides business logic for estimates.
type Service struct {
	repo Repository
	seq  numerator.Sequencer
}

// NewService creates an estimate service.
func NewService(repo Repository, seq numerator.Sequencer) *Service {
	return &Service{repo: repo, seq: seq}
}

// Create validates, numbers, totals and persists a new estimate.
func (s *Service) Create(ctx context.Context, e *Estimate) error {
	if e.Status == "" {
		e.Status = StatusOpen
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}

	if e.Number == "" {
		number, err := numerator.NextNumber(ctx, s.seq, NumberPrefix, e.Date)
		if err != nil {
			return apperror.NormalizeDatabase(err)
		}
		e.Number = number
	}

	e.RecalculateTotals()

	if err := s.repo.Create(ctx, e); err != nil {
		return apperror.NormalizeDatabase(err)
	}

	logger.Info(ctx, "estimate created",
		"id", e.ID,
		"number", e.Number,
		"grand_total", e.GrandTotal.String(),
	)
	return nil
}

// Update persists edits to an open estimate and refreshes its totals.
// Converted or cancelled estimates are immutable.
func (s *Service) Update(ctx context.Context, e *Estimate) error {
	existing, err := s.repo.FindByID(ctx, e.ID)
	if err != nil {
		return apperror.NewNotFound("estimate", e.ID)
	}
	if existing.Status != StatusOpen {
		return apperror.NewBusinessRule(apperror.CodeOrderFinalized,
			"only open estimates can be edited").
			WithDetail("status", string(existing.Status))
	}

	if err := e.Validate(ctx); err != nil {
		return err
	}

	e.Number = existing.Number
	e.Status = existing.Status
	e.Version = existing.Version
	e.RecalculateTotals()
	e.Touch()

	if err := s.repo.Update(ctx, e); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}

// Get returns an estimate by id.
func (s *Service) Get(ctx context.Context, estimateID id.ID) (*Estimate, error) {
	e, err := s.repo.FindByID(ctx, estimateID)
	if err != nil {
		return nil, apperror.NewNotFound("estimate", estimateID)
	}
	return e, nil
}

// List returns estimates matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]*Estimate, error) {
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return out, nil
}

// Cancel marks an open estimate as cancelled.
func (s *Service) Cancel(ctx context.Context, estimateID id.ID) error {
	e, err := s.repo.FindByID(ctx, estimateID)
	if err != nil {
		return apperror.NewNotFound("estimate", estimateID)
	}
	if e.Status != StatusOpen {
		return apperror.NewBusinessRule(apperror.CodeOrderFinalized,
			"only open estimates can be cancelled").
			WithDetail("status", string(e.Status))
	}

	e.Status = StatusCancelled
	e.Touch()

	if err := s.repo.Update(ctx, e); err != nil {
		return apperror.NormalizeDatabase(err)
	}
	return nil
}
