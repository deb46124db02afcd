package workorder

import (
	"context"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/catalogs/sparepart"
	"bengkel/internal/domain/documents/estimate"
	"bengkel/pkg/logger"
	"bengkel/pkg/numerator"
)

// NumberPrefix for work order document numbers.
const NumberPrefix = "SRV"

// Service provides business logic for work orders, including the stock
// deduction transaction at submit time.
type Service struct {
	repo      Repository
	parts     sparepart.Repository
	estimates estimate.Repository
	tx        TxRunner
	seq       numerator.Sequencer
}

// NewService creates a work order service.
func NewService(
	repo Repository,
	parts sparepart.Repository,
	estimates estimate.Repository,
	tx TxRunner,
	seq numerator.Sequencer,
) *Service {
	return &Service{
		repo:      repo,
		parts:     parts,
		estimates: estimates,
		tx:        tx,
		seq:       seq,
	}
}

// Submit validates the work order, computes its totals and persists it
// while deducting every line's converted base quantity from stock, all
// inside one transaction.
//
// Ordering inside the transaction follows the stock invariant: all
// affected items are read before any write, each line is converted to
// base units and checked against the on-hand quantity, and any shortage
// or missing catalog entry aborts the entire transaction. Partial
// application is forbidden.
func (s *Service) Submit(ctx context.Context, w *WorkOrder) error {
	if w.Status == "" {
		w.Status = StatusWaiting
	}
	if err := w.Validate(ctx); err != nil {
		return err
	}

	number, err := numerator.NextNumber(ctx, s.seq, NumberPrefix, w.Date)
	if err != nil {
		return apperror.NormalizeDatabase(err)
	}
	w.Number = number

	w.RecalculateTotals()

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		// Phase 1: read every affected item.
		items := make(map[id.ID]*sparepart.Sparepart, len(w.Lines))
		for _, line := range w.Lines {
			if _, ok := items[line.SparepartID]; ok {
				continue
			}
			item, err := s.parts.FindByID(txCtx, line.SparepartID)
			if err != nil {
				return apperror.NewNotFound("sparepart", line.SparepartID).WithCause(err)
			}
			items[line.SparepartID] = item
		}

		// Phase 2: convert, check and apply the decrements in memory.
		for i := range w.Lines {
			line := &w.Lines[i]
			item := items[line.SparepartID]

			qtyBase, err := line.BaseQuantity()
			if err != nil {
				return err
			}

			if err := item.Deduct(qtyBase); err != nil {
				return err
			}
			line.QtyBase = qtyBase
		}

		// Phase 3: write the decrements and the document.
		for _, item := range items {
			item.Touch()
			if err := s.parts.Update(txCtx, item); err != nil {
				return apperror.NormalizeDatabase(err)
			}
		}

		if err := s.repo.Create(txCtx, w); err != nil {
			return apperror.NormalizeDatabase(err)
		}

		if w.EstimateID != nil {
			if err := s.estimates.MarkConverted(txCtx, *w.EstimateID, w.ID); err != nil {
				return apperror.NormalizeDatabase(err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "work order submitted",
		"id", w.ID,
		"number", w.Number,
		"lines", len(w.Lines),
		"grand_total", w.GrandTotal.String(),
	)
	return nil
}

// Get returns a work order by id.
func (s *Service) Get(ctx context.Context, orderID id.ID) (*WorkOrder, error) {
	w, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperror.NewNotFound("work order", orderID)
	}
	return w, nil
}

// List returns work orders matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]*WorkOrder, error) {
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return out, nil
}

// UpdateStatus moves the work order forward through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, orderID id.ID, next Status) (*WorkOrder, error) {
	if _, ok := statusOrder[next]; !ok {
		return nil, apperror.NewValidation("invalid status").
			WithDetail("status", string(next))
	}

	w, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperror.NewNotFound("work order", orderID)
	}

	if !w.CanTransition(next) {
		return nil, apperror.NewBusinessRule(apperror.CodeOrderFinalized,
			"status can only move forward").
			WithDetail("from", string(w.Status)).
			WithDetail("to", string(next))
	}

	w.Status = next
	w.Touch()

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}

	logger.Info(ctx, "work order status updated",
		"id", w.ID,
		"number", w.Number,
		"status", string(next),
	)
	return w, nil
}
