package handlers

import (
	"context"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/billing"
	"bengkel/internal/domain/catalogs/sparepart"
	"bengkel/internal/infrastructure/http/v1/dto"
)

// LineResolver turns request lines into priced document lines by
// looking up each spare part in the catalog.
type LineResolver struct {
	parts *sparepart.Service
}

// NewLineResolver creates the resolver shared by the document and
// billing handlers.
func NewLineResolver(parts *sparepart.Service) *LineResolver {
	return &LineResolver{parts: parts}
}

// Resolve maps every request line to a billing line. Unknown parts and
// invalid unit combinations fail the whole request.
func (r *LineResolver) Resolve(ctx context.Context, reqs []dto.LineRequest) ([]billing.UsedPart, error) {
	lines := make([]billing.UsedPart, 0, len(reqs))
	for i, req := range reqs {
		partID, err := id.Parse(req.SparepartID)
		if err != nil {
			return nil, apperror.NewValidation("invalid sparepart id").
				WithDetail("line", i).
				WithDetail("sparepartId", req.SparepartID)
		}

		item, err := r.parts.Get(ctx, partID)
		if err != nil {
			return nil, err
		}

		line, err := billing.NewLine(
			item.ID,
			item.Name,
			item.PriceSell,
			item.Conversion,
			req.Qty.Decimal,
			req.DisplayUnit,
			req.PriceOverride(),
		)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("line", i)
			}
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
