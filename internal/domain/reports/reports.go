// Package reports aggregates paid work orders into revenue and
// part-consumption figures. Historical lines may have been recorded in
// mixed display units; everything is normalized to base units through the
// conversion engine before summing.
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"bengkel/internal/core/apperror"
	"bengkel/internal/domain/billing"
	"bengkel/internal/domain/documents/workorder"
	"bengkel/internal/domain/units"
	"bengkel/pkg/logger"
)

// RevenueRow is one day of revenue.
type RevenueRow struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	Orders       int             `json:"orders"`
	ServiceFees  decimal.Decimal `json:"serviceFees"`
	PartsRevenue decimal.Decimal `json:"partsRevenue"`
	Discounts    decimal.Decimal `json:"discounts"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
}

// RevenueSummary is the revenue report over a date range.
type RevenueSummary struct {
	From time.Time    `json:"from"`
	To   time.Time    `json:"to"`
	Rows []RevenueRow `json:"rows"`

	TotalOrders  int             `json:"totalOrders"`
	ServiceFees  decimal.Decimal `json:"serviceFees"`
	PartsRevenue decimal.Decimal `json:"partsRevenue"`
	Discounts    decimal.Decimal `json:"discounts"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
}

// ConsumptionRow is the aggregated consumption of one spare part.
type ConsumptionRow struct {
	SparepartID string          `json:"sparepartId"`
	Name        string          `json:"name"`
	BaseUnit    units.BaseUnit  `json:"baseUnit"`
	QtyBase     decimal.Decimal `json:"qtyBase"`
	Revenue     decimal.Decimal `json:"revenue"`

	// Anomalies counts lines whose recorded unit data was invalid and had
	// to be aggregated with the safe fallback.
	Anomalies int `json:"anomalies,omitempty"`
}

// DailySnapshot is a persisted one-day revenue summary, written by the
// nightly snapshot job.
type DailySnapshot struct {
	Date         string          `bson:"_id" json:"date"` // YYYY-MM-DD
	Orders       int             `bson:"orders" json:"orders"`
	ServiceFees  decimal.Decimal `bson:"service_fees" json:"serviceFees"`
	PartsRevenue decimal.Decimal `bson:"parts_revenue" json:"partsRevenue"`
	Discounts    decimal.Decimal `bson:"discounts" json:"discounts"`
	GrandTotal   decimal.Decimal `bson:"grand_total" json:"grandTotal"`
	GeneratedAt  time.Time       `bson:"generated_at" json:"generatedAt"`
}

// SnapshotRepository persists daily revenue snapshots.
type SnapshotRepository interface {
	Save(ctx context.Context, snap DailySnapshot) error
}

// Service builds the reports.
type Service struct {
	orders    workorder.Repository
	snapshots SnapshotRepository
}

// NewService creates a reports service.
func NewService(orders workorder.Repository, snapshots SnapshotRepository) *Service {
	return &Service{orders: orders, snapshots: snapshots}
}

// paidOrders returns the paid work orders in [from, to).
func (s *Service) paidOrders(ctx context.Context, from, to time.Time) ([]*workorder.WorkOrder, error) {
	orders, err := s.orders.List(ctx, workorder.Filter{
		Status:   workorder.StatusPaid,
		FromDate: &from,
		ToDate:   &to,
	})
	if err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}
	return orders, nil
}

// Revenue aggregates paid work orders per day over [from, to).
func (s *Service) Revenue(ctx context.Context, from, to time.Time) (*RevenueSummary, error) {
	orders, err := s.paidOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*RevenueRow)
	summary := &RevenueSummary{
		From:         from,
		To:           to,
		ServiceFees:  decimal.Zero,
		PartsRevenue: decimal.Zero,
		Discounts:    decimal.Zero,
		GrandTotal:   decimal.Zero,
	}

	for _, w := range orders {
		day := w.Date.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &RevenueRow{
				Date:         day,
				ServiceFees:  decimal.Zero,
				PartsRevenue: decimal.Zero,
				Discounts:    decimal.Zero,
				GrandTotal:   decimal.Zero,
			}
			byDay[day] = row
		}

		row.Orders++
		row.ServiceFees = row.ServiceFees.Add(w.ServiceFee)
		row.PartsRevenue = row.PartsRevenue.Add(w.PartsTotal)
		row.Discounts = row.Discounts.Add(w.Discount)
		row.GrandTotal = row.GrandTotal.Add(w.GrandTotal)

		summary.TotalOrders++
		summary.ServiceFees = summary.ServiceFees.Add(w.ServiceFee)
		summary.PartsRevenue = summary.PartsRevenue.Add(w.PartsTotal)
		summary.Discounts = summary.Discounts.Add(w.Discount)
		summary.GrandTotal = summary.GrandTotal.Add(w.GrandTotal)
	}

	summary.Rows = make([]RevenueRow, 0, len(byDay))
	for _, row := range byDay {
		summary.Rows = append(summary.Rows, *row)
	}
	sort.Slice(summary.Rows, func(i, j int) bool {
		return summary.Rows[i].Date < summary.Rows[j].Date
	})

	return summary, nil
}

// PartConsumption aggregates quantity consumed and revenue per spare part
// over [from, to). Quantities are normalized to base units; lines recorded
// before base quantities were stored are converted on the fly, and lines
// with corrupted unit data are counted with the entered quantity and
// flagged rather than failing the whole report.
func (s *Service) PartConsumption(ctx context.Context, from, to time.Time) ([]ConsumptionRow, error) {
	orders, err := s.paidOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byPart := make(map[string]*ConsumptionRow)

	for _, w := range orders {
		for _, line := range w.Lines {
			key := line.SparepartID.String()
			row, ok := byPart[key]
			if !ok {
				row = &ConsumptionRow{
					SparepartID: key,
					Name:        line.Name,
					BaseUnit:    line.Conversion.BaseUnit,
					QtyBase:     decimal.Zero,
					Revenue:     decimal.Zero,
				}
				byPart[key] = row
			}

			qtyBase := line.QtyBase
			if qtyBase.IsZero() && !line.Qty.IsZero() {
				converted, err := line.BaseQuantity()
				if err != nil {
					logger.Warn(ctx, "consumption report: invalid unit data on historical line",
						"work_order", w.Number,
						"sparepart_id", key,
						"unit", string(line.DisplayUnit),
					)
					row.Anomalies++
					converted = line.Qty
				}
				qtyBase = converted
			}
			row.QtyBase = row.QtyBase.Add(qtyBase)

			lineTotal, anomalous := billing.LineSubtotal(line)
			if anomalous {
				row.Anomalies++
			}
			row.Revenue = row.Revenue.Add(lineTotal)
		}
	}

	rows := make([]ConsumptionRow, 0, len(byPart))
	for _, row := range byPart {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})

	return rows, nil
}

// SnapshotDay computes and stores the revenue snapshot for one calendar day.
func (s *Service) SnapshotDay(ctx context.Context, day time.Time) (*DailySnapshot, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	summary, err := s.Revenue(ctx, from, to)
	if err != nil {
		return nil, err
	}

	snap := DailySnapshot{
		Date:         from.Format("2006-01-02"),
		Orders:       summary.TotalOrders,
		ServiceFees:  summary.ServiceFees,
		PartsRevenue: summary.PartsRevenue,
		Discounts:    summary.Discounts,
		GrandTotal:   summary.GrandTotal,
		GeneratedAt:  time.Now().UTC(),
	}

	if err := s.snapshots.Save(ctx, snap); err != nil {
		return nil, apperror.NormalizeDatabase(err)
	}

	logger.Info(ctx, "daily revenue snapshot stored",
		"date", snap.Date,
		"orders", snap.Orders,
		"grand_total", snap.GrandTotal.String(),
	)
	return &snap, nil
}
