package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportRevenueXLSX renders a revenue summary as an .xlsx workbook.
func ExportRevenueXLSX(summary *RevenueSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"date", "orders", "service_fees", "parts_revenue", "discounts", "grand_total"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, r := range summary.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.Date,
			r.Orders,
			r.ServiceFees.InexactFloat64(),
			r.PartsRevenue.InexactFloat64(),
			r.Discounts.InexactFloat64(),
			r.GrandTotal.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	// Totals line
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	totals := []interface{}{
		"TOTAL",
		summary.TotalOrders,
		summary.ServiceFees.InexactFloat64(),
		summary.PartsRevenue.InexactFloat64(),
		summary.Discounts.InexactFloat64(),
		summary.GrandTotal.InexactFloat64(),
	}
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportConsumptionXLSX renders part-consumption rows as an .xlsx workbook.
func ExportConsumptionXLSX(rows []ConsumptionRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"sparepart_id", "name", "base_unit", "qty_base", "revenue", "anomalies"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.SparepartID,
			r.Name,
			string(r.BaseUnit),
			r.QtyBase.InexactFloat64(),
			r.Revenue.InexactFloat64(),
			r.Anomalies,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
