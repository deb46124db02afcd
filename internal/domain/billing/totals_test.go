package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"bengkel/internal/core/id"
	"bengkel/internal/domain/units"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pcsLine(price, qty string) UsedPart {
	return UsedPart{
		SparepartID: id.New(),
		Name:        "Busi NGK",
		UnitPrice:   dec(price),
		Qty:         dec(qty),
		DisplayUnit: units.UnitPCS,
		Conversion:  units.Conversion{BaseUnit: units.BasePCS},
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil, decimal.Zero, decimal.Zero)

	if !got.PartsTotal.IsZero() || !got.Subtotal.IsZero() || !got.GrandTotal.IsZero() {
		t.Errorf("empty bill must be all zero, got %+v", got)
	}
	if len(got.Anomalies) != 0 {
		t.Errorf("empty bill must have no anomalies")
	}
}

func TestComputeTotals_PackAndBottleLines(t *testing.T) {
	lines := []UsedPart{
		// 2 boxes of 10 brake pads at 25000/pc.
		{
			SparepartID: id.New(),
			Name:        "Kampas Rem",
			UnitPrice:   dec("25000"),
			Qty:         dec("2"),
			DisplayUnit: units.UnitPack,
			Conversion:  units.Conversion{BaseUnit: units.BasePCS, PcsPerPack: 10, PackLabel: "BOX"},
		},
		// 2 one-liter coolant bottles at 45000/liter.
		{
			SparepartID: id.New(),
			Name:        "Coolant",
			UnitPrice:   dec("45000"),
			Qty:         dec("2"),
			DisplayUnit: units.UnitBotol,
			Conversion:  units.Conversion{BaseUnit: units.BasePCS, LiterPerPcs: dec("1")},
		},
	}

	got := ComputeTotals(lines, dec("150000"), dec("40000"))

	if !got.PartsTotal.Equal(dec("590000")) {
		t.Errorf("parts total: want 590000, got %s", got.PartsTotal)
	}
	if !got.Subtotal.Equal(dec("740000")) {
		t.Errorf("subtotal: want 740000, got %s", got.Subtotal)
	}
	if !got.GrandTotal.Equal(dec("700000")) {
		t.Errorf("grand total: want 700000, got %s", got.GrandTotal)
	}
	if len(got.Anomalies) != 0 {
		t.Errorf("unexpected anomalies: %+v", got.Anomalies)
	}
}

func TestComputeTotals_ClampsNegativeFeeAndDiscount(t *testing.T) {
	lines := []UsedPart{pcsLine("1000", "3")}

	got := ComputeTotals(lines, dec("-500"), dec("-200"))

	if !got.Subtotal.Equal(dec("3000")) {
		t.Errorf("negative fee must clamp to zero, subtotal got %s", got.Subtotal)
	}
	if !got.GrandTotal.Equal(dec("3000")) {
		t.Errorf("negative discount must clamp to zero, grand total got %s", got.GrandTotal)
	}
}

func TestComputeTotals_GrandTotalFloorsAtZero(t *testing.T) {
	lines := []UsedPart{pcsLine("1000", "1")}

	got := ComputeTotals(lines, decimal.Zero, dec("999999"))

	if !got.GrandTotal.IsZero() {
		t.Errorf("grand total must floor at zero, got %s", got.GrandTotal)
	}
	// The floor applies to the payable amount only.
	if !got.Subtotal.Equal(dec("1000")) {
		t.Errorf("subtotal must stay intact, got %s", got.Subtotal)
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	lines := []UsedPart{pcsLine("25000", "4"), pcsLine("10000", "1.5")}

	first := ComputeTotals(lines, dec("50000"), dec("10000"))
	second := ComputeTotals(lines, dec("50000"), dec("10000"))

	if !first.GrandTotal.Equal(second.GrandTotal) || !first.PartsTotal.Equal(second.PartsTotal) {
		t.Errorf("recomputation changed the totals: %+v vs %+v", first, second)
	}
}

func TestComputeTotals_FlagsCorruptedLine(t *testing.T) {
	bad := UsedPart{
		SparepartID: id.New(),
		Name:        "Oli Mesin",
		UnitPrice:   dec("90000"),
		Qty:         dec("2"),
		// PACK against a bulk liter item is impossible; historical data
		// only.
		DisplayUnit: units.UnitPack,
		Conversion:  units.Conversion{BaseUnit: units.BaseLiter},
	}

	got := ComputeTotals([]UsedPart{bad}, decimal.Zero, decimal.Zero)

	// Fallback prices the line at the base-unit price instead of failing.
	if !got.PartsTotal.Equal(dec("180000")) {
		t.Errorf("fallback pricing: want 180000, got %s", got.PartsTotal)
	}
	if len(got.Anomalies) != 1 {
		t.Fatalf("want 1 anomaly, got %d", len(got.Anomalies))
	}
	if got.Anomalies[0].Index != 0 || got.Anomalies[0].DisplayUnit != units.UnitPack {
		t.Errorf("anomaly misreported: %+v", got.Anomalies[0])
	}
}

func TestLineSubtotal_NegativeQtyClamped(t *testing.T) {
	line := pcsLine("1000", "-5")

	got, anomalous := LineSubtotal(line)
	if anomalous {
		t.Error("negative qty is not a unit anomaly")
	}
	if !got.IsZero() {
		t.Errorf("negative qty must contribute zero, got %s", got)
	}
}

func TestNewLine(t *testing.T) {
	partID := id.New()
	conv := units.Conversion{BaseUnit: units.BasePCS, PcsPerPack: 10, PackLabel: "BOX"}

	line, err := NewLine(partID, "Kampas Rem", dec("25000"), conv, dec("2"), units.UnitPack, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !line.UnitPrice.Equal(dec("25000")) {
		t.Errorf("unit price must stay in base-unit terms, got %s", line.UnitPrice)
	}

	subtotal, anomalous := LineSubtotal(line)
	if anomalous {
		t.Error("valid line flagged anomalous")
	}
	if !subtotal.Equal(dec("500000")) {
		t.Errorf("want 500000, got %s", subtotal)
	}

	// Override replaces the base-unit price.
	override := dec("20000")
	line, err = NewLine(partID, "Kampas Rem", dec("25000"), conv, dec("2"), units.UnitPack, &override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	subtotal, _ = LineSubtotal(line)
	if !subtotal.Equal(dec("400000")) {
		t.Errorf("want 400000, got %s", subtotal)
	}

	// Invalid unit combinations are rejected at entry time.
	if _, err := NewLine(partID, "Coolant", dec("45000"), units.Conversion{BaseUnit: units.BaseLiter}, dec("1"), units.UnitBotol, nil); err == nil {
		t.Error("expected error for bottle against bulk liter item")
	}
}
