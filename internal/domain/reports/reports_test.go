package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bengkel/internal/core/id"
	"bengkel/internal/domain/billing"
	"bengkel/internal/domain/documents/workorder"
	"bengkel/internal/domain/units"
)

type fakeOrderRepo struct {
	orders []*workorder.WorkOrder
}

func (f *fakeOrderRepo) Create(_ context.Context, w *workorder.WorkOrder) error {
	f.orders = append(f.orders, w)
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, _ *workorder.WorkOrder) error { return nil }

func (f *fakeOrderRepo) FindByID(_ context.Context, _ id.ID) (*workorder.WorkOrder, error) {
	return nil, nil
}

func (f *fakeOrderRepo) List(_ context.Context, flt workorder.Filter) ([]*workorder.WorkOrder, error) {
	var out []*workorder.WorkOrder
	for _, w := range f.orders {
		if flt.Status != "" && w.Status != flt.Status {
			continue
		}
		if flt.FromDate != nil && w.Date.Before(*flt.FromDate) {
			continue
		}
		if flt.ToDate != nil && !w.Date.Before(*flt.ToDate) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

type fakeSnapshotRepo struct {
	saved []DailySnapshot
}

func (f *fakeSnapshotRepo) Save(_ context.Context, snap DailySnapshot) error {
	f.saved = append(f.saved, snap)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func paidOrder(date time.Time, fee, discount string, lines ...billing.UsedPart) *workorder.WorkOrder {
	w := workorder.New(id.New(), "Budi", id.New(), "B 1234 ABC - Avanza")
	w.Date = date
	w.Status = workorder.StatusPaid
	w.Lines = lines
	w.ServiceFee = dec(fee)
	w.Discount = dec(discount)
	w.RecalculateTotals()
	return w
}

func pcsLine(partID id.ID, name, qty, price string) billing.UsedPart {
	return billing.UsedPart{
		SparepartID: partID,
		Name:        name,
		UnitPrice:   dec(price),
		Qty:         dec(qty),
		QtyBase:     dec(qty),
		DisplayUnit: units.UnitPCS,
		Conversion:  units.Conversion{BaseUnit: units.BasePCS},
	}
}

func TestRevenue_GroupsPerDay(t *testing.T) {
	oilID, plugID := id.New(), id.New()
	repo := &fakeOrderRepo{orders: []*workorder.WorkOrder{
		paidOrder(day(2026, time.March, 2).Add(9*time.Hour), "100000", "0",
			pcsLine(oilID, "Oli Mesin", "4", "85000")),
		paidOrder(day(2026, time.March, 2).Add(15*time.Hour), "50000", "20000",
			pcsLine(plugID, "Busi NGK", "4", "30000")),
		paidOrder(day(2026, time.March, 3), "75000", "0",
			pcsLine(oilID, "Oli Mesin", "2", "85000")),
	}}
	// Unpaid orders never count.
	open := paidOrder(day(2026, time.March, 2), "999999", "0")
	open.Status = workorder.StatusWaiting
	repo.orders = append(repo.orders, open)

	svc := NewService(repo, &fakeSnapshotRepo{})
	summary, err := svc.Revenue(context.Background(), day(2026, time.March, 1), day(2026, time.March, 8))
	require.NoError(t, err)

	require.Len(t, summary.Rows, 2)
	assert.Equal(t, "2026-03-02", summary.Rows[0].Date)
	assert.Equal(t, 2, summary.Rows[0].Orders)
	assert.True(t, summary.Rows[0].ServiceFees.Equal(dec("150000")))
	// 4*85000 + 4*30000.
	assert.True(t, summary.Rows[0].PartsRevenue.Equal(dec("460000")))
	assert.True(t, summary.Rows[0].Discounts.Equal(dec("20000")))
	assert.True(t, summary.Rows[0].GrandTotal.Equal(dec("590000")))

	assert.Equal(t, "2026-03-03", summary.Rows[1].Date)
	assert.Equal(t, 1, summary.Rows[1].Orders)

	assert.Equal(t, 3, summary.TotalOrders)
	assert.True(t, summary.GrandTotal.Equal(dec("835000")))
}

func TestRevenue_EmptyRange(t *testing.T) {
	svc := NewService(&fakeOrderRepo{}, &fakeSnapshotRepo{})
	summary, err := svc.Revenue(context.Background(), day(2026, time.January, 1), day(2026, time.February, 1))
	require.NoError(t, err)
	assert.Empty(t, summary.Rows)
	assert.Zero(t, summary.TotalOrders)
	assert.True(t, summary.GrandTotal.IsZero())
}

func TestPartConsumption_NormalizesAndSorts(t *testing.T) {
	oilID, padsID := id.New(), id.New()

	// A pack line recorded before base quantities were stored: QtyBase is
	// zero and must be derived from the conversion snapshot.
	packLine := billing.UsedPart{
		SparepartID: padsID,
		Name:        "Kampas Rem",
		UnitPrice:   dec("25000"),
		Qty:         dec("2"),
		DisplayUnit: units.UnitPack,
		Conversion:  units.Conversion{BaseUnit: units.BasePCS, PcsPerPack: 10, PackLabel: "BOX"},
	}

	repo := &fakeOrderRepo{orders: []*workorder.WorkOrder{
		paidOrder(day(2026, time.March, 2), "0", "0",
			pcsLine(oilID, "Oli Mesin", "4", "85000"), packLine),
		paidOrder(day(2026, time.March, 3), "0", "0",
			pcsLine(oilID, "Oli Mesin", "2", "85000")),
	}}

	svc := NewService(repo, &fakeSnapshotRepo{})
	rows, err := svc.PartConsumption(context.Background(), day(2026, time.March, 1), day(2026, time.March, 8))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by revenue, highest first: oil 6*85000 over pads 2*10*25000.
	assert.Equal(t, "Oli Mesin", rows[0].Name)
	assert.True(t, rows[0].QtyBase.Equal(dec("6")))
	assert.True(t, rows[0].Revenue.Equal(dec("510000")))

	assert.Equal(t, "Kampas Rem", rows[1].Name)
	assert.True(t, rows[1].QtyBase.Equal(dec("20")), "pack line normalized to pieces: got %s", rows[1].QtyBase)
	assert.True(t, rows[1].Revenue.Equal(dec("500000")))
	assert.Zero(t, rows[1].Anomalies)
}

func TestPartConsumption_FlagsCorruptedLine(t *testing.T) {
	partID := id.New()
	// PACK against a bulk item is impossible to convert; the entered
	// quantity is used as-is and the line is flagged.
	bad := billing.UsedPart{
		SparepartID: partID,
		Name:        "Oli Curah",
		UnitPrice:   dec("90000"),
		Qty:         dec("3"),
		DisplayUnit: units.UnitPack,
		Conversion:  units.Conversion{BaseUnit: units.BaseLiter},
	}
	repo := &fakeOrderRepo{orders: []*workorder.WorkOrder{
		paidOrder(day(2026, time.March, 2), "0", "0", bad),
	}}

	svc := NewService(repo, &fakeSnapshotRepo{})
	rows, err := svc.PartConsumption(context.Background(), day(2026, time.March, 1), day(2026, time.March, 8))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].QtyBase.Equal(dec("3")))
	// Flagged twice: once for the quantity fallback, once for the price
	// fallback.
	assert.Equal(t, 2, rows[0].Anomalies)
	// Priced at the base price as a floor.
	assert.True(t, rows[0].Revenue.Equal(dec("270000")))
}

func TestSnapshotDay(t *testing.T) {
	partID := id.New()
	repo := &fakeOrderRepo{orders: []*workorder.WorkOrder{
		paidOrder(day(2026, time.March, 2).Add(10*time.Hour), "100000", "10000",
			pcsLine(partID, "Busi NGK", "4", "30000")),
		// Next day, outside the snapshot.
		paidOrder(day(2026, time.March, 3), "50000", "0"),
	}}
	snapshots := &fakeSnapshotRepo{}
	svc := NewService(repo, snapshots)

	snap, err := svc.SnapshotDay(context.Background(), day(2026, time.March, 2))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", snap.Date)
	assert.Equal(t, 1, snap.Orders)
	assert.True(t, snap.ServiceFees.Equal(dec("100000")))
	assert.True(t, snap.PartsRevenue.Equal(dec("120000")))
	assert.True(t, snap.GrandTotal.Equal(dec("210000")))
	assert.False(t, snap.GeneratedAt.IsZero())

	require.Len(t, snapshots.saved, 1)
	assert.Equal(t, "2026-03-02", snapshots.saved[0].Date)
}
