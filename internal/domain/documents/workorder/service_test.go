package workorder

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/billing"
	"bengkel/internal/domain/catalogs/sparepart"
	"bengkel/internal/domain/documents/estimate"
	"bengkel/internal/domain/units"
)

// --- in-memory fakes ---

type fakeOrderRepo struct {
	orders map[id.ID]*WorkOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[id.ID]*WorkOrder)}
}

func (f *fakeOrderRepo) Create(_ context.Context, w *WorkOrder) error {
	cp := *w
	f.orders[w.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, w *WorkOrder) error {
	cp := *w
	f.orders[w.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, orderID id.ID) (*WorkOrder, error) {
	w, ok := f.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("work order", orderID)
	}
	cp := *w
	return &cp, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ Filter) ([]*WorkOrder, error) {
	out := make([]*WorkOrder, 0, len(f.orders))
	for _, w := range f.orders {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

type fakePartsRepo struct {
	items map[id.ID]*sparepart.Sparepart
}

func newFakePartsRepo(items ...*sparepart.Sparepart) *fakePartsRepo {
	f := &fakePartsRepo{items: make(map[id.ID]*sparepart.Sparepart)}
	for _, item := range items {
		cp := *item
		f.items[item.ID] = &cp
	}
	return f
}

func (f *fakePartsRepo) Create(_ context.Context, item *sparepart.Sparepart) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakePartsRepo) Update(_ context.Context, item *sparepart.Sparepart) error {
	if _, ok := f.items[item.ID]; !ok {
		return apperror.NewNotFound("sparepart", item.ID)
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakePartsRepo) FindByID(_ context.Context, itemID id.ID) (*sparepart.Sparepart, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("sparepart", itemID)
	}
	cp := *item
	return &cp, nil
}

func (f *fakePartsRepo) FindByCode(_ context.Context, code string) (*sparepart.Sparepart, error) {
	return nil, apperror.NewNotFound("sparepart", code)
}

func (f *fakePartsRepo) List(_ context.Context, _ sparepart.Filter) ([]*sparepart.Sparepart, error) {
	return nil, nil
}

func (f *fakePartsRepo) Search(_ context.Context, _ string, _ int) ([]*sparepart.Sparepart, error) {
	return nil, nil
}

func (f *fakePartsRepo) ListCodes(_ context.Context) ([]string, error) {
	return nil, nil
}

type fakeEstimateRepo struct {
	converted    map[id.ID]id.ID // estimate -> work order
	convertedErr error
}

func newFakeEstimateRepo() *fakeEstimateRepo {
	return &fakeEstimateRepo{converted: make(map[id.ID]id.ID)}
}

func (f *fakeEstimateRepo) Create(_ context.Context, _ *estimate.Estimate) error  { return nil }
func (f *fakeEstimateRepo) Update(_ context.Context, _ *estimate.Estimate) error  { return nil }
func (f *fakeEstimateRepo) FindByID(_ context.Context, estimateID id.ID) (*estimate.Estimate, error) {
	return nil, apperror.NewNotFound("estimate", estimateID)
}
func (f *fakeEstimateRepo) List(_ context.Context, _ estimate.Filter) ([]*estimate.Estimate, error) {
	return nil, nil
}
func (f *fakeEstimateRepo) MarkConverted(_ context.Context, estimateID, workOrderID id.ID) error {
	if f.convertedErr != nil {
		return f.convertedErr
	}
	f.converted[estimateID] = workOrderID
	return nil
}

// fakeTx runs the callback directly; an error from the callback means
// nothing was committed, which the assertions below rely on.
type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSeq struct{ n int64 }

func (f *fakeSeq) Next(_ context.Context, _ string) (int64, error) {
	f.n++
	return f.n, nil
}

// --- helpers ---

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func stockedItem(name string, conv units.Conversion, stock, sellPrice string) *sparepart.Sparepart {
	item := sparepart.NewSparepart(name, conv)
	item.StockBase = dec(stock)
	item.PriceSell = dec(sellPrice)
	return item
}

func orderWithLines(lines ...billing.UsedPart) *WorkOrder {
	w := New(id.New(), "Budi", id.New(), "B 1234 ABC - Toyota")
	w.Lines = lines
	return w
}

func line(item *sparepart.Sparepart, qty string, unit units.DisplayUnit) billing.UsedPart {
	return billing.UsedPart{
		SparepartID: item.ID,
		Name:        item.Name,
		UnitPrice:   item.PriceSell,
		Qty:         dec(qty),
		DisplayUnit: unit,
		Conversion:  item.Conversion,
	}
}

// --- tests ---

func TestSubmit_DeductsConvertedQuantities(t *testing.T) {
	pads := stockedItem("Kampas Rem",
		units.Conversion{BaseUnit: units.BasePCS, PcsPerPack: 10, PackLabel: "BOX"},
		"25", "25000")
	coolant := stockedItem("Coolant",
		units.Conversion{BaseUnit: units.BasePCS, LiterPerPcs: dec("1")},
		"10", "45000")

	parts := newFakePartsRepo(pads, coolant)
	orders := newFakeOrderRepo()
	svc := NewService(orders, parts, newFakeEstimateRepo(), fakeTx{}, &fakeSeq{})

	w := orderWithLines(
		line(pads, "2", units.UnitPack),
		line(coolant, "2", units.UnitBotol),
	)
	w.ServiceFee = dec("150000")

	require.NoError(t, svc.Submit(context.Background(), w))

	assert.Equal(t, fmt.Sprintf("SRV-%d-00001", w.Date.Year()), w.Number)
	assert.Equal(t, StatusWaiting, w.Status)

	// 2 boxes of 10 = 20 pieces; 2 bottles = 2 pieces.
	storedPads, _ := parts.FindByID(context.Background(), pads.ID)
	assert.True(t, storedPads.StockBase.Equal(dec("5")), "pads stock: got %s", storedPads.StockBase)
	assert.True(t, storedPads.StockMoved)

	storedCoolant, _ := parts.FindByID(context.Background(), coolant.ID)
	assert.True(t, storedCoolant.StockBase.Equal(dec("8")), "coolant stock: got %s", storedCoolant.StockBase)

	// Applied decrements are recorded per line.
	assert.True(t, w.Lines[0].QtyBase.Equal(dec("20")))
	assert.True(t, w.Lines[1].QtyBase.Equal(dec("2")))

	// 2*10*25000 + 2*45000 + 150000.
	assert.True(t, w.GrandTotal.Equal(dec("740000")), "grand total: got %s", w.GrandTotal)

	stored, err := orders.FindByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.Number, stored.Number)
}

func TestSubmit_ShortageAbortsWholeOrder(t *testing.T) {
	plugs := stockedItem("Busi NGK", units.Conversion{BaseUnit: units.BasePCS}, "100", "30000")
	pads := stockedItem("Kampas Rem",
		units.Conversion{BaseUnit: units.BasePCS, PcsPerPack: 10, PackLabel: "BOX"},
		"15", "25000")

	parts := newFakePartsRepo(plugs, pads)
	orders := newFakeOrderRepo()
	svc := NewService(orders, parts, newFakeEstimateRepo(), fakeTx{}, &fakeSeq{})

	// 2 boxes = 20 pieces, but only 15 on hand.
	w := orderWithLines(
		line(plugs, "4", units.UnitPCS),
		line(pads, "2", units.UnitPack),
	)

	err := svc.Submit(context.Background(), w)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Nothing was written: the passing line's stock is intact too.
	storedPlugs, _ := parts.FindByID(context.Background(), plugs.ID)
	assert.True(t, storedPlugs.StockBase.Equal(dec("100")))
	storedPads, _ := parts.FindByID(context.Background(), pads.ID)
	assert.True(t, storedPads.StockBase.Equal(dec("15")))
	assert.Empty(t, orders.orders)
}

func TestSubmit_UnknownPartAborts(t *testing.T) {
	parts := newFakePartsRepo()
	orders := newFakeOrderRepo()
	svc := NewService(orders, parts, newFakeEstimateRepo(), fakeTx{}, &fakeSeq{})

	ghost := stockedItem("Ghost", units.Conversion{BaseUnit: units.BasePCS}, "0", "1000")
	w := orderWithLines(line(ghost, "1", units.UnitPCS))

	err := svc.Submit(context.Background(), w)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, orders.orders)
}

func TestSubmit_MarksEstimateConverted(t *testing.T) {
	plugs := stockedItem("Busi NGK", units.Conversion{BaseUnit: units.BasePCS}, "10", "30000")
	parts := newFakePartsRepo(plugs)
	estimates := newFakeEstimateRepo()
	svc := NewService(newFakeOrderRepo(), parts, estimates, fakeTx{}, &fakeSeq{})

	estimateID := id.New()
	w := orderWithLines(line(plugs, "1", units.UnitPCS))
	w.EstimateID = &estimateID

	require.NoError(t, svc.Submit(context.Background(), w))
	assert.Equal(t, w.ID, estimates.converted[estimateID])
}

func TestSubmit_AlreadyConvertedEstimateKeepsTypedError(t *testing.T) {
	plugs := stockedItem("Busi NGK", units.Conversion{BaseUnit: units.BasePCS}, "10", "30000")
	estimates := newFakeEstimateRepo()
	estimates.convertedErr = apperror.NewBusinessRule(apperror.CodeOrderFinalized,
		"estimate is no longer open")
	svc := NewService(newFakeOrderRepo(), newFakePartsRepo(plugs), estimates, fakeTx{}, &fakeSeq{})

	estimateID := id.New()
	w := orderWithLines(line(plugs, "1", units.UnitPCS))
	w.EstimateID = &estimateID

	err := svc.Submit(context.Background(), w)
	require.Error(t, err)

	// The repository's business-rule error must not be masked as a
	// generic storage failure.
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOrderFinalized, appErr.Code)
}

func TestSubmit_RejectsNonPositiveQty(t *testing.T) {
	plugs := stockedItem("Busi NGK", units.Conversion{BaseUnit: units.BasePCS}, "10", "30000")
	svc := NewService(newFakeOrderRepo(), newFakePartsRepo(plugs), newFakeEstimateRepo(), fakeTx{}, &fakeSeq{})

	w := orderWithLines(line(plugs, "0", units.UnitPCS))
	err := svc.Submit(context.Background(), w)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdateStatus_ForwardOnly(t *testing.T) {
	plugs := stockedItem("Busi NGK", units.Conversion{BaseUnit: units.BasePCS}, "10", "30000")
	orders := newFakeOrderRepo()
	svc := NewService(orders, newFakePartsRepo(plugs), newFakeEstimateRepo(), fakeTx{}, &fakeSeq{})

	w := orderWithLines(line(plugs, "1", units.UnitPCS))
	require.NoError(t, svc.Submit(context.Background(), w))

	// Skipping intermediate states is allowed.
	updated, err := svc.UpdateStatus(context.Background(), w.ID, StatusDone)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), w.ID, StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, updated.Status)

	// Moving backward is not.
	_, err = svc.UpdateStatus(context.Background(), w.ID, StatusInProgress)
	require.Error(t, err)

	// Unknown statuses are rejected outright.
	_, err = svc.UpdateStatus(context.Background(), w.ID, Status("REFUNDED"))
	require.Error(t, err)
}
