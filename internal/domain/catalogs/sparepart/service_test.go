package sparepart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/units"
)

// fakeRepo keeps spareparts in a map.
type fakeRepo struct {
	items map[id.ID]*Sparepart
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*Sparepart)}
}

func (f *fakeRepo) Create(_ context.Context, item *Sparepart) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(_ context.Context, item *Sparepart) error {
	if _, ok := f.items[item.ID]; !ok {
		return apperror.NewNotFound("sparepart", item.ID)
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, itemID id.ID) (*Sparepart, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("sparepart", itemID)
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) FindByCode(_ context.Context, code string) (*Sparepart, error) {
	for _, item := range f.items {
		if item.Code == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("sparepart", code)
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*Sparepart, error) {
	out := make([]*Sparepart, 0, len(f.items))
	for _, item := range f.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Search(_ context.Context, _ string, _ int) ([]*Sparepart, error) {
	return f.List(context.Background(), Filter{})
}

func (f *fakeRepo) ListCodes(_ context.Context) ([]string, error) {
	var codes []string
	for _, item := range f.items {
		if !item.DeletionMark {
			codes = append(codes, item.Code)
		}
	}
	return codes, nil
}

func pcsItem(name string) *Sparepart {
	return NewSparepart(name, units.Conversion{BaseUnit: units.BasePCS})
}

func TestServiceCreate_AllocatesSequentialCodes(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	first := pcsItem("Busi NGK")
	require.NoError(t, svc.Create(ctx, first))
	assert.Equal(t, "KP-001", first.Code)

	second := pcsItem("Kampas Rem")
	require.NoError(t, svc.Create(ctx, second))
	assert.Equal(t, "KP-002", second.Code)
}

func TestServiceCreate_ReusesFreedCode(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first := pcsItem("Busi NGK")
	second := pcsItem("Kampas Rem")
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))

	// Soft-deleting KP-001 frees its number for the next item.
	require.NoError(t, svc.Delete(ctx, first.ID))

	third := pcsItem("Filter Oli")
	require.NoError(t, svc.Create(ctx, third))
	assert.Equal(t, "KP-001", third.Code)
}

func TestServiceCreate_RejectsDuplicateExplicitCode(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	first := pcsItem("Busi NGK")
	first.Code = "KP-010"
	require.NoError(t, svc.Create(ctx, first))

	second := pcsItem("Kampas Rem")
	second.Code = "KP-010"
	err := svc.Create(ctx, second)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestServiceUpdate_BaseUnitImmutableAfterMovement(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	item := pcsItem("Coolant")
	item.Conversion.LiterPerPcs = decimal.NewFromInt(1)
	item.StockBase = decimal.NewFromInt(10)
	require.NoError(t, svc.Create(ctx, item))

	// Before any movement the base unit may still be corrected.
	edit, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	edit.Conversion = units.Conversion{BaseUnit: units.BaseLiter}
	require.NoError(t, svc.Update(ctx, edit))

	// Simulate a stock movement.
	moved, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	require.NoError(t, moved.Deduct(decimal.NewFromInt(1)))
	require.NoError(t, repo.Update(ctx, moved))

	// Now the base unit is frozen.
	edit, err = svc.Get(ctx, item.ID)
	require.NoError(t, err)
	edit.Conversion = units.Conversion{BaseUnit: units.BasePCS}
	err = svc.Update(ctx, edit)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestServiceUpdate_BaseUnitImmutableAfterRestock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	item := pcsItem("Minyak Rem")
	item.Conversion = units.Conversion{BaseUnit: units.BaseLiter}
	require.NoError(t, svc.Create(ctx, item))

	// Goods arriving locks the base unit just like a deduction would:
	// reinterpreting 20 stocked liters as 20 pieces must be impossible.
	_, err := svc.Restock(ctx, item.ID, decimal.NewFromInt(20), nil)
	require.NoError(t, err)

	edit, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, edit.StockMoved)

	edit.Conversion = units.Conversion{BaseUnit: units.BasePCS}
	err = svc.Update(ctx, edit)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestServiceUpdate_PreservesCodeAndMovementFlag(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	item := pcsItem("Busi NGK")
	require.NoError(t, svc.Create(ctx, item))

	edit, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	edit.Code = "KP-999"
	edit.StockMoved = true
	require.NoError(t, svc.Update(ctx, edit))

	stored, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "KP-001", stored.Code)
	assert.False(t, stored.StockMoved)
}

func TestServiceRestock(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	item := pcsItem("Kampas Rem")
	require.NoError(t, svc.Create(ctx, item))

	price := decimal.NewFromInt(30000)
	updated, err := svc.Restock(ctx, item.ID, decimal.NewFromInt(20), &price)
	require.NoError(t, err)
	assert.True(t, updated.StockBase.Equal(decimal.NewFromInt(20)))
	assert.True(t, updated.PriceBuy.Equal(price))
	assert.True(t, updated.StockMoved)

	// Zero and negative quantities are rejected.
	_, err = svc.Restock(ctx, item.ID, decimal.Zero, nil)
	require.Error(t, err)
	_, err = svc.Restock(ctx, item.ID, decimal.NewFromInt(-5), nil)
	require.Error(t, err)
}

func TestSparepartDeduct(t *testing.T) {
	item := pcsItem("Busi NGK")
	item.StockBase = decimal.NewFromInt(5)

	require.NoError(t, item.Deduct(decimal.NewFromInt(3)))
	assert.True(t, item.StockBase.Equal(decimal.NewFromInt(2)))
	assert.True(t, item.StockMoved)

	err := item.Deduct(decimal.NewFromInt(3))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	// A failed deduction changes nothing.
	assert.True(t, item.StockBase.Equal(decimal.NewFromInt(2)))
}

func TestSparepartValidate(t *testing.T) {
	item := pcsItem("Busi NGK")
	item.Category = CategoryEngine
	assert.NoError(t, item.Validate(context.Background()))

	item.Category = "Velg"
	assert.Error(t, item.Validate(context.Background()))

	item.Category = ""
	item.StockBase = decimal.NewFromInt(-1)
	assert.Error(t, item.Validate(context.Background()))
}
