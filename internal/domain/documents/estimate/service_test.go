package estimate

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
	"bengkel/internal/domain/units"
)

type fakeRepo struct {
	estimates map[id.ID]*Estimate
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{estimates: make(map[id.ID]*Estimate)}
}

func (f *fakeRepo) Create(_ context.Context, e *Estimate) error {
	cp := *e
	f.estimates[e.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(_ context.Context, e *Estimate) error {
	if _, ok := f.estimates[e.ID]; !ok {
		return apperror.NewNotFound("estimate", e.ID)
	}
	cp := *e
	f.estimates[e.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, estimateID id.ID) (*Estimate, error) {
	e, ok := f.estimates[estimateID]
	if !ok {
		return nil, apperror.NewNotFound("estimate", estimateID)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*Estimate, error) {
	out := make([]*Estimate, 0, len(f.estimates))
	for _, e := range f.estimates {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) MarkConverted(_ context.Context, estimateID, workOrderID id.ID) error {
	e, ok := f.estimates[estimateID]
	if !ok {
		return apperror.NewNotFound("estimate", estimateID)
	}
	e.Status = StatusConverted
	e.WorkOrderID = &workOrderID
	return nil
}

type fakeSeq struct{ counters map[string]int64 }

func (f *fakeSeq) Next(_ context.Context, key string) (int64, error) {
	if f.counters == nil {
		f.counters = make(map[string]int64)
	}
	f.counters[key]++
	return f.counters[key], nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func draft() *Estimate {
	e := New(id.New(), "Siti", id.New(), "B 5678 XYZ - Honda Vario")
	e.Lines = []billing.UsedPart{{
		SparepartID: id.New(),
		Name:        "Oli Mesin",
		UnitPrice:   dec("85000"),
		Qty:         dec("1"),
		DisplayUnit: units.UnitPCS,
		Conversion:  units.Conversion{BaseUnit: units.BasePCS},
	}}
	e.ServiceFee = dec("50000")
	return e
}

func TestCreate_NumbersAndTotals(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSeq{})

	first := draft()
	require.NoError(t, svc.Create(context.Background(), first))
	assert.Equal(t, fmt.Sprintf("EST-%d-00001", first.Date.Year()), first.Number)
	assert.Equal(t, StatusOpen, first.Status)
	assert.True(t, first.GrandTotal.Equal(dec("135000")))

	second := draft()
	require.NoError(t, svc.Create(context.Background(), second))
	assert.Equal(t, fmt.Sprintf("EST-%d-00002", second.Date.Year()), second.Number)

	stored, err := repo.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Number, stored.Number)
}

func TestCreate_RejectsZeroQtyLine(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeSeq{})

	e := draft()
	e.Lines[0].Qty = decimal.Zero

	err := svc.Create(context.Background(), e)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdate_OnlyWhileOpen(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSeq{})

	e := draft()
	require.NoError(t, svc.Create(context.Background(), e))

	e.ServiceFee = dec("75000")
	require.NoError(t, svc.Update(context.Background(), e))

	stored, _ := repo.FindByID(context.Background(), e.ID)
	assert.True(t, stored.GrandTotal.Equal(dec("160000")))

	// Once converted, edits are refused.
	require.NoError(t, repo.MarkConverted(context.Background(), e.ID, id.New()))
	err := svc.Update(context.Background(), e)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOrderFinalized, appErr.Code)
}

func TestUpdate_PreservesNumberAndStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSeq{})

	e := draft()
	require.NoError(t, svc.Create(context.Background(), e))
	number := e.Number

	e.Number = "EST-9999-99999"
	e.Status = StatusCancelled
	require.NoError(t, svc.Update(context.Background(), e))

	stored, _ := repo.FindByID(context.Background(), e.ID)
	assert.Equal(t, number, stored.Number)
	assert.Equal(t, StatusOpen, stored.Status)
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSeq{})

	e := draft()
	require.NoError(t, svc.Create(context.Background(), e))
	require.NoError(t, svc.Cancel(context.Background(), e.ID))

	stored, _ := repo.FindByID(context.Background(), e.ID)
	assert.Equal(t, StatusCancelled, stored.Status)

	// Cancelling twice is refused.
	err := svc.Cancel(context.Background(), e.ID)
	require.Error(t, err)

	// As is cancelling something that does not exist.
	err = svc.Cancel(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}
