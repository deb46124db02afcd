// Package workorder provides the service work order document. Submitting
// a work order is the only operation that deducts spare-part stock, and it
// does so atomically: either every line's converted base quantity is
// available and written, or nothing is.
package workorder

import (
	"context"

	"github.com/shopspring/decimal"

	"bengkel/internal/core/apperror"
	"bengkel/internal/core/entity"
	"bengkel/internal/core/id"
	"bengkel/internal/core/types"
	"bengkel/internal/domain/billing"
	"bengkel/internal/domain/units"
)

// Status lifecycle of a work order.
type Status string

const (
	StatusWaiting    Status = "WAITING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusPaid       Status = "PAID"
)

// statusOrder encodes the forward-only lifecycle.
var statusOrder = map[Status]int{
	StatusWaiting:    0,
	StatusInProgress: 1,
	StatusDone:       2,
	StatusPaid:       3,
}

// WorkOrder is a service job on a customer vehicle.
type WorkOrder struct {
	entity.Document `bson:",inline"`

	CustomerID   id.ID  `bson:"customer_id" json:"customerId"`
	CustomerName string `bson:"customer_name" json:"customerName"`

	VehicleID    id.ID  `bson:"vehicle_id" json:"vehicleId"`
	VehicleLabel string `bson:"vehicle_label" json:"vehicleLabel"`

	Complaint string `bson:"complaint" json:"complaint"`
	Mechanic  string `bson:"mechanic,omitempty" json:"mechanic,omitempty"`

	// Odometer reading at intake, in kilometers.
	Odometer int64 `bson:"odometer,omitempty" json:"odometer,omitempty"`

	PaymentType string `bson:"payment_type,omitempty" json:"paymentType,omitempty"`

	Lines []billing.UsedPart `bson:"lines" json:"lines"`

	ServiceFee types.Money `bson:"service_fee" json:"serviceFee"`
	Discount   types.Money `bson:"discount" json:"discount"`

	PartsTotal types.Money `bson:"parts_total" json:"partsTotal"`
	Subtotal   types.Money `bson:"subtotal" json:"subtotal"`
	GrandTotal types.Money `bson:"grand_total" json:"grandTotal"`

	Status Status `bson:"status" json:"status"`

	// EstimateID links back to the originating estimate, when any.
	EstimateID *id.ID `bson:"estimate_id,omitempty" json:"estimateId,omitempty"`
}

// New creates a work order in the waiting state.
func New(customerID id.ID, customerName string, vehicleID id.ID, vehicleLabel string) *WorkOrder {
	return &WorkOrder{
		Document:     entity.NewDocument(),
		CustomerID:   customerID,
		CustomerName: customerName,
		VehicleID:    vehicleID,
		VehicleLabel: vehicleLabel,
		Lines:        make([]billing.UsedPart, 0),
		ServiceFee:   decimal.Zero,
		Discount:     decimal.Zero,
		Status:       StatusWaiting,
	}
}

// RecalculateTotals refreshes the stored totals from the lines.
func (w *WorkOrder) RecalculateTotals() billing.Totals {
	t := billing.ComputeTotals(w.Lines, w.ServiceFee, w.Discount)
	w.PartsTotal = t.PartsTotal
	w.Subtotal = t.Subtotal
	w.GrandTotal = t.GrandTotal
	return t
}

// CanTransition reports whether the status may move to next. The
// lifecycle only moves forward; skipping intermediate states is allowed
// (a walk-in job can go straight from waiting to done).
func (w *WorkOrder) CanTransition(next Status) bool {
	cur, ok := statusOrder[w.Status]
	if !ok {
		return false
	}
	n, ok := statusOrder[next]
	if !ok {
		return false
	}
	return n > cur
}

// Validate implements entity.Validatable.
func (w *WorkOrder) Validate(ctx context.Context) error {
	if err := w.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(w.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if id.IsNil(w.VehicleID) {
		return apperror.NewValidation("vehicle is required").
			WithDetail("field", "vehicleId")
	}
	if w.Odometer < 0 {
		return apperror.NewValidation("odometer cannot be negative").
			WithDetail("field", "odometer")
	}

	for i, line := range w.Lines {
		if id.IsNil(line.SparepartID) {
			return apperror.NewValidation("sparepart is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Qty.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !units.IsDisplayUnitValid(line.DisplayUnit, line.Conversion.BaseUnit) {
			return apperror.NewInvalidUnit(string(line.DisplayUnit), string(line.Conversion.BaseUnit)).
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
