// Package estimate provides the repair estimate document. An estimate
// prices a prospective job; it never touches stock. Converting it into a
// work order is what deducts parts.
package estimate

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

// Status lifecycle of an estimate.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusConverted Status = "CONVERTED" // a work order was created from it
	StatusCancelled Status = "CANCELLED"
)

// Estimate is a priced repair proposal.
type Estimate struct {
	entity.Document `bson:",inline"`

	CustomerID   id.ID  `bson:"customer_id" json:"customerId"`
	CustomerName string `bson:"customer_name" json:"customerName"`

	VehicleID    id.ID  `bson:"vehicle_id" json:"vehicleId"`
	VehicleLabel string `bson:"vehicle_label" json:"vehicleLabel"`

	// Complaint is the customer's description of the problem.
	Complaint string `bson:"complaint" json:"complaint"`

	PaymentType string `bson:"payment_type,omitempty" json:"paymentType,omitempty"`

	Lines []billing.UsedPart `bson:"lines" json:"lines"`

	ServiceFee types.Money `bson:"service_fee" json:"serviceFee"`
	Discount   types.Money `bson:"discount" json:"discount"`

	// Stored totals, recomputed from lines on every save.
	PartsTotal types.Money `bson:"parts_total" json:"partsTotal"`
	Subtotal   types.Money `bson:"subtotal" json:"subtotal"`
	GrandTotal types.Money `bson:"grand_total" json:"grandTotal"`

	Status Status `bson:"status" json:"status"`

	// WorkOrderID links to the work order created from this estimate.
	WorkOrderID *id.ID `bson:"work_order_id,omitempty" json:"workOrderId,omitempty"`
}

// New creates an open estimate for a customer/vehicle pair.
func New(customerID id.ID, customerName string, vehicleID id.ID, vehicleLabel string) *Estimate {
	return &Estimate{
		Document:     entity.NewDocument(),
		CustomerID:   customerID,
		CustomerName: customerName,
		VehicleID:    vehicleID,
		VehicleLabel: vehicleLabel,
		Lines:        make([]billing.UsedPart, 0),
		ServiceFee:   decimal.Zero,
		Discount:     decimal.Zero,
		Status:       StatusOpen,
	}
}

// RecalculateTotals refreshes the stored totals from the lines.
func (e *Estimate) RecalculateTotals() billing.Totals {
	t := billing.ComputeTotals(e.Lines, e.ServiceFee, e.Discount)
	e.PartsTotal = t.PartsTotal
	e.Subtotal = t.Subtotal
	e.GrandTotal = t.GrandTotal
	return t
}

// Validate implements entity.Validatable.
func (e *Estimate) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(e.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if id.IsNil(e.VehicleID) {
		return apperror.NewValidation("vehicle is required").
			WithDetail("field", "vehicleId")
	}

	for i, line := range e.Lines {
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
		// Invalid unit combinations are rejected at entry time; the
		// fallback pricing path exists only for corrupted historical data.
		if !units.IsDisplayUnitValid(line.DisplayUnit, line.Conversion.BaseUnit) {
			return apperror.NewInvalidUnit(string(line.DisplayUnit), string(line.Conversion.BaseUnit)).
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
