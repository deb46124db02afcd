package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bengkel/internal/domain/documents/workorder"
)

// --- Request DTOs ---

// CreateWorkOrderRequest is the request body for submitting a work
// order. Either built from scratch or converted from an open estimate
// by sending estimateId.
type CreateWorkOrderRequest struct {
	CustomerID  string         `json:"customerId" binding:"required"`
	VehicleID   string         `json:"vehicleId" binding:"required"`
	Complaint   string         `json:"complaint"`
	Mechanic    string         `json:"mechanic"`
	Odometer    int64          `json:"odometer"`
	PaymentType string         `json:"paymentType"`
	Lines       []LineRequest  `json:"lines" binding:"required,min=1"`
	ServiceFee  LenientDecimal `json:"serviceFee"`
	Discount    LenientDecimal `json:"discount"`
	EstimateID  string         `json:"estimateId"`
	Date        *time.Time     `json:"date"`
}

// UpdateStatusRequest moves a work order along its lifecycle.
type UpdateStatusRequest struct {
	Status workorder.Status `json:"status" binding:"required"`
}

// --- Response DTOs ---

// WorkOrderResponse is the response body for a work order.
type WorkOrderResponse struct {
	ID           string           `json:"id"`
	Number       string           `json:"number"`
	Date         time.Time        `json:"date"`
	CustomerID   string           `json:"customerId"`
	CustomerName string           `json:"customerName"`
	VehicleID    string           `json:"vehicleId"`
	VehicleLabel string           `json:"vehicleLabel"`
	Complaint    string           `json:"complaint,omitempty"`
	Mechanic     string           `json:"mechanic,omitempty"`
	Odometer     int64            `json:"odometer,omitempty"`
	PaymentType  string           `json:"paymentType,omitempty"`
	Lines        []LineResponse   `json:"lines"`
	ServiceFee   decimal.Decimal  `json:"serviceFee"`
	Discount     decimal.Decimal  `json:"discount"`
	PartsTotal   decimal.Decimal  `json:"partsTotal"`
	Subtotal     decimal.Decimal  `json:"subtotal"`
	GrandTotal   decimal.Decimal  `json:"grandTotal"`
	Status       workorder.Status `json:"status"`
	EstimateID   string           `json:"estimateId,omitempty"`
	Version      int              `json:"version"`
}

// FromWorkOrder creates response DTO from domain entity.
func FromWorkOrder(w *workorder.WorkOrder) *WorkOrderResponse {
	resp := &WorkOrderResponse{
		ID:           w.ID.String(),
		Number:       w.Number,
		Date:         w.Date,
		CustomerID:   w.CustomerID.String(),
		CustomerName: w.CustomerName,
		VehicleID:    w.VehicleID.String(),
		VehicleLabel: w.VehicleLabel,
		Complaint:    w.Complaint,
		Mechanic:     w.Mechanic,
		Odometer:     w.Odometer,
		PaymentType:  w.PaymentType,
		Lines:        FromLines(w.Lines),
		ServiceFee:   w.ServiceFee,
		Discount:     w.Discount,
		PartsTotal:   w.PartsTotal,
		Subtotal:     w.Subtotal,
		GrandTotal:   w.GrandTotal,
		Status:       w.Status,
		Version:      w.Version,
	}
	if w.EstimateID != nil {
		resp.EstimateID = w.EstimateID.String()
	}
	return resp
}

// FromWorkOrders maps a slice of entities.
func FromWorkOrders(list []*workorder.WorkOrder) []*WorkOrderResponse {
	out := make([]*WorkOrderResponse, 0, len(list))
	for _, w := range list {
		out = append(out, FromWorkOrder(w))
	}
	return out
}
