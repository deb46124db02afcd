package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bengkel/internal/domain/documents/estimate"
)

// --- Request DTOs ---

// CreateEstimateRequest is the request body for creating an estimate.
type CreateEstimateRequest struct {
	CustomerID  string         `json:"customerId" binding:"required"`
	VehicleID   string         `json:"vehicleId" binding:"required"`
	Complaint   string         `json:"complaint"`
	PaymentType string         `json:"paymentType"`
	Lines       []LineRequest  `json:"lines" binding:"required,min=1"`
	ServiceFee  LenientDecimal `json:"serviceFee"`
	Discount    LenientDecimal `json:"discount"`
	Date        *time.Time     `json:"date"`
}

// UpdateEstimateRequest is the request body for editing an open estimate.
type UpdateEstimateRequest struct {
	Complaint   string         `json:"complaint"`
	PaymentType string         `json:"paymentType"`
	Lines       []LineRequest  `json:"lines" binding:"required,min=1"`
	ServiceFee  LenientDecimal `json:"serviceFee"`
	Discount    LenientDecimal `json:"discount"`
}

// --- Response DTOs ---

// EstimateResponse is the response body for an estimate.
type EstimateResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Date         time.Time       `json:"date"`
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	VehicleID    string          `json:"vehicleId"`
	VehicleLabel string          `json:"vehicleLabel"`
	Complaint    string          `json:"complaint,omitempty"`
	PaymentType  string          `json:"paymentType,omitempty"`
	Lines        []LineResponse  `json:"lines"`
	ServiceFee   decimal.Decimal `json:"serviceFee"`
	Discount     decimal.Decimal `json:"discount"`
	PartsTotal   decimal.Decimal `json:"partsTotal"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	Status       estimate.Status `json:"status"`
	WorkOrderID  string          `json:"workOrderId,omitempty"`
	Version      int             `json:"version"`
}

// FromEstimate creates response DTO from domain entity.
func FromEstimate(e *estimate.Estimate) *EstimateResponse {
	resp := &EstimateResponse{
		ID:           e.ID.String(),
		Number:       e.Number,
		Date:         e.Date,
		CustomerID:   e.CustomerID.String(),
		CustomerName: e.CustomerName,
		VehicleID:    e.VehicleID.String(),
		VehicleLabel: e.VehicleLabel,
		Complaint:    e.Complaint,
		PaymentType:  e.PaymentType,
		Lines:        FromLines(e.Lines),
		ServiceFee:   e.ServiceFee,
		Discount:     e.Discount,
		PartsTotal:   e.PartsTotal,
		Subtotal:     e.Subtotal,
		GrandTotal:   e.GrandTotal,
		Status:       e.Status,
		Version:      e.Version,
	}
	if e.WorkOrderID != nil {
		resp.WorkOrderID = e.WorkOrderID.String()
	}
	return resp
}

// FromEstimates maps a slice of entities.
func FromEstimates(list []*estimate.Estimate) []*EstimateResponse {
	out := make([]*EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimate(e))
	}
	return out
}
