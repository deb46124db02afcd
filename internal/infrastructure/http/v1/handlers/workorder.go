package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bengkel/internal/core/id"
	"bengkel/internal/domain/catalogs/customer"
	"bengkel/internal/domain/catalogs/vehicle"
	"bengkel/internal/domain/documents/workorder"
	"bengkel/internal/infrastructure/http/v1/dto"
)

// WorkOrderHandler serves work order documents.
type WorkOrderHandler struct {
	*BaseHandler
	service   *workorder.Service
	customers *customer.Service
	vehicles  *vehicle.Service
	lines     *LineResolver
}

// NewWorkOrderHandler creates a new work order handler.
func NewWorkOrderHandler(
	base *BaseHandler,
	service *workorder.Service,
	customers *customer.Service,
	vehicles *vehicle.Service,
	lines *LineResolver,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		BaseHandler: base,
		service:     service,
		customers:   customers,
		vehicles:    vehicles,
		lines:       lines,
	}
}

// RegisterRoutes mounts the document endpoints.
func (h *WorkOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Submit)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/status", h.UpdateStatus)
}

// Submit handles POST /document/work-orders. Stock is deducted for
// every line inside one transaction; a shortage rejects the whole
// order.
func (h *WorkOrderHandler) Submit(c *gin.Context) {
	var req dto.CreateWorkOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	customerID, ok := h.parseRawID(c, "customerId", req.CustomerID)
	if !ok {
		return
	}
	cust, err := h.customers.Get(ctx, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	vehicleID, ok := h.parseRawID(c, "vehicleId", req.VehicleID)
	if !ok {
		return
	}
	veh, err := h.vehicles.Get(ctx, vehicleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	lines, err := h.lines.Resolve(ctx, req.Lines)
	if err != nil {
		h.Error(c, err)
		return
	}

	w := workorder.New(cust.ID, cust.Name, veh.ID, veh.Label())
	w.Complaint = req.Complaint
	w.Mechanic = req.Mechanic
	w.Odometer = req.Odometer
	w.PaymentType = req.PaymentType
	w.Lines = lines
	w.ServiceFee = req.ServiceFee.Decimal
	w.Discount = req.Discount.Decimal
	if req.Date != nil {
		w.Date = req.Date.UTC()
	}
	if req.EstimateID != "" {
		estimateID, ok := h.parseRawID(c, "estimateId", req.EstimateID)
		if !ok {
			return
		}
		w.EstimateID = &estimateID
	}

	if err := h.service.Submit(ctx, w); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(201, dto.FromWorkOrder(w))
}

// Get handles GET /document/work-orders/:id.
func (h *WorkOrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	w, err := h.service.Get(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromWorkOrder(w))
}

// List handles GET /document/work-orders.
func (h *WorkOrderHandler) List(c *gin.Context) {
	f := workorder.Filter{
		Status: workorder.Status(c.Query("status")),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("customerId"); raw != "" {
		if customerID, err := id.Parse(raw); err == nil {
			f.CustomerID = &customerID
		}
	}
	if raw := c.Query("vehicleId"); raw != "" {
		if vehicleID, err := id.Parse(raw); err == nil {
			f.VehicleID = &vehicleID
		}
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		f.FromDate = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.AddDate(0, 0, 1)
		f.ToDate = &end
	}

	list, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromWorkOrders(list)))
}

// UpdateStatus handles PATCH /document/work-orders/:id/status.
func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	w, err := h.service.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromWorkOrder(w))
}
