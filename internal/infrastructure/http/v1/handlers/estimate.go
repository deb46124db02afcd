package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bengkel/internal/domain/catalogs/customer"
	"bengkel/internal/domain/catalogs/vehicle"
	"bengkel/internal/domain/documents/estimate"
	"bengkel/internal/infrastructure/http/v1/dto"
)

// EstimateHandler serves estimate documents.
type EstimateHandler struct {
	*BaseHandler
	service   *estimate.Service
	customers *customer.Service
	vehicles  *vehicle.Service
	lines     *LineResolver
}

// NewEstimateHandler creates a new estimate handler.
func NewEstimateHandler(
	base *BaseHandler,
	service *estimate.Service,
	customers *customer.Service,
	vehicles *vehicle.Service,
	lines *LineResolver,
) *EstimateHandler {
	return &EstimateHandler{
		BaseHandler: base,
		service:     service,
		customers:   customers,
		vehicles:    vehicles,
		lines:       lines,
	}
}

// RegisterRoutes mounts the document endpoints.
func (h *EstimateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/cancel", h.Cancel)
}

// Create handles POST /document/estimates.
func (h *EstimateHandler) Create(c *gin.Context) {
	var req dto.CreateEstimateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	cust, ok := h.lookupCustomer(c, req.CustomerID)
	if !ok {
		return
	}
	veh, ok := h.lookupVehicle(c, req.VehicleID)
	if !ok {
		return
	}

	lines, err := h.lines.Resolve(ctx, req.Lines)
	if err != nil {
		h.Error(c, err)
		return
	}

	e := estimate.New(cust.ID, cust.Name, veh.ID, veh.Label())
	e.Complaint = req.Complaint
	e.PaymentType = req.PaymentType
	e.Lines = lines
	e.ServiceFee = req.ServiceFee.Decimal
	e.Discount = req.Discount.Decimal
	if req.Date != nil {
		e.Date = req.Date.UTC()
	}

	if err := h.service.Create(ctx, e); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(201, dto.FromEstimate(e))
}

// Get handles GET /document/estimates/:id.
func (h *EstimateHandler) Get(c *gin.Context) {
	estimateID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), estimateID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEstimate(e))
}

// Update handles PUT /document/estimates/:id.
func (h *EstimateHandler) Update(c *gin.Context) {
	estimateID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEstimateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	e, err := h.service.Get(ctx, estimateID)
	if err != nil {
		h.Error(c, err)
		return
	}

	lines, err := h.lines.Resolve(ctx, req.Lines)
	if err != nil {
		h.Error(c, err)
		return
	}

	e.Complaint = req.Complaint
	e.PaymentType = req.PaymentType
	e.Lines = lines
	e.ServiceFee = req.ServiceFee.Decimal
	e.Discount = req.Discount.Decimal

	if err := h.service.Update(ctx, e); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromEstimate(e))
}

// List handles GET /document/estimates.
func (h *EstimateHandler) List(c *gin.Context) {
	f := estimate.Filter{
		Status: estimate.Status(c.Query("status")),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
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
	h.OK(c, dto.NewListResponse(dto.FromEstimates(list)))
}

// Cancel handles POST /document/estimates/:id/cancel.
func (h *EstimateHandler) Cancel(c *gin.Context) {
	estimateID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), estimateID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "estimate cancelled")
}

func (h *EstimateHandler) lookupCustomer(c *gin.Context, raw string) (*customer.Customer, bool) {
	customerID, ok := h.parseRawID(c, "customerId", raw)
	if !ok {
		return nil, false
	}
	cust, err := h.customers.Get(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return cust, true
}

func (h *EstimateHandler) lookupVehicle(c *gin.Context, raw string) (*vehicle.Vehicle, bool) {
	vehicleID, ok := h.parseRawID(c, "vehicleId", raw)
	if !ok {
		return nil, false
	}
	veh, err := h.vehicles.Get(c.Request.Context(), vehicleID)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return veh, true
}
