package handlers

import (
	"github.com/gin-gonic/gin"

	"bengkel/internal/domain/catalogs/vehicle"
	"bengkel/internal/infrastructure/http/v1/dto"
)

// VehicleHandler serves the vehicle catalog.
type VehicleHandler struct {
	*BaseHandler
	service *vehicle.Service
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(base *BaseHandler, service *vehicle.Service) *VehicleHandler {
	return &VehicleHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the catalog endpoints.
func (h *VehicleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST /catalog/vehicles.
func (h *VehicleHandler) Create(c *gin.Context) {
	var req dto.CreateVehicleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	v, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), v); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, v.ID)
}

// Get handles GET /catalog/vehicles/:id.
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	v, err := h.service.Get(c.Request.Context(), vehicleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromVehicle(v))
}

// Update handles PUT /catalog/vehicles/:id.
func (h *VehicleHandler) Update(c *gin.Context) {
	vehicleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateVehicleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	v, err := h.service.Get(c.Request.Context(), vehicleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(v)

	if err := h.service.Update(c.Request.Context(), v); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromVehicle(v))
}

// List handles GET /catalog/vehicles.
func (h *VehicleHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromVehicles(list)))
}

// Delete handles DELETE /catalog/vehicles/:id (soft delete).
func (h *VehicleHandler) Delete(c *gin.Context) {
	vehicleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), vehicleID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
