package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bengkel/internal/domain/catalogs/sparepart"
	"bengkel/internal/domain/units"
	"bengkel/internal/infrastructure/http/v1/dto"
)

// SparepartHandler serves the spare part catalog.
type SparepartHandler struct {
	*BaseHandler
	service *sparepart.Service
}

// NewSparepartHandler creates a new spare part handler.
func NewSparepartHandler(base *BaseHandler, service *sparepart.Service) *SparepartHandler {
	return &SparepartHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the catalog endpoints.
func (h *SparepartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/restock", h.Restock)
	rg.GET("/:id/units", h.UnitOptions)
}

// Create handles POST /catalog/spareparts.
func (h *SparepartHandler) Create(c *gin.Context) {
	var req dto.CreateSparepartRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item.ID)
}

// Get handles GET /catalog/spareparts/:id.
func (h *SparepartHandler) Get(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSparepart(item))
}

// Update handles PUT /catalog/spareparts/:id.
func (h *SparepartHandler) Update(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSparepartRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Get(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(item)

	if err := h.service.Update(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSparepart(item))
}

// List handles GET /catalog/spareparts.
func (h *SparepartHandler) List(c *gin.Context) {
	f := sparepart.Filter{
		Category:       c.Query("category"),
		IncludeDeleted: c.Query("includeDeleted") == "true",
		Limit:          h.ParseIntQuery(c, "limit", 50),
		Offset:         h.ParseIntQuery(c, "offset", 0),
	}

	items, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromSpareparts(items)))
}

// Search handles GET /catalog/spareparts/search?q=.
func (h *SparepartHandler) Search(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("q"), h.ParseIntQuery(c, "limit", 20))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromSpareparts(items)))
}

// Restock handles POST /catalog/spareparts/:id/restock.
func (h *SparepartHandler) Restock(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var priceBuy *decimal.Decimal
	if req.PriceBuy != nil {
		priceBuy = &req.PriceBuy.Decimal
	}

	item, err := h.service.Restock(c.Request.Context(), itemID, req.QtyBase, priceBuy)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSparepart(item))
}

// Delete handles DELETE /catalog/spareparts/:id (soft delete).
func (h *SparepartHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// UnitOptions handles GET /catalog/spareparts/:id/units. Returns each
// display unit the item can be sold in, priced per unit.
func (h *SparepartHandler) UnitOptions(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.UnitOptionsResponse{}
	for _, u := range item.AvailableUnits() {
		price, err := units.PricePerDisplayUnit(item.PriceSell, u, item.Conversion)
		if err != nil {
			h.Error(c, err)
			return
		}
		label := string(u)
		if u == units.UnitPack && item.Conversion.PackLabel != "" {
			label = item.Conversion.PackLabel
		}
		resp.Units = append(resp.Units, dto.UnitOption{Unit: u, Label: label, Price: price})
	}
	h.OK(c, resp)
}
