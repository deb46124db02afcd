package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bengkel/internal/domain/reports"
	"bengkel/internal/infrastructure/http/v1/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler serves revenue and consumption reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
	loc     *time.Location
}

// NewReportsHandler creates a new reports handler. Report day bounds
// are interpreted in the given location.
func NewReportsHandler(base *BaseHandler, service *reports.Service, loc *time.Location) *ReportsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportsHandler{BaseHandler: base, service: service, loc: loc}
}

// RegisterRoutes mounts the report endpoints.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/revenue", h.Revenue)
	rg.GET("/revenue/export", h.RevenueExport)
	rg.GET("/consumption", h.Consumption)
	rg.GET("/consumption/export", h.ConsumptionExport)
}

// Revenue handles GET /reports/revenue?from=&to=.
func (h *ReportsHandler) Revenue(c *gin.Context) {
	summary, ok := h.revenue(c)
	if !ok {
		return
	}
	h.OK(c, summary)
}

// RevenueExport handles GET /reports/revenue/export. Streams an XLSX
// workbook.
func (h *ReportsHandler) RevenueExport(c *gin.Context) {
	summary, ok := h.revenue(c)
	if !ok {
		return
	}

	data, err := reports.ExportRevenueXLSX(summary)
	if err != nil {
		h.Error(c, err)
		return
	}

	name := fmt.Sprintf("revenue_%s.xlsx", time.Now().In(h.loc).Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Consumption handles GET /reports/consumption?from=&to=.
func (h *ReportsHandler) Consumption(c *gin.Context) {
	rows, ok := h.consumption(c)
	if !ok {
		return
	}
	h.OK(c, dto.NewListResponse(rows))
}

// ConsumptionExport handles GET /reports/consumption/export.
func (h *ReportsHandler) ConsumptionExport(c *gin.Context) {
	rows, ok := h.consumption(c)
	if !ok {
		return
	}

	data, err := reports.ExportConsumptionXLSX(rows)
	if err != nil {
		h.Error(c, err)
		return
	}

	name := fmt.Sprintf("part_consumption_%s.xlsx", time.Now().In(h.loc).Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ReportsHandler) revenue(c *gin.Context) (*reports.RevenueSummary, bool) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return nil, false
	}
	summary, err := h.service.Revenue(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return summary, true
}

func (h *ReportsHandler) consumption(c *gin.Context) ([]reports.ConsumptionRow, bool) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return nil, false
	}
	rows, err := h.service.PartConsumption(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return rows, true
}

func (h *ReportsHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var req dto.DateRangeRequest
	if !h.BindQuery(c, &req) {
		return time.Time{}, time.Time{}, false
	}
	from, to, err := req.Range(h.loc)
	if err != nil {
		h.Error(c, err)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
