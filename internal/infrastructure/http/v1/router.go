// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bengkel/internal/domain/catalogs/customer"
	"bengkel/internal/domain/catalogs/sparepart"
	"bengkel/internal/domain/catalogs/vehicle"
	"bengkel/internal/domain/documents/estimate"
	"bengkel/internal/domain/documents/workorder"
	"bengkel/internal/domain/reports"
	"bengkel/internal/infrastructure/http/v1/handlers"
	"bengkel/internal/infrastructure/http/v1/middleware"
	storage "bengkel/internal/infrastructure/storage/mongo"
	"bengkel/pkg/logger"
)

// RouterConfig holds everything the router needs wired in.
type RouterConfig struct {
	Store  *storage.Store
	Logger *logger.Logger

	Spareparts *sparepart.Service
	Customers  *customer.Service
	Vehicles   *vehicle.Service
	Estimates  *estimate.Service
	WorkOrders *workorder.Service
	Reports    *reports.Service

	// Location is the shop's local timezone, used for report day bounds.
	Location *time.Location

	// MetricsEnabled exposes /metrics and records per-request metrics.
	MetricsEnabled bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	healthHandler := handlers.NewHealthHandler(cfg.Store)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()
	lines := handlers.NewLineResolver(cfg.Spareparts)

	api := router.Group("/api/v1")
	{
		catalogs := api.Group("/catalog")
		{
			handlers.NewSparepartHandler(base, cfg.Spareparts).
				RegisterRoutes(catalogs.Group("/spareparts"))
			handlers.NewCustomerHandler(base, cfg.Customers, cfg.Vehicles).
				RegisterRoutes(catalogs.Group("/customers"))
			handlers.NewVehicleHandler(base, cfg.Vehicles).
				RegisterRoutes(catalogs.Group("/vehicles"))
		}

		docs := api.Group("/document")
		{
			handlers.NewEstimateHandler(base, cfg.Estimates, cfg.Customers, cfg.Vehicles, lines).
				RegisterRoutes(docs.Group("/estimates"))
			handlers.NewWorkOrderHandler(base, cfg.WorkOrders, cfg.Customers, cfg.Vehicles, lines).
				RegisterRoutes(docs.Group("/work-orders"))
		}

		handlers.NewBillingHandler(base, lines).
			RegisterRoutes(api.Group("/billing"))
		handlers.NewReportsHandler(base, cfg.Reports, cfg.Location).
			RegisterRoutes(api.Group("/reports"))
	}

	return router
}
