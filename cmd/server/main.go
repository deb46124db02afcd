// Package main is the entry point for the bengkel API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bengkel/internal/config"
	"bengkel/internal/domain/catalogs/customer"
	"bengkel/internal/domain/catalogs/sparepart"
	"bengkel/internal/domain/catalogs/vehicle"
	"bengkel/internal/domain/documents/estimate"
	"bengkel/internal/domain/documents/workorder"
	"bengkel/internal/domain/reports"
	v1 "bengkel/internal/infrastructure/http/v1"
	storage "bengkel/internal/infrastructure/storage/mongo"
	"bengkel/internal/scheduler"
	"bengkel/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobal(log)

	ctx := context.Background()
	log.Info("starting bengkel server")

	// --- MongoDB ---
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := storage.Connect(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	cancel()
	if err != nil {
		log.Fatalw("failed to connect to mongodb", "error", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warnw("mongodb disconnect failed", "error", err)
		}
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalw("failed to create indexes", "error", err)
	}
	log.Info("mongodb connection established")

	// --- Repositories ---
	sparepartRepo := storage.NewSparepartRepo(store)
	customerRepo := storage.NewCustomerRepo(store)
	vehicleRepo := storage.NewVehicleRepo(store)
	estimateRepo := storage.NewEstimateRepo(store)
	workOrderRepo := storage.NewWorkOrderRepo(store)
	snapshotRepo := storage.NewSnapshotRepo(store)

	// --- Services ---
	sparepartService := sparepart.NewService(sparepartRepo)
	customerService := customer.NewService(customerRepo)
	vehicleService := vehicle.NewService(vehicleRepo)
	estimateService := estimate.NewService(estimateRepo, store)
	workOrderService := workorder.NewService(workOrderRepo, sparepartRepo, estimateRepo, store, store)
	reportsService := reports.NewService(workOrderRepo, snapshotRepo)

	// --- Timezone for reports and the snapshot job ---
	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		log.Warnw("unknown timezone, falling back to UTC", "timezone", cfg.Reporting.Timezone)
		loc = time.UTC
	}

	// --- Snapshot scheduler ---
	sched := scheduler.New(reportsService, cfg.Reporting.CronSchedule, loc)
	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Store:          store,
		Logger:         log,
		Spareparts:     sparepartService,
		Customers:      customerService,
		Vehicles:       vehicleService,
		Estimates:      estimateService,
		WorkOrders:     workOrderService,
		Reports:        reportsService,
		Location:       loc,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
