package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-inventory/config"
	"bakery-inventory/internal/api"
	"bakery-inventory/internal/service"
	"bakery-inventory/internal/store"
	"bakery-inventory/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env, cfg.Observ.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting bakery inventory")
	cfg.Log()

	tp, err := util.InitTracer(cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				logger.Error("Error shutting down tracer", zap.Error(err))
			}
		}()
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		logger.Error("Failed to create data directory, snapshots may not be saved",
			zap.String("dir", cfg.Storage.DataDir),
			zap.Error(err))
	}

	snapshot := store.NewSnapshot(afero.NewOsFs(), cfg.Storage.ProductsPath(), cfg.Storage.SalesPath())
	inventory := store.Open(snapshot)

	productService := service.NewProductService(inventory)
	orderService := service.NewOrderService(inventory)
	salesService := service.NewSalesService(inventory)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(inventory, productService, orderService, salesService, api.Credentials{
		Username: cfg.Auth.Username,
		Password: cfg.Auth.Password,
	})
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited",
		zap.String("revenue", inventory.TotalRevenue().StringFixed(2)),
		zap.Int64("units_sold", inventory.TotalUnitsSold()))
}
