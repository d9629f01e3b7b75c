package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/revenda/backend/internal/application/billing"
	inventoryapp "github.com/revenda/backend/internal/application/inventory"
	reportapp "github.com/revenda/backend/internal/application/report"
	settlementapp "github.com/revenda/backend/internal/application/settlement"
	"github.com/revenda/backend/internal/infrastructure/config"
	"github.com/revenda/backend/internal/infrastructure/event"
	"github.com/revenda/backend/internal/infrastructure/logger"
	"github.com/revenda/backend/internal/infrastructure/persistence"
	"github.com/revenda/backend/internal/interfaces/http/handler"
	"github.com/revenda/backend/internal/interfaces/http/middleware"
	"github.com/revenda/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting billing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Initialize repositories
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize application services
	documentService := billingapp.NewDocumentService(documentRepo, inventoryItemRepo)
	documentService.SetEventPublisher(eventBus)
	documentService.SetTransactionManager(txManager)

	paymentService := settlementapp.NewPaymentService(receiptRepo, documentRepo)
	paymentService.SetEventPublisher(eventBus)
	paymentService.SetTransactionManager(txManager)

	catalogService := inventoryapp.NewCatalogService(inventoryItemRepo)
	catalogService.SetEventPublisher(eventBus)

	reportService := reportapp.NewReportService(documentRepo, receiptRepo, inventoryItemRepo)
	eventBus.Subscribe(reportService, reportService.EventTypes()...)

	// Initialize handlers
	documentHandler := handler.NewDocumentHandler(documentService)
	receiptHandler := handler.NewReceiptHandler(paymentService)
	inventoryHandler := handler.NewInventoryHandler(catalogService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(documentHandler).
		Register(receiptHandler).
		Register(inventoryHandler).
		Register(reportHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
