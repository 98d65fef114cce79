package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcatalog "github.com/distributor/backend/internal/application/catalog"
	appdebt "github.com/distributor/backend/internal/application/debt"
	appidentity "github.com/distributor/backend/internal/application/identity"
	appinventory "github.com/distributor/backend/internal/application/inventory"
	appinvoice "github.com/distributor/backend/internal/application/invoice"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/distributor/backend/internal/infrastructure/auth"
	"github.com/distributor/backend/internal/infrastructure/cache"
	"github.com/distributor/backend/internal/infrastructure/config"
	"github.com/distributor/backend/internal/infrastructure/event"
	"github.com/distributor/backend/internal/infrastructure/logger"
	"github.com/distributor/backend/internal/infrastructure/persistence"
	"github.com/distributor/backend/internal/interfaces/http/handler"
	"github.com/distributor/backend/internal/interfaces/http/middleware"
	"github.com/distributor/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Distributor Backend API
//	@version		1.0
//	@description	Debts, payment plans, invoices and store stock for a distribution business
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting distributor backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))

	// Repositories
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	planRepo := persistence.NewGormPaymentPlanRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormInvoicePaymentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	inventoryRepo := persistence.NewGormStoreInventoryRepository(db.DB)
	stockTxRepo := persistence.NewGormStockTransactionRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)

	// Domain events are delivered in-process after commit
	eventBus := event.NewInMemoryEventBus(log.Named("events"))
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, jwtService, log)

	debtService := appdebt.NewDebtService(debtRepo, planRepo, persistence.NewGormDebtTransactionScope(db.DB), log)
	debtService.SetEventPublisher(eventBus)

	invoiceService := appinvoice.NewInvoiceService(invoiceRepo, paymentRepo, persistence.NewGormInvoiceTransactionScope(db.DB), log)
	invoiceService.SetEventPublisher(eventBus)

	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	productService := appcatalog.NewProductService(productRepo, inventoryRepo, log)
	productService.SetEventPublisher(eventBus)
	storeService := appinventory.NewStoreService(storeRepo, userRepo, log)
	storeService.SetEventPublisher(eventBus)
	inventoryService := appinventory.NewInventoryService(storeRepo, inventoryRepo, stockTxRepo, productRepo, inventoryScope, log)
	inventoryService.SetEventPublisher(eventBus)
	transferService := appinventory.NewTransferService(transferRepo, storeRepo, inventoryRepo, productRepo, inventoryScope, log)
	transferService.SetEventPublisher(eventBus)

	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		idempotencyStore, err = cache.NewIdempotencyStore(ctx, cfg, log)
		cancel()
		if err != nil {
			log.Fatal("Failed to initialize idempotency store", zap.Error(err))
		}
		defer func() { _ = idempotencyStore.Close() }()
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine, err := router.NewEngine(router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Debt:      handler.NewDebtHandler(debtService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Product:   handler.NewProductHandler(productService),
		Store:     handler.NewStoreHandler(storeService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Transfer:  handler.NewTransferHandler(transferService),
		System:    handler.NewSystemHandler(db, version),
	}, router.Options{
		Logger:           log,
		TokenValidator:   jwtService,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.Idempotency.TTL,
		RateLimiter:      limiter,
		CORS:             cors,
		Security:         middleware.SecurityConfig{HSTSEnabled: cfg.IsProduction(), HSTSMaxAge: 31536000},
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
