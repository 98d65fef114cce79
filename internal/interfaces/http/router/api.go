package router

import (
	"time"

	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/distributor/backend/internal/infrastructure/logger"
	"github.com/distributor/backend/internal/interfaces/http/handler"
	"github.com/distributor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers are the endpoint implementations mounted by NewEngine
type Handlers struct {
	Auth      *handler.AuthHandler
	Debt      *handler.DebtHandler
	Invoice   *handler.InvoiceHandler
	Product   *handler.ProductHandler
	Store     *handler.StoreHandler
	Inventory *handler.InventoryHandler
	Transfer  *handler.TransferHandler
	System    *handler.SystemHandler
}

// Options configures the middleware chain built by NewEngine
type Options struct {
	Logger         *zap.Logger
	TokenValidator middleware.TokenValidator
	// IdempotencyStore is optional; without it Idempotency-Key headers are ignored
	IdempotencyStore shared.IdempotencyStore
	IdempotencyTTL   time.Duration
	// RateLimiter is optional; nil disables rate limiting
	RateLimiter    *middleware.RateLimiter
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	TrustedProxies []string
}

// NewEngine builds the gin engine serving the distributor API
func NewEngine(h Handlers, opts Options) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(opts.Logger),
		logger.Recovery(opts.Logger),
		middleware.Secure(opts.Security),
		middleware.CORSWithConfig(opts.CORS),
		middleware.BodyLimit(opts.MaxBodySize),
	)

	engine.GET("/health", h.System.Health)

	chain := []gin.HandlerFunc{
		middleware.JWTAuth(middleware.DefaultJWTConfig(opts.TokenValidator, opts.Logger)),
	}
	if opts.RateLimiter != nil {
		chain = append(chain, middleware.RateLimit(opts.RateLimiter))
	}

	r := NewRouter(engine)
	r.Register(authRoutes(h.Auth))
	r.Register(debtRoutes(h.Debt, idempotent(opts)))
	r.Register(paymentPlanRoutes(h.Debt))
	r.Register(invoiceRoutes(h.Invoice, idempotent(opts)))
	r.Register(productRoutes(h.Product))
	r.Register(storeRoutes(h.Store))
	r.Register(inventoryRoutes(h.Inventory, idempotent(opts)))
	r.Register(transferRoutes(h.Transfer, idempotent(opts)))
	api := r.Setup(chain...)
	api.GET("/health", h.System.Health)

	return engine, nil
}

var (
	managers = []identity.Role{identity.RoleSupervisor, identity.RoleCEO}
	everyone = []identity.Role{identity.RoleSalesperson, identity.RoleSupervisor, identity.RoleCEO}
)

func idempotent(opts Options) gin.HandlerFunc {
	if opts.IdempotencyStore == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  opts.IdempotencyStore,
		TTL:    opts.IdempotencyTTL,
		Logger: opts.Logger,
	})
}

func authRoutes(h *handler.AuthHandler) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		POST("/login", h.Login)
}

func debtRoutes(h *handler.DebtHandler, idem gin.HandlerFunc) *DomainGroup {
	manage := middleware.Authorize(managers...)
	return NewDomainGroup("debts", "/debts").
		Use(middleware.Authorize(everyone...)).
		GET("", h.List).
		GET("/overdue", manage, h.Overdue).
		GET("/salesperson/:id", h.BySalesperson).
		POST("", manage, h.Create).
		GET("/:id", h.Get).
		POST("/:id/payment-plan", manage, idem, h.CreatePlan).
		GET("/:id/payment-plan", h.GetPlan).
		PUT("/:id/payment-plan/status", manage, h.UpdatePlanStatus).
		POST("/:id/payment", manage, idem, h.RecordPayment)
}

func paymentPlanRoutes(h *handler.DebtHandler) *DomainGroup {
	return NewDomainGroup("payment-plans", "/payment-plans").
		Use(middleware.Authorize(managers...)).
		POST("/mark-overdue", h.MarkOverdue)
}

func invoiceRoutes(h *handler.InvoiceHandler, idem gin.HandlerFunc) *DomainGroup {
	manage := middleware.Authorize(managers...)
	return NewDomainGroup("invoices", "/invoices").
		Use(middleware.Authorize(everyone...)).
		GET("", h.List).
		GET("/reconciliation", manage, h.Reconciliation).
		GET("/:id", h.Get).
		POST("", h.Create).
		PUT("/:id/status", manage, h.UpdateStatus).
		POST("/:id/payments", manage, idem, h.RecordPayment).
		PUT("/:id/reconcile", manage, h.Reconcile).
		DELETE("/:id", middleware.Authorize(identity.RoleCEO), h.Delete)
}

func productRoutes(h *handler.ProductHandler) *DomainGroup {
	manage := middleware.Authorize(managers...)
	return NewDomainGroup("products", "/products").
		Use(middleware.Authorize(everyone...)).
		GET("", h.List).
		GET("/:id", h.Get).
		POST("", manage, h.Create).
		PUT("/:id", manage, h.Update).
		DELETE("/:id", middleware.Authorize(identity.RoleCEO), h.Delete)
}

func storeRoutes(h *handler.StoreHandler) *DomainGroup {
	manage := middleware.Authorize(managers...)
	return NewDomainGroup("stores", "/stores").
		Use(middleware.Authorize(everyone...)).
		GET("", h.List).
		GET("/:id", h.Get).
		POST("", manage, h.Create).
		PUT("/:id", manage, h.Update).
		DELETE("/:id", middleware.Authorize(identity.RoleCEO), h.Delete)
}

func inventoryRoutes(h *handler.InventoryHandler, idem gin.HandlerFunc) *DomainGroup {
	manage := middleware.Authorize(managers...)
	return NewDomainGroup("inventory", "/inventory").
		Use(middleware.Authorize(everyone...)).
		GET("", h.List).
		GET("/low-stock", h.LowStock).
		GET("/transactions", h.Transactions).
		GET("/store/:id", h.ByStore).
		GET("/product/:id", h.ByProduct).
		POST("/adjust", manage, idem, h.Adjust).
		PUT("/store/:id/product/:product_id/reorder-level", manage, h.SetReorderLevel)
}

func transferRoutes(h *handler.TransferHandler, idem gin.HandlerFunc) *DomainGroup {
	manage := middleware.Authorize(managers...)
	return NewDomainGroup("transfers", "/transfers").
		Use(middleware.Authorize(everyone...)).
		GET("", h.List).
		GET("/:id", h.Get).
		POST("", manage, idem, h.Create).
		PUT("/:id/approve", manage, h.Approve).
		PUT("/:id/complete", manage, h.Complete).
		PUT("/:id/cancel", manage, h.Cancel)
}
