// Package v1 provides the console HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"storeops/internal/domain/asset"
	"storeops/internal/domain/auth"
	"storeops/internal/domain/indent"
	"storeops/internal/domain/quantity"
	"storeops/internal/domain/stockin"
	"storeops/internal/domain/store"
	"storeops/internal/infrastructure/cache"
	"storeops/internal/infrastructure/http/v1/handlers"
	"storeops/internal/infrastructure/http/v1/middleware"
	"storeops/internal/infrastructure/session"
	"storeops/pkg/logger"
)

// Workspaces hands out and discards per-session workspaces.
type Workspaces interface {
	middleware.WorkspaceSource
	handlers.WorkspaceDropper
}

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Version is reported by /health/info
	Version string

	// Backend is pinged by the readiness probe
	Backend handlers.Pinger

	// AuthService validates session tokens and switches stores
	AuthService *auth.Service

	// Stores is the cached store directory
	Stores *store.Directory

	Indents *indent.Service
	StockIn *stockin.Service
	Assets  *asset.Service
	Limits  quantity.Limits

	// Workspaces holds the ledger view and transfer snapshot of each session
	Workspaces Workspaces

	// Cache keeps replayable responses for idempotent submissions; nil disables replay
	Cache          cache.Client
	IdempotencyTTL time.Duration
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

	healthHandler := handlers.NewHealthHandler(cfg.Backend, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.AuthService))
	{
		base := handlers.NewBaseHandler()

		registerSessionRoutes(v1, base, cfg)

		scoped := v1.Group("")
		scoped.Use(middleware.RequireStore())

		submit := idempotency(cfg)

		registerIndentRoutes(scoped, base, cfg)
		registerAttachmentRoutes(scoped, base, cfg)

		// routes that read or invalidate the session's ledger and stock snapshot
		stateful := scoped.Group("")
		stateful.Use(middleware.Workspace(cfg.Workspaces))
		registerLedgerRoutes(stateful, base)
		registerTransferRoutes(stateful, base, submit)
		registerStockInRoutes(stateful, base, cfg, submit)
		registerAssetRoutes(stateful, base, cfg, submit)
	}

	return router
}

func idempotency(cfg RouterConfig) gin.HandlerFunc {
	if cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return middleware.Idempotency(cfg.Cache, ttl)
}

func registerSessionRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewSessionHandler(base, cfg.AuthService, cfg.Stores, cfg.Workspaces)

	rg.GET("/session", h.Me)
	rg.POST("/session/store", h.SwitchStore)
	rg.GET("/stores", h.Stores)
	rg.POST("/stores/refresh", h.RefreshStores)
}

func registerIndentRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewIndentHandler(base, cfg.Indents)

	indents := rg.Group("/indents")
	{
		indents.GET("", h.List)
		indents.GET("/:id", h.Get)
	}
}

func registerStockInRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, submit gin.HandlerFunc) {
	h := handlers.NewStockInHandler(base, cfg.StockIn)

	stockIn := rg.Group("/stock-in")
	{
		stockIn.GET("/products", h.Products)
		stockIn.POST("/indents/:id/preview", h.PreviewIndent)
		stockIn.POST("/indents/:id", submit, h.SubmitIndent)
		stockIn.POST("/manual/preview", h.PreviewManual)
		stockIn.POST("/manual/options", h.ManualOptions)
		stockIn.POST("/manual", submit, h.SubmitManual)
	}
}

func registerAttachmentRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewAttachmentHandler(base, cfg.Limits)

	attachments := rg.Group("/attachments")
	{
		attachments.POST("/images", h.Image)
		attachments.POST("/bill-documents", h.BillDocument)
	}
}

func registerAssetRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, submit gin.HandlerFunc) {
	h := handlers.NewAssetHandler(base, cfg.Assets)

	assets := rg.Group("/assets")
	{
		assets.GET("", h.List)
		assets.POST("", submit, h.Create)
		assets.GET("/:id", h.Get)
		assets.PUT("/:id", h.Update)
		assets.DELETE("/:id", h.Delete)
		assets.POST("/:id/stock-in", submit, h.StockIn)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler) {
	h := handlers.NewLedgerHandler(base)

	l := rg.Group("/ledger")
	{
		l.GET("", h.State)
		l.POST("/refresh", h.Refresh)
		l.PUT("/window", h.SetWindow)
		l.PUT("/page", h.SetPage)
		l.PUT("/filter", h.SetFilter)
		l.POST("/drilldown", h.Expand)
		l.DELETE("/drilldown", h.Collapse)
	}
}

func registerTransferRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, submit gin.HandlerFunc) {
	h := handlers.NewTransferHandler(base)

	transfers := rg.Group("/transfers")
	{
		transfers.GET("", h.History)
		transfers.POST("", submit, h.Create)
		transfers.GET("/classify", h.Classify)
		transfers.GET("/stock-levels", h.StockLevels)
		transfers.GET("/:id", h.Detail)
		transfers.GET("/:id/invoice", h.Invoice)
	}
}

var _ Workspaces = (*session.Registry)(nil)
