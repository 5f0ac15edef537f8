// Package server assembles the HTTP router from configuration and a
// database handle.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"posapi/internal/config"
	_ "posapi/internal/docs" // Import swagger docs
	"posapi/internal/handlers"
	"posapi/internal/middleware"
	"posapi/internal/repository"
	"posapi/internal/services"
)

// Services bundles the service layer the router dispatches to.
type Services struct {
	Trades   services.TradeRegistrar
	Products services.ProductServicer
	Stats    services.StatsServicer
	Audit    services.AuditServicer
}

// NewServices wires repositories and services on top of db.
func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	productRepo := repository.NewProductRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	catalog := repository.NewCachedCatalog(productRepo, cfg.ProductCacheTTL)

	return &Services{
		Trades:   services.NewTradeService(catalog, tradeRepo, services.WithStoreTimeout(cfg.StoreTimeout)),
		Products: services.NewProductService(catalog, productRepo),
		Stats:    services.NewStatsService(db),
		Audit:    services.NewAuditService(db),
	}
}

// NewRouter builds the Gin engine with middleware and every route.
func NewRouter(cfg *config.Config, svc *Services) *gin.Engine {
	productHandler := handlers.NewProductHandler(svc.Products)
	tradeHandler := handlers.NewTradeHandler(svc.Trades, svc.Audit)
	systemHandler := handlers.NewSystemHandler(svc.Stats)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", systemHandler.Root)
	router.GET("/health", systemHandler.Health)

	v1 := router.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:code", productHandler.GetProductByCode)

	trades := v1.Group("/trades")
	if cfg.TerminalAPIKeyHash != "" {
		trades.POST("", middleware.TerminalKeyMiddleware(cfg.TerminalAPIKeyHash), tradeHandler.CreateTrade)
	} else {
		trades.POST("", tradeHandler.CreateTrade)
	}
	trades.GET("/:id", tradeHandler.GetTrade)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(middleware.JWTConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}))
	admin.GET("/stats", systemHandler.AdminStats)

	return router
}
