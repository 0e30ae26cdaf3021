// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/services"

	_ "folio/internal/docs" // Import swagger docs
)

// Deps are the services the router exposes.
type Deps struct {
	DB                *gorm.DB
	MarketDataService services.MarketDataServicer
	PortfolioService  services.PortfolioServicer
	PipelineAPIKey    string
	EnableSwagger     bool
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(deps Deps) *gin.Engine {
	portfolioHandler := handlers.NewPortfolioHandler(deps.PortfolioService)
	stockHandler := handlers.NewStockHandler(deps.MarketDataService)

	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	if deps.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", healthCheck(deps.DB))

	v1 := router.Group("/api/v1")

	v1.POST("/portfolio/aggregate", portfolioHandler.Aggregate)

	stocks := v1.Group("/stocks")
	stocks.GET("", stockHandler.ListStocks)
	stocks.GET("/:symbol", stockHandler.GetStock)
	stocks.GET("/:symbol/history", stockHandler.GetStockHistory)

	// Price feed routes (API key auth)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(deps.PipelineAPIKey))
	pipeline.POST("/stocks", stockHandler.RecordSnapshots)

	router.NoRoute(handlers.NotFound)

	return router
}

// healthCheck reports ok, or 503 when the database cannot be reached.
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
