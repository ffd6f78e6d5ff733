package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobscout/internal/aggregator"
	"jobscout/internal/api/handlers"
	"jobscout/internal/api/middleware"
	"jobscout/internal/config"
	"jobscout/internal/scraper"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, factory scraper.AdapterFactory, agg *aggregator.Aggregator) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Searches page through several boards sequentially, so the request
	// budget is the configured search timeout, not the server read timeout.
	e.Use(middleware.TimeoutConfig(cfg.Search.Timeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler)
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(factory.GetSupportedSources))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/search", handlers.SearchHandler(cfg, agg))
		v1.GET("/sources", handlers.SourcesHandler(factory.GetSupportedSources))
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "JobScout Aggregation Engine",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
