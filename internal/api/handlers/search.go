package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobscout/internal/aggregator"
	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

var validate = validator.New()

// SearchHandler handles multi-source job search requests
func SearchHandler(cfg *config.Config, agg *aggregator.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		logger.Info("Search request received")

		// Parse request body
		var req models.SearchRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		// Validate request
		if err := validate.Struct(&req); err != nil {
			logger.Error("Request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if req.RadiusMiles <= 0 {
			req.RadiusMiles = cfg.Search.DefaultRadiusMiles
		}

		logger.Info("Processing search request", map[string]interface{}{
			"query":    req.Query,
			"location": req.Location,
			"sources":  req.Sources,
		})

		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Search.Timeout)
		defer cancel()

		response := agg.Search(ctx, &req)
		response.RequestID = requestID

		logger.Info("Search request completed", map[string]interface{}{
			"processing_time": time.Since(startTime).String(),
			"total":           response.Total,
			"errors":          len(response.Errors),
		})

		return c.JSON(http.StatusOK, response)
	}
}

// SourcesHandler lists the job sources available to search
func SourcesHandler(supported func() []string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"sources": supported(),
		})
	}
}
