package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fleet-service/internal/fleet"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var svc *fleet.Service

// Initialize wires the handlers to the record service
func Initialize(s *fleet.Service) {
	svc = s
}

// parseID reads a numeric path parameter
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// serviceError maps service errors to HTTP responses. Every handler
// funnels failures through here so the status mapping stays in one place.
func serviceError(c echo.Context, log *zap.Logger, entity string, err error) error {
	var ve *fleet.ValidationError
	switch {
	case errors.As(err, &ve):
		prometheus.RecordRejectedWrite(entity, "validation")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	case errors.Is(err, fleet.ErrDenied):
		log.Warn("Operation denied", zap.String("entity", entity))
		prometheus.RecordRejectedWrite(entity, "denied")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	case errors.Is(err, fleet.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	case errors.Is(err, fleet.ErrConflict):
		prometheus.RecordRejectedWrite(entity, "conflict")
		return c.JSON(http.StatusConflict, echo.Map{"error": "record conflicts with existing data"})
	case errors.Is(err, fleet.ErrInvalidCredentials):
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	default:
		log.Error("Operation failed", zap.String("entity", entity), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// MetricsHandler serves the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
