package handler

import (
	"net/http"
	"strconv"
	"time"

	"fleet-service/internal/middleware"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
)

const (
	defaultActivityDays = 7
	maxActivityDays     = 90
)

func Dashboard(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	summary, err := svc.Dashboard(actor, time.Now())
	if err != nil {
		return serviceError(c, log, "dashboard", err)
	}

	return c.JSON(http.StatusOK, summary)
}

func FuelActivity(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	series, err := svc.FuelActivity(actor, time.Now(), activityDays(c))
	if err != nil {
		return serviceError(c, log, "dashboard", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"series": series})
}

func MaintenanceActivity(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	series, err := svc.MaintenanceActivity(actor, time.Now(), activityDays(c))
	if err != nil {
		return serviceError(c, log, "dashboard", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"series": series})
}

func activityDays(c echo.Context) int {
	days, err := strconv.Atoi(c.QueryParam("days"))
	if err != nil || days < 1 {
		return defaultActivityDays
	}
	if days > maxActivityDays {
		return maxActivityDays
	}
	return days
}
