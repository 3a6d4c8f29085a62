package handler

import (
	"net/http"
	"time"

	"fleet-service/internal/fleet"
	"fleet-service/internal/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/validate"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func ListVehicles(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	filter := fleetVehicleFilter(c)
	defer prometheus.TrackDBOperation("query")(time.Now())
	vehicles, err := svc.ListVehicles(actor, filter)
	if err != nil {
		return serviceError(c, log, "vehicle", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

func GetVehicle(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	vehicle, err := svc.GetVehicle(actor, id)
	if err != nil {
		return serviceError(c, log, "vehicle", err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

func CreateVehicle(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	var req validate.VehicleInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse vehicle request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	vehicle, err := svc.CreateVehicle(actor, req)
	if err != nil {
		return serviceError(c, log, "vehicle", err)
	}

	prometheus.RecordOperation("vehicle", "create")
	log.Info("Vehicle created",
		zap.Uint("vehicle_id", vehicle.ID),
		zap.String("plate", vehicle.Plate))
	return c.JSON(http.StatusCreated, vehicle)
}

func UpdateVehicle(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}

	var req validate.VehicleInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse vehicle request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	vehicle, err := svc.UpdateVehicle(actor, id, req)
	if err != nil {
		return serviceError(c, log, "vehicle", err)
	}

	prometheus.RecordOperation("vehicle", "update")
	log.Info("Vehicle updated", zap.Uint("vehicle_id", vehicle.ID))
	return c.JSON(http.StatusOK, vehicle)
}

func DeleteVehicle(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := svc.DeleteVehicle(actor, id); err != nil {
		return serviceError(c, log, "vehicle", err)
	}

	prometheus.RecordOperation("vehicle", "delete")
	log.Info("Vehicle deleted", zap.Uint("vehicle_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Vehicle deleted successfully"})
}

func fleetVehicleFilter(c echo.Context) fleet.VehicleFilter {
	return fleet.VehicleFilter{
		Search: c.QueryParam("search"),
		Type:   model.VehicleType(c.QueryParam("type")),
		Status: model.VehicleStatus(c.QueryParam("status")),
	}
}
