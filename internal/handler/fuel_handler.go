package handler

import (
	"net/http"
	"strconv"
	"time"

	"fleet-service/internal/fleet"
	"fleet-service/internal/middleware"
	"fleet-service/internal/validate"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func ListFuelRecords(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	filter := fleet.FuelFilter{
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	if v := c.QueryParam("vehicle_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle_id"})
		}
		filter.VehicleID = uint(id)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	records, summary, err := svc.FuelLog(actor, filter)
	if err != nil {
		return serviceError(c, log, "fuel record", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"records": records,
		"summary": summary,
	})
}

func GetFuelRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}

	record, err := svc.GetFuelRecord(actor, id)
	if err != nil {
		return serviceError(c, log, "fuel record", err)
	}
	return c.JSON(http.StatusOK, record)
}

func CreateFuelRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	var req validate.FuelRecordInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse fuel record request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	record, err := svc.CreateFuelRecord(actor, req)
	if err != nil {
		return serviceError(c, log, "fuel record", err)
	}

	prometheus.RecordOperation("fuel", "create")
	log.Info("Fuel record created",
		zap.Uint("record_id", record.ID),
		zap.Uint("vehicle_id", record.VehicleID))
	return c.JSON(http.StatusCreated, record)
}

// CreateFuelRecords stores a batch of fuel purchases in one shot. The
// batch is atomic: one bad row rejects the whole request.
func CreateFuelRecords(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	var req struct {
		Records []validate.FuelRecordInput `json:"records"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse fuel batch request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if len(req.Records) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "records must not be empty"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	records, err := svc.CreateFuelRecords(actor, req.Records)
	if err != nil {
		return serviceError(c, log, "fuel record", err)
	}

	prometheus.RecordOperation("fuel", "bulk_create")
	log.Info("Fuel records created", zap.Int("count", len(records)))
	return c.JSON(http.StatusCreated, echo.Map{
		"records": records,
		"count":   len(records),
	})
}

func UpdateFuelRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}

	var req validate.FuelRecordInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse fuel record request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	record, err := svc.UpdateFuelRecord(actor, id, req)
	if err != nil {
		return serviceError(c, log, "fuel record", err)
	}

	prometheus.RecordOperation("fuel", "update")
	return c.JSON(http.StatusOK, record)
}

func DeleteFuelRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := svc.DeleteFuelRecord(actor, id); err != nil {
		return serviceError(c, log, "fuel record", err)
	}

	prometheus.RecordOperation("fuel", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "Fuel record deleted successfully"})
}
