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

func ListMaintenanceRecords(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	filter := fleet.MaintenanceFilter{
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
	records, summary, err := svc.MaintenanceLog(actor, filter)
	if err != nil {
		return serviceError(c, log, "maintenance record", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"records": records,
		"summary": summary,
	})
}

func GetMaintenanceRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}

	record, err := svc.GetMaintenanceRecord(actor, id)
	if err != nil {
		return serviceError(c, log, "maintenance record", err)
	}
	return c.JSON(http.StatusOK, record)
}

func CreateMaintenanceRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	var req validate.MaintenanceRecordInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse maintenance record request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	record, err := svc.CreateMaintenanceRecord(actor, req)
	if err != nil {
		return serviceError(c, log, "maintenance record", err)
	}

	prometheus.RecordOperation("maintenance", "create")
	log.Info("Maintenance record created",
		zap.Uint("record_id", record.ID),
		zap.Uint("vehicle_id", record.VehicleID))
	return c.JSON(http.StatusCreated, record)
}

// CreateMaintenanceRecords stores a batch of service events atomically.
func CreateMaintenanceRecords(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	var req struct {
		Records []validate.MaintenanceRecordInput `json:"records"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse maintenance batch request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if len(req.Records) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "records must not be empty"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	records, err := svc.CreateMaintenanceRecords(actor, req.Records)
	if err != nil {
		return serviceError(c, log, "maintenance record", err)
	}

	prometheus.RecordOperation("maintenance", "bulk_create")
	log.Info("Maintenance records created", zap.Int("count", len(records)))
	return c.JSON(http.StatusCreated, echo.Map{
		"records": records,
		"count":   len(records),
	})
}

func UpdateMaintenanceRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}

	var req validate.MaintenanceRecordInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse maintenance record request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	record, err := svc.UpdateMaintenanceRecord(actor, id, req)
	if err != nil {
		return serviceError(c, log, "maintenance record", err)
	}

	prometheus.RecordOperation("maintenance", "update")
	return c.JSON(http.StatusOK, record)
}

func DeleteMaintenanceRecord(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := svc.DeleteMaintenanceRecord(actor, id); err != nil {
		return serviceError(c, log, "maintenance record", err)
	}

	prometheus.RecordOperation("maintenance", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "Maintenance record deleted successfully"})
}
