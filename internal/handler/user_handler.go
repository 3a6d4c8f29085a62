package handler

import (
	"net/http"
	"time"

	"fleet-service/internal/middleware"
	"fleet-service/internal/validate"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	users, err := svc.ListUsers(actor)
	if err != nil {
		return serviceError(c, log, "user", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
		"count": len(users),
	})
}

func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	user, err := svc.GetUser(actor, id)
	if err != nil {
		return serviceError(c, log, "user", err)
	}
	return c.JSON(http.StatusOK, user)
}

func CreateUser(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	var req validate.UserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := svc.CreateUser(actor, req)
	if err != nil {
		return serviceError(c, log, "user", err)
	}

	prometheus.RecordOperation("user", "create")
	log.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	return c.JSON(http.StatusCreated, user)
}

func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	var req validate.UserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	user, err := svc.UpdateUser(actor, id, req)
	if err != nil {
		return serviceError(c, log, "user", err)
	}

	prometheus.RecordOperation("user", "update")
	log.Info("User updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}

func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := svc.DeleteUser(actor, id); err != nil {
		return serviceError(c, log, "user", err)
	}

	prometheus.RecordOperation("user", "delete")
	log.Info("User deleted", zap.Uint("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
