package handler

import (
	"net/http"

	"fleet-service/internal/middleware"
	"fleet-service/internal/validate"
	"fleet-service/pkg/jwtutil"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := svc.Authenticate(req.Username, req.Password)
	if err != nil {
		log.Warn("Login failed", zap.String("username", req.Username))
		return serviceError(c, log, "user", err)
	}

	token, err := jwtutil.GenerateToken(user)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"email":    user.Email,
		},
	})
}

func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req validate.RegistrationInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := svc.Register(req)
	if err != nil {
		return serviceError(c, log, "user", err)
	}

	log.Info("User registered", zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

func ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse password change request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := svc.ChangePassword(actor, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return serviceError(c, log, "user", err)
	}

	log.Info("Password changed", zap.String("username", actor.Username))
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.ActorFromContext(c)

	stats, err := svc.Profile(actor)
	if err != nil {
		return serviceError(c, log, "profile", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":       actor.ID,
			"username": actor.Username,
			"role":     actor.Role,
		},
		"stats": stats,
	})
}
