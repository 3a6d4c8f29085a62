package middleware

import (
	"net/http"
	"strings"

	"fleet-service/internal/fleet"
	"fleet-service/pkg/jwtutil"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const actorKey = "actor"

// AuthMiddleware validates the JWT token from the Authorization header
// and stores the authenticated actor in the request context.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set(actorKey, fleet.Actor{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})

		log.Debug("Request authenticated",
			zap.Uint("user_id", claims.UserID),
			zap.String("username", claims.Username),
			zap.String("role", string(claims.Role)))

		return next(c)
	}
}

// ActorFromContext returns the actor placed in the context by AuthMiddleware.
// The zero Actor is returned for unauthenticated requests.
func ActorFromContext(c echo.Context) fleet.Actor {
	if actor, ok := c.Get(actorKey).(fleet.Actor); ok {
		return actor
	}
	return fleet.Actor{}
}
