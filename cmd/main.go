package main

import (
	"fleet-service/internal/fleet"
	"fleet-service/internal/handler"
	"fleet-service/internal/middleware"
	"fleet-service/internal/seed"
	"fleet-service/pkg/config"
	"fleet-service/pkg/database"
	"fleet-service/pkg/jwtutil"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting fleet service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Seed the admin account and optional sample data
	if err := seed.Run(database.GetDB(), cfg, log); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Wire handlers to the record service
	handler.Initialize(fleet.New(database.GetDB()))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/register", handler.Register)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Vehicles
	vehicles := api.Group("/vehicles")
	vehicles.GET("", handler.ListVehicles)
	vehicles.POST("", handler.CreateVehicle)
	vehicles.GET("/:id", handler.GetVehicle)
	vehicles.PUT("/:id", handler.UpdateVehicle)
	vehicles.DELETE("/:id", handler.DeleteVehicle)

	// Fuel records
	fuel := api.Group("/fuel-records")
	fuel.GET("", handler.ListFuelRecords)
	fuel.POST("", handler.CreateFuelRecord)
	fuel.POST("/bulk", handler.CreateFuelRecords)
	fuel.GET("/:id", handler.GetFuelRecord)
	fuel.PUT("/:id", handler.UpdateFuelRecord)
	fuel.DELETE("/:id", handler.DeleteFuelRecord)

	// Maintenance records
	maintenance := api.Group("/maintenance-records")
	maintenance.GET("", handler.ListMaintenanceRecords)
	maintenance.POST("", handler.CreateMaintenanceRecord)
	maintenance.POST("/bulk", handler.CreateMaintenanceRecords)
	maintenance.GET("/:id", handler.GetMaintenanceRecord)
	maintenance.PUT("/:id", handler.UpdateMaintenanceRecord)
	maintenance.DELETE("/:id", handler.DeleteMaintenanceRecord)

	// User management
	users := api.Group("/users")
	users.GET("", handler.ListUsers)
	users.POST("", handler.CreateUser)
	users.GET("/:id", handler.GetUser)
	users.PUT("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)

	// Dashboard and profile
	api.GET("/dashboard", handler.Dashboard)
	api.GET("/dashboard/fuel-activity", handler.FuelActivity)
	api.GET("/dashboard/maintenance-activity", handler.MaintenanceActivity)
	api.GET("/profile", handler.GetProfile)
	api.POST("/profile/change-password", handler.ChangePassword)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
