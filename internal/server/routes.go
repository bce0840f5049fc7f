package server

import (
	"net/http"

	user "FitMind_V0.1/internal/User"
	"FitMind_V0.1/internal/auth"
	"FitMind_V0.1/internal/system"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Platform"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	e.GET("/health", s.healthHandler)
	e.POST("/auth/signup", auth.SignupHandler)
	e.POST("/auth/login", auth.LoginHandler)

	e.Use(LoggerMiddleware)

	// Protected routes
	protected := e.Group("")
	protected.Use(auth.JwtAuthMiddleware)

	protected.POST("/auth/logout", auth.LogoutHandler)

	// User's profile routes
	protected.GET("/profile", user.GetUserProfileHandler)
	protected.PUT("/profile", user.UpsertUserProfileHandler)

	// Activity log routes
	protected.POST("/logs/workouts", user.CreateWorkoutResultHandler)
	protected.GET("/logs/workouts", user.ListWorkoutResultsHandler)
	protected.PUT("/logs/workouts/:result_id", user.UpdateWorkoutResultHandler)
	protected.DELETE("/logs/workouts/:result_id", user.DeleteWorkoutResultHandler)
	protected.POST("/logs/water", user.CreateWaterEntryHandler)
	protected.GET("/logs/water", user.ListWaterEntriesHandler)
	protected.PUT("/logs/water/:entry_id", user.UpdateWaterEntryHandler)
	protected.DELETE("/logs/water/:entry_id", user.DeleteWaterEntryHandler)
	protected.POST("/logs/nutrition", user.CreateNutritionEntryHandler)
	protected.GET("/logs/nutrition", user.ListNutritionEntriesHandler)
	protected.PUT("/logs/nutrition/:entry_id", user.UpdateNutritionEntryHandler)
	protected.DELETE("/logs/nutrition/:entry_id", user.DeleteNutritionEntryHandler)
	protected.POST("/logs/biometrics", user.CreateBiometricEntryHandler)
	protected.GET("/logs/biometrics", user.ListBiometricEntriesHandler)
	protected.PUT("/logs/biometrics/:entry_id", user.UpdateBiometricEntryHandler)
	protected.DELETE("/logs/biometrics/:entry_id", user.DeleteBiometricEntryHandler)

	// Assistant routes
	protected.POST("/assistant/chat", user.ChatHandler)
	protected.GET("/workouts/plans", user.ListWorkoutPlansHandler)

	// Inactivity monitor routes
	protected.POST("/monitor/start", user.StartMonitorHandler)
	protected.POST("/monitor/stop", user.StopMonitorHandler)

	// Websocket for foreground notification delivery
	protected.GET("/notifications/ws", user.NotificationSocketHandler)

	// Ops routes
	protected.GET("/system/stats", system.GetSystemStatsHandler)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.db.Health())
}

func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()

		c.Set("logger", &logger)

		return next(c)
	}
}
