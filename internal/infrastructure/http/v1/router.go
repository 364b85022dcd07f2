// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"roster/internal/domain/commands"
	"roster/internal/domain/queries"
	"roster/internal/infrastructure/http/v1/handlers"
	"roster/internal/infrastructure/http/v1/middleware"
	"roster/internal/infrastructure/storage"
	"roster/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Backend serves both the executors and the readiness probe
	Backend storage.Backend

	// BackendName labels the readiness check
	BackendName string

	// Logger for request logging
	Logger *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Backend, cfg.BackendName)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	playerHandler := handlers.NewPlayerHandler(
		commands.NewCreatePlayer(cfg.Backend, cfg.Backend),
		queries.NewFindPlayer(cfg.Backend),
	)
	teamHandler := handlers.NewTeamHandler(queries.NewFindTeam(cfg.Backend))

	api := router.Group("/api/v1")
	{
		players := api.Group("/players")
		players.POST("", playerHandler.Create)
		players.GET("/:id", playerHandler.Get)

		teams := api.Group("/teams")
		teams.GET("/:id", teamHandler.Get)
	}

	return router
}
