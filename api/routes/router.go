package routes

import (
	"net/http"
	"time"

	"benchlab/internal/auth"
	"benchlab/internal/benches"
	"benchlab/internal/notifications"
	"benchlab/internal/requests"
	"benchlab/internal/shared/config"
	"benchlab/internal/shared/database"
	"benchlab/internal/users"
	"benchlab/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config        *config.Config
	db            *database.DB
	notifications *notifications.Service
}

// NewRouter creates a new router instance. The notification service may be
// nil; decision hooks are simply left unwired then.
func NewRouter(cfg *config.Config, db *database.DB, notificationService *notifications.Service) *Router {
	return &Router{
		config:        cfg,
		db:            db,
		notifications: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		pg := r.db.GetPostgreSQL()

		var cacheService cache.Service
		if r.db.Redis != nil {
			cacheService = cache.NewService(r.db.GetRedis())
		}

		// Repositories
		userRepo := users.NewRepository(pg)
		authRepo := auth.NewRepository(pg)
		benchRepo := benches.NewRepository(pg)
		requestRepo := requests.NewRepository(pg)

		// Services. The request service is built first because auth and
		// users hook into it (registration requests ride the same review
		// queue as reservations).
		requestService := requests.NewService(requestRepo, benchRepo, cacheService, r.config)

		authService := auth.NewService(authRepo, r.config)
		authService.SetRegistrationCreator(requestService)

		userService := users.NewService(userRepo)
		userService.SetRegistrationResolver(requestService)

		benchService := benches.NewService(benchRepo)

		if r.notifications != nil {
			userService.SetNotifier(r.notifications)
			requestService.SetNotifier(r.notifications)
		}

		// Controllers + routes
		authController := auth.NewController(authService)
		auth.NewRouter(authController, r.config).SetupRoutes(api)

		userController := users.NewController(userService)
		users.SetupUserRoutes(api, r.config, userController)

		benchController := benches.NewController(benchService)
		benches.SetupBenchRoutes(api, r.config, benchController)

		requestController := requests.NewController(requestService)
		requests.SetupRequestRoutes(api, r.config, requestController)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "benchlab-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "benchlab-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
