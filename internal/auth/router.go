package auth

import (
	"benchlab/internal/shared/config"
	"benchlab/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{controller: controller, config: cfg}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		// Public routes
		authGroup.POST("/register", r.controller.Register) // POST /api/v1/auth/register
		authGroup.POST("/login", r.controller.Login)       // POST /api/v1/auth/login
		authGroup.POST("/refresh", r.controller.RefreshToken)
		authGroup.POST("/logout", r.controller.Logout)

		// Protected routes
		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuth(r.config))
		{
			protected.POST("/change-password", r.controller.ChangePassword)
		}
	}
}
