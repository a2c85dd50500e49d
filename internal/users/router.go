package users

import (
	"benchlab/internal/shared/config"
	"benchlab/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	// Self-service profile routes - any authenticated user
	profile := router.Group("/users")
	profile.Use(middleware.JWTAuth(cfg))
	{
		profile.GET("/profile", controller.GetProfile)    // GET /api/v1/users/profile
		profile.PUT("/profile", controller.UpdateProfile) // PUT /api/v1/users/profile
	}

	// Admin user management
	adminUsers := router.Group("/admin/users")
	adminUsers.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		adminUsers.GET("", controller.ListUsers)                    // GET /api/v1/admin/users
		adminUsers.POST("/:userId/approve", controller.ApproveUser) // POST /api/v1/admin/users/:userId/approve
		adminUsers.POST("/:userId/reject", controller.RejectUser)   // POST /api/v1/admin/users/:userId/reject
		adminUsers.POST("/:userId/enable", controller.EnableUser)   // POST /api/v1/admin/users/:userId/enable
		adminUsers.POST("/:userId/disable", controller.DisableUser) // POST /api/v1/admin/users/:userId/disable
		adminUsers.PUT("/:userId/role", controller.SetRole)         // PUT /api/v1/admin/users/:userId/role
	}
}
