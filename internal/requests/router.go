package requests

import (
	"benchlab/internal/shared/config"
	"benchlab/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRequestRoutes registers the scheduling surface. Everything here
// requires an approved account; pending users can browse benches but the
// calendar and request endpoints stay closed to them.
func SetupRequestRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	scheduling := rg.Group("/benches/:benchId")
	scheduling.Use(middleware.JWTAuth(cfg), middleware.RequireApproved())
	{
		scheduling.GET("/calendar", controller.GetBenchCalendar)       // GET /api/v1/benches/:benchId/calendar?month=YYYY-MM
		scheduling.POST("/validate", controller.ValidateRange)         // POST /api/v1/benches/:benchId/validate
		scheduling.POST("/requests", controller.SubmitScheduleRequest) // POST /api/v1/benches/:benchId/requests
	}

	own := rg.Group("/requests")
	own.Use(middleware.JWTAuth(cfg), middleware.RequireApproved())
	{
		own.GET("", controller.ListMyRequests) // GET /api/v1/requests
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		admin.GET("/requests", controller.ListRequests)
		admin.POST("/requests/:requestId/approve", controller.ApproveRequest)
		admin.POST("/requests/:requestId/reject", controller.RejectRequest)
		admin.GET("/dashboard", controller.GetDashboardStats)
	}
}
