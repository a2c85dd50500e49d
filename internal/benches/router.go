package benches

import (
	"benchlab/internal/shared/config"
	"benchlab/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBenchRoutes registers bench browsing for signed-in users and
// full CRUD for administrators.
func SetupBenchRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	benchGroup := rg.Group("/benches")
	benchGroup.Use(middleware.JWTAuth(cfg))
	{
		benchGroup.GET("", controller.ListBenches)
		benchGroup.GET("/:benchId", controller.GetBench)
	}

	adminGroup := rg.Group("/admin/benches")
	adminGroup.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		adminGroup.POST("", controller.CreateBench)
		adminGroup.PATCH("/:benchId", controller.UpdateBench)
		adminGroup.DELETE("/:benchId", controller.DeleteBench)
	}
}
