package routes

import (
	"github.com/pwdtrack/pwd_end/repository"
	"github.com/pwdtrack/pwd_end/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all route groups.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterUserRoutes(router)
	RegisterProjectRoutes(router)
	RegisterProgressRoutes(router)
	RegisterFileRoutes(router)
	RegisterQueryRoutes(router)
	RegisterDashboardStatsRoutes(router)

	// health check
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// database status
	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "failed to get database status: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
