package routes

import (
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterDashboardStatsRoutes(router *gin.Engine) {

	statsGroup := router.Group("/api/dashboard")

	statsGroup.Use(middleware.AuthMiddleware())

	statsGroup.GET("/stats", controllers.GetDashboardStats)
}
