package routes

import (
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterQueryRoutes(router *gin.Engine) {

	queryGroup := router.Group("/api/queries")

	queryGroup.Use(middleware.AuthMiddleware())

	queryGroup.POST("/", controllers.RaiseQuery)
	queryGroup.GET("/:projectId", controllers.GetProjectQueries)
}
