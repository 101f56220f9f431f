package routes

import (
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProgressRoutes(router *gin.Engine) {

	progressGroup := router.Group("/api/project-progress")

	progressGroup.Use(middleware.AuthMiddleware())

	progressGroup.GET("/:projectId", controllers.GetProjectProgressHistory)
	progressGroup.GET("/", controllers.GetAllProgressHistory)
}
