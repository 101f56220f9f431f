package routes

import (
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine) {

	userGroup := router.Group("/api/users")

	userGroup.Use(middleware.AuthMiddleware())

	userGroup.GET("/", controllers.GetUsers)
	userGroup.POST("/approval", controllers.ApproveUser)
}
