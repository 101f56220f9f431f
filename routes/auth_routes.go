package routes

import (
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine) {

	authGroup := router.Group("/api/auth")

	authGroup.POST("/login", controllers.Login)
	authGroup.POST("/register", controllers.Register)
	authGroup.GET("/validate", middleware.AuthMiddleware(), controllers.ValidateToken)
}
