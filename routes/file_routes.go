package routes

import (
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterFileRoutes(router *gin.Engine) {

	fileGroup := router.Group("/api/files")

	fileGroup.Use(middleware.AuthMiddleware())

	fileGroup.POST("/upload", middleware.PermissionMiddleware("files", "create"), controllers.UploadFile)
	fileGroup.GET("/download/:fileId", controllers.DownloadFile)
	fileGroup.DELETE("/:fileId", middleware.PermissionMiddleware("files", "delete"), controllers.DeleteFile)
}
