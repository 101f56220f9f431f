package routes

import (
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProjectRoutes(router *gin.Engine) {

	projectGroup := router.Group("/api/projects")

	projectGroup.Use(middleware.AuthMiddleware())

	projectGroup.GET("/", controllers.GetAllProjects)
	projectGroup.GET("/archive", controllers.GetArchivedProjects)
	projectGroup.GET("/:id", controllers.GetProjectDetail)
	projectGroup.POST("/", middleware.PermissionMiddleware("projects", "create"), controllers.CreateProject)
	projectGroup.PUT("/:id", middleware.PermissionMiddleware("projects", "update"), controllers.UpdateProject)
	projectGroup.POST("/:id/submit", controllers.SubmitProject)
	projectGroup.POST("/:id/approve", controllers.ApproveProject)
	projectGroup.POST("/:id/reject", controllers.RejectProject)
	projectGroup.POST("/:id/progress", controllers.UpdateProjectProgress)
	projectGroup.DELETE("/:id", controllers.DeleteProject)
}
