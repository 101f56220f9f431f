package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pwdtrack/pwd_end/config"
	"github.com/pwdtrack/pwd_end/controllers"
	"github.com/pwdtrack/pwd_end/middleware"
	"github.com/pwdtrack/pwd_end/repository"
	"github.com/pwdtrack/pwd_end/routes"
	"github.com/pwdtrack/pwd_end/service"
	"github.com/pwdtrack/pwd_end/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg := config.LoadConfig()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	defer repository.CloseMongoDB()

	controllers.InitFileLimits(cfg.MaxUploadFiles, cfg.MaxFileSizeMB)

	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware())

	routes.RegisterRoutes(router)

	utils.Logger.Info().Msg("Starting system initialization...")
	if err := repository.InitializeCollections(); err != nil {
		utils.Logger.Error().Err(err).Msg("Failed to initialize collections")
	}
	if err := repository.InitializeAdminAccount(); err != nil {
		utils.Logger.Error().Err(err).Msg("Failed to initialize admin account")
	}
	utils.Logger.Info().Msg("System initialization finished")

	// nightly archival of long-completed projects
	service.ScheduleDailyTaskAt(2, 30, func() {
		service.ArchiveCompletedProjects(cfg.ArchiveAfterDays)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Msgf("Server listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("Server shutdown error")
	}

	utils.Logger.Info().Msg("Server stopped gracefully")
}
