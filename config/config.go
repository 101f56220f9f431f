package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port             int
	MongoURI         string
	MongoDB          string
	JWTKey           string
	Debug            bool
	MaxUploadFiles   int
	MaxFileSizeMB    int64
	ArchiveAfterDays int
}

// LoadConfig reads configuration from the environment, with an optional .env file.
func LoadConfig() *Config {
	// a missing .env is fine, plain env vars still apply
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	maxFiles, _ := strconv.Atoi(getEnv("MAX_UPLOAD_FILES", "10"))
	maxSizeMB, _ := strconv.ParseInt(getEnv("MAX_FILE_SIZE_MB", "10"), 10, 64)
	archiveDays, _ := strconv.Atoi(getEnv("ARCHIVE_AFTER_DAYS", "30"))

	return &Config{
		Port:             port,
		MongoURI:         getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/pwdtrack"),
		MongoDB:          getEnv("MONGO_DB", "pwdtrack"),
		JWTKey:           getEnv("JWT_KEY", "your-secret-key"), // replace in real deployments
		Debug:            getEnv("GIN_MODE", "debug") == "debug",
		MaxUploadFiles:   maxFiles,
		MaxFileSizeMB:    maxSizeMB,
		ArchiveAfterDays: archiveDays,
	}
}

// getEnv returns the environment variable value or a default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
