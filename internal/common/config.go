package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Blob   BlobConfig
	Sheet  SheetConfig
	Enrich EnrichConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// BlobConfig holds object-store configuration
type BlobConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	CredentialsFile string
}

// SheetConfig holds the tabular store workbook location
type SheetConfig struct {
	Path      string
	SheetName string
}

// EnrichConfig holds background enrichment worker settings
type EnrichConfig struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8000"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Blob: BlobConfig{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "resumes"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			CredentialsFile: getEnv("S3_CREDENTIALS_FILE", ""),
		},
		Sheet: SheetConfig{
			Path:      getEnv("SHEET_PATH", "./applicants.xlsx"),
			SheetName: getEnv("SHEET_NAME", "applicantsInfo"),
		},
		Enrich: EnrichConfig{
			Workers:    getEnvAsInt("ENRICH_WORKERS", 4),
			QueueSize:  getEnvAsInt("ENRICH_QUEUE_SIZE", 256),
			JobTimeout: getEnvAsDuration("ENRICH_JOB_TIMEOUT", 2*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Blob.Endpoint == "" {
		return &AppError{Code: "CONFIG_ERROR", Message: "S3_ENDPOINT is required", Cause: ErrInternal}
	}
	if c.Blob.AccessKeyID == "" && c.Blob.CredentialsFile == "" {
		return &AppError{Code: "CONFIG_ERROR", Message: "either S3_ACCESS_KEY_ID or S3_CREDENTIALS_FILE is required", Cause: ErrAuthMissing}
	}
	if c.Sheet.Path == "" {
		return &AppError{Code: "CONFIG_ERROR", Message: "SHEET_PATH is required", Cause: ErrInternal}
	}
	if c.Enrich.Workers <= 0 {
		return &AppError{Code: "CONFIG_ERROR", Message: "ENRICH_WORKERS must be positive", Cause: ErrInternal}
	}
	return nil
}
