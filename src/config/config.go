package config

import (
	cryptoRand "crypto/rand"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port int

	// Database connection parameters
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     int

	JWTSecret string
	// TokenTTL is the admin token lifetime. Fixed at 24h; re-login is the
	// only renewal path.
	TokenTTL time.Duration

	UploadDir     string
	MaxUploadSize int64

	AllowedOrigins []string

	// Fixed-window request ceiling over the whole API surface
	RateLimitMax    int
	RateLimitWindow time.Duration

	LogLevel  string
	LogFormat string

	// Admin auto-seed (first boot only)
	AdminUsername string
	AdminPassword string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvInt("PORT", 5000),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pawon_bufatim_db"),
		DBPort:     getEnvInt("DB_PORT", 5432),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  24 * time.Hour,

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: getEnvInt64("MAX_FILE_SIZE", 5*1024*1024),

		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MIN", 15)) * time.Minute,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	// Generate JWT secret if not provided. A generated secret invalidates
	// outstanding tokens across restarts.
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = generateRandomSecret(32)
	}

	return cfg
}

// DatabaseURL assembles a pgx connection string from the discrete DB_*
// variables.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			origins = append(origins, s)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// generateRandomSecret generates a cryptographically secure random secret
// for JWT signing
func generateRandomSecret(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	if _, err := cryptoRand.Read(result); err != nil {
		panic("failed to generate random secret: " + err.Error())
	}
	for i := range result {
		result[i] = charset[result[i]%byte(len(charset))]
	}
	return string(result)
}
