package config

import (
	"os"
)

type Config struct {
	ServerPort     string
	AppEnv         string
	FrontendOrigin string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "5001"),
		AppEnv:         getEnv("APP_ENV", "development"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "relay"),
		DBPassword:     getEnv("DB_PASSWORD", "relay_dev_password"),
		DBName:         getEnv("DB_NAME", "relay"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "relay-images"),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
	}
}

// IsProduction toggles static asset serving and the Secure cookie flag.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
