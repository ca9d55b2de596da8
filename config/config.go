// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Session  SessionConfig
	Storage  StorageConfig
	Firebase FirebaseConfig
	JWT      JWTConfig
	Geo      GeoConfig
	Listings ListingsConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Path string
}

type SessionConfig struct {
	MaxAge int // seconds
}

type StorageConfig struct {
	// Mode selects the identity/storage collaborator:
	// "firebase" for the hosted provider, "local" for the SQLite-backed
	// dev client.
	Mode string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
	WebAPIKey       string
}

type JWTConfig struct {
	SigningKey string
	Issuer     string
}

type GeoConfig struct {
	Enabled bool
	BaseURL string // empty = public Nominatim
}

type ListingsConfig struct {
	PageSize int
}

// Load returns configuration from environment variables. A .env file is
// read first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "mealbridge.db"),
		},
		Session: SessionConfig{
			MaxAge: getEnvInt("SESSION_MAX_AGE", 86400), // 1 day
		},
		Storage: StorageConfig{
			Mode: getEnv("STORAGE_MODE", "local"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", ""),
			Issuer:     getEnv("JWT_ISSUER", "mealbridge"),
		},
		Geo: GeoConfig{
			Enabled: getEnvBool("GEO_ENABLED", true),
			BaseURL: getEnv("GEO_BASE_URL", ""),
		},
		Listings: ListingsConfig{
			PageSize: getEnvInt("LISTINGS_PAGE_SIZE", 6),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
