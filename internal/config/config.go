package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type DatabaseType string

const (
	SQLite   DatabaseType = "sqlite"
	Postgres DatabaseType = "postgres"
	MongoDB  DatabaseType = "mongodb"
)

const (
	defaultPort         = "3000"
	defaultTokenTTL     = 3600 * time.Minute
	defaultBcryptCost   = 10
	defaultDatabaseName = "todo_app"
)

type Config struct {
	Port       string
	JwtKey     []byte
	TokenTTL   time.Duration
	BcryptCost int

	DatabaseType DatabaseType
	DatabaseName string
	// SQLite config
	SQLitePath string
	// Postgres config
	PostgresDSN string
	// MongoDB config
	MongoURI string

	LogLevel          string
	LogFormat         string
	CORSAllowedOrigin string
}

// LoadConfig reads envFile (if it exists) into the process environment and
// builds a Config from it. Variables already set in the environment win over
// the file.
func LoadConfig(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	tokenTTL := defaultTokenTTL
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", raw)
		}
		tokenTTL = ttl
	}

	bcryptCost := defaultBcryptCost
	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q: %w", raw, err)
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
		}
		bcryptCost = cost
	}

	config := &Config{
		Port:              getEnv("PORT", defaultPort),
		JwtKey:            []byte(jwtSecret),
		TokenTTL:          tokenTTL,
		BcryptCost:        bcryptCost,
		DatabaseType:      DatabaseType(getEnv("DATABASE_TYPE", string(SQLite))),
		DatabaseName:      getEnv("DATABASE_NAME", defaultDatabaseName),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}

	// Configure based on database type
	switch config.DatabaseType {
	case SQLite:
		config.SQLitePath = os.Getenv("SQLITE_PATH")
		if config.SQLitePath == "" {
			config.SQLitePath = filepath.Join("data", fmt.Sprintf("%s.db", config.DatabaseName))
		}
	case Postgres:
		config.PostgresDSN = os.Getenv("POSTGRES_DSN")
		if config.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is not set")
		}
	case MongoDB:
		config.MongoURI = os.Getenv("MONGODB_URI")
		if config.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set")
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", config.DatabaseType)
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
