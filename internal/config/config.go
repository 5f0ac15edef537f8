package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration
type Config struct {
	// Server
	Env                string
	Port               string
	CORSAllowedOrigins []string
	RateLimitPerMinute int

	// Database
	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBPath            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Core
	StoreTimeout    time.Duration
	ProductCacheTTL time.Duration

	// JWT (admin endpoints)
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// TerminalAPIKeyHash is the bcrypt hash of the key required in X-API-Key
	// on trade writes. Empty disables the check.
	TerminalAPIKeyHash string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8000"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 120),

		// Database
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "pos"),
		DBPassword:        getEnv("DB_PASSWORD", "pos"),
		DBName:            getEnv("DB_NAME", "pos"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBPath:            getEnv("DB_PATH", "pos.db"),
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 100),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", time.Hour),

		// Core
		StoreTimeout:    getDuration("STORE_TIMEOUT", 5*time.Second),
		ProductCacheTTL: getDuration("PRODUCT_CACHE_TTL", 30*time.Second),

		// JWT
		JWTSecret:   getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTIssuer:   getEnv("JWT_ISSUER", "pos-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "pos-frontend"),

		TerminalAPIKeyHash: os.Getenv("TERMINAL_API_KEY_HASH"),
	}

	switch config.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", config.DBDriver)
	}

	// A plaintext key is hashed once here and never kept.
	if key := os.Getenv("TERMINAL_API_KEY"); key != "" && config.TerminalAPIKeyHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash TERMINAL_API_KEY: %w", err)
		}
		config.TerminalAPIKeyHash = string(hash)
	}

	return config, nil
}

// DSN returns the PostgreSQL keyword/value connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// PostgresURL returns the connection URL used by golang-migrate.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// MaskedDSN describes the database target without credentials, for logs.
func (c *Config) MaskedDSN() string {
	if c.DBDriver == "sqlite" {
		return "sqlite: " + c.DBPath
	}
	return fmt.Sprintf("Host: %s, DB: %s", c.DBHost, c.DBName)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
