package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	TokenFormatSigned = "signed"
	TokenFormatLegacy = "legacy"

	minTokenSecretBytes = 32
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	DatabaseURL   string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	TokenFormat   string
	TokenSecret   string
	TokenTTL      time.Duration
	BcryptCost    int
	CORSOrigins   []string
	LogLevel      string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "2000"),
		DatabaseURL:   getenv("DATABASE_URL", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "mern"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		TokenFormat:   strings.ToLower(getenv("TOKEN_FORMAT", TokenFormatSigned)),
		TokenSecret:   getenv("TOKEN_SECRET", ""),
		TokenTTL:      getenvDuration("TOKEN_TTL", 24*time.Hour),
		BcryptCost:    getenvInt("BCRYPT_COST", 10),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
}

// Validate reports the first setting that would prevent the server from starting.
func (c *Config) Validate() error {
	switch c.TokenFormat {
	case TokenFormatSigned:
		if len(c.TokenSecret) < minTokenSecretBytes {
			return fmt.Errorf("TOKEN_SECRET must be at least %d characters", minTokenSecretBytes)
		}
	case TokenFormatLegacy:
		// Postgres ids are UUIDs, which contain the legacy delimiter.
		if strings.HasPrefix(c.DatabaseURL, "postgres") {
			return fmt.Errorf("TOKEN_FORMAT=legacy cannot be used with a postgres DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown TOKEN_FORMAT %q", c.TokenFormat)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
