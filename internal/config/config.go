// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// Config holds every runtime option. The signing key and the database handle
// derived from DBPath are the only process-wide shared state.
type Config struct {
	Env             string
	Port            string
	DBPath          string
	SigningKey      string
	Issuer          string
	Audience        []string
	TokenExpiration int
	BcryptCost      int
}

// Load reads configuration from the environment. A missing .env file is not
// an error; a missing signing key outside development is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "4000"),
		DBPath:          getEnv("DB_PATH", "file:staffdir.db?cache=shared"),
		SigningKey:      getEnv("JWT_SECRET", ""),
		Issuer:          getEnv("JWT_ISSUER", "staffdir"),
		TokenExpiration: getEnvInt("JWT_EXPIRATION_HOURS", 24),
		BcryptCost:      getEnvInt("BCRYPT_COST", 14),
	}

	if audience := getEnv("JWT_AUDIENCE", ""); audience != "" {
		for _, aud := range strings.Split(audience, ",") {
			if aud = strings.TrimSpace(aud); aud != "" {
				cfg.Audience = append(cfg.Audience, aud)
			}
		}
	}

	if cfg.SigningKey == "" {
		if cfg.Env != "development" {
			return nil, errors.New("JWT_SECRET is required outside development", errors.CategoryBadInput).
				WithTextCode("MISSING_SIGNING_KEY")
		}
		cfg.SigningKey = "development-secret-do-not-use"
	}

	if cfg.TokenExpiration < 1 {
		return nil, errors.New("JWT_EXPIRATION_HOURS must be >= 1", errors.CategoryBadInput).
			WithTextCode("INVALID_TOKEN_EXPIRATION")
	}

	return cfg, nil
}

// GetSigningKey implements auth.Config.
func (c *Config) GetSigningKey() string { return c.SigningKey }

// GetTokenExpiration implements auth.Config.
func (c *Config) GetTokenExpiration() int { return c.TokenExpiration }

// GetIssuer implements auth.Config.
func (c *Config) GetIssuer() string { return c.Issuer }

// GetAudience implements auth.Config.
func (c *Config) GetAudience() []string { return c.Audience }

// GetBcryptCost implements auth.Config.
func (c *Config) GetBcryptCost() int { return c.BcryptCost }

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}
