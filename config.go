package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var (
	configFile string = getEnv("CONFIG_FILE", "")
)

type Config struct {
	Port                string   `mapstructure:"PORT"`
	Timeout             int      `mapstructure:"TIMEOUT"`
	StoreDriver         string   `mapstructure:"STORE_DRIVER"`
	DatabaseURL         string   `mapstructure:"DATABASE_URL"`
	DBMaxConns          int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns          int32    `mapstructure:"DB_MIN_CONNS"`
	SQLitePath          string   `mapstructure:"SQLITE_PATH"`
	ClientDataFile      string   `mapstructure:"CLIENT_DATA_FILE"`
	GuidelineFile       string   `mapstructure:"GUIDELINE_FILE"`
	ClientServiceURL    string   `mapstructure:"CLIENT_SERVICE_URL"`
	GuidelineServiceURL string   `mapstructure:"GUIDELINE_SERVICE_URL"`
	AuthMode            string   `mapstructure:"AUTH_MODE"`
	JWTKey              string   `mapstructure:"JWT_KEY"`
	JWTIssuer           string   `mapstructure:"JWT_ISSUER"`
	JWTAudience         string   `mapstructure:"JWT_AUDIENCE"`
	AuthHost            string   `mapstructure:"AUTH_HOST"`
	CORSOrigins         []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS        float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst      int      `mapstructure:"RATE_LIMIT_BURST"`
}

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
	storeSQLite   = "sqlite"
	storeRemote   = "remote"

	authJWT    = "jwt"
	authOpenID = "openid"
	authNone   = "none"
)

var configKeys = []string{
	"PORT", "TIMEOUT", "STORE_DRIVER", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"SQLITE_PATH", "CLIENT_DATA_FILE", "GUIDELINE_FILE", "CLIENT_SERVICE_URL",
	"GUIDELINE_SERVICE_URL", "AUTH_MODE", "JWT_KEY", "JWT_ISSUER", "JWT_AUDIENCE",
	"AUTH_HOST", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// readConfig loads the service configuration. Values come from the optional
// config file and are overridden by environment variables.
func readConfig() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("TIMEOUT", 30)
	v.SetDefault("STORE_DRIVER", storeMemory)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("SQLITE_PATH", "data/health-report.db")
	v.SetDefault("CLIENT_DATA_FILE", "data/clientData.json")
	v.SetDefault("GUIDELINE_FILE", "data/medicalGuidelines.json")
	v.SetDefault("AUTH_MODE", authJWT)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// Comma separated origins from the environment arrive as a single string
	if len(config.CORSOrigins) == 1 && strings.Contains(config.CORSOrigins[0], ",") {
		config.CORSOrigins = strings.Split(config.CORSOrigins[0], ",")
	}
	for i, origin := range config.CORSOrigins {
		config.CORSOrigins[i] = strings.TrimSpace(origin)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate refuses configurations the service cannot run with.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case authJWT:
		if c.JWTKey == "" {
			return fmt.Errorf("JWT_KEY is required when AUTH_MODE is %q", authJWT)
		}
	case authOpenID:
		if c.AuthHost == "" {
			return fmt.Errorf("AUTH_HOST is required when AUTH_MODE is %q", authOpenID)
		}
	case authNone:
	default:
		return fmt.Errorf("AUTH_MODE must be %q, %q or %q, got %q", authJWT, authOpenID, authNone, c.AuthMode)
	}

	switch c.StoreDriver {
	case storeMemory:
	case storePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", storePostgres)
		}
	case storeSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER is %q", storeSQLite)
		}
	case storeRemote:
		if c.ClientServiceURL == "" || c.GuidelineServiceURL == "" {
			return fmt.Errorf("CLIENT_SERVICE_URL and GUIDELINE_SERVICE_URL are required when STORE_DRIVER is %q", storeRemote)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("TIMEOUT must be positive, got %d", c.Timeout)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
