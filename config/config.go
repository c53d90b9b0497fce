package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"mitra-support-backend/models"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port          string
	Environment   string
	LogLevel      string
	DefaultLocale models.Locale
	Server        ServerConfig

	// Database
	Database DatabaseConfig

	// Remote chat service
	Remote RemoteConfig

	// Security
	Security SecurityConfig
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Type     string // "memory" or "mongodb"
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
}

type RemoteConfig struct {
	URL     string // empty disables the remote service
	Timeout time.Duration
}

type SecurityConfig struct {
	AllowedOrigins []string
	TrustedProxies []string
}

var cfg *Config

// Load initializes the configuration from the environment, after applying
// any .env files. Missing .env files are not an error.
func Load(envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read env file: %w", err)
	}

	c := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", ""),
		DefaultLocale: models.Locale(strings.ToLower(getEnv("DEFAULT_LOCALE", string(models.LocaleEnglish)))),

		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", "15s"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", "10s"),
		},

		Database: DatabaseConfig{
			Type:     getEnv("DB_TYPE", "memory"),
			URI:      getEnv("DATABASE_URL", ""),
			Name:     getEnv("DB_NAME", "mitra"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),

			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
		},

		Remote: RemoteConfig{
			URL:     getEnv("REMOTE_API_URL", ""),
			Timeout: getEnvAsDuration("REMOTE_TIMEOUT", "5s"),
		},

		Security: SecurityConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
	}

	// Validate configuration
	if err := c.validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg = c
	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		panic("configuration not loaded, call Load() first")
	}
	return cfg
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) validate() error {
	if !c.DefaultLocale.IsSupported() {
		return fmt.Errorf("unsupported default locale %q", c.DefaultLocale)
	}

	switch c.Database.Type {
	case "memory":
	case "mongodb":
		if c.Database.URI == "" && (c.Database.Host == "" || c.Database.Port == "") {
			return fmt.Errorf("database URI or host/port must be provided")
		}
	default:
		return fmt.Errorf("unsupported database type %q", c.Database.Type)
	}

	if c.Remote.URL != "" {
		u, err := url.Parse(c.Remote.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("REMOTE_API_URL must be an absolute http(s) URL")
		}
		if c.Remote.Timeout <= 0 {
			return fmt.Errorf("REMOTE_TIMEOUT must be positive")
		}
	}

	return nil
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}

	if c.Database.Username != "" && c.Database.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
			url.QueryEscape(c.Database.Username),
			url.QueryEscape(c.Database.Password),
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
