package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Store selects and configures the collection backend
	Store StoreConfig

	// Database configuration (postgres driver)
	Database DatabaseConfig

	// Redis configuration (redis driver)
	Redis RedisConfig

	// SQLite configuration (sqlite driver)
	SQLite SQLiteConfig

	// Vote event publishing
	Events EventsConfig

	// Pagination defaults
	Query QueryConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig holds collection store settings
type StoreConfig struct {
	Driver   string
	SeedDemo bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// SQLiteConfig holds the embedded database location
type SQLiteConfig struct {
	Path string
}

// EventsConfig holds Kafka settings for vote events
type EventsConfig struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// QueryConfig holds pagination settings
type QueryConfig struct {
	NewsPageSize    int
	CommentPageSize int
	MaxPageSize     int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
			SeedDemo: getBoolEnv("SEED_DEMO_DATA", false),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "fact_check_board"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getIntEnv("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "factcheck:"),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "./data/board.db"),
		},
		Events: EventsConfig{
			KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", "")),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "news_votes"),
		},
		Query: QueryConfig{
			NewsPageSize:    getIntEnv("NEWS_PAGE_SIZE", 10),
			CommentPageSize: getIntEnv("COMMENT_PAGE_SIZE", 5),
			MaxPageSize:     getIntEnv("MAX_PAGE_SIZE", 100),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultLogFormat()),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: memory, postgres, redis, sqlite (got %q)", c.Store.Driver)
	}

	if c.Query.NewsPageSize <= 0 {
		return fmt.Errorf("NEWS_PAGE_SIZE must be positive")
	}
	if c.Query.CommentPageSize <= 0 {
		return fmt.Errorf("COMMENT_PAGE_SIZE must be positive")
	}
	if c.Query.MaxPageSize < c.Query.NewsPageSize || c.Query.MaxPageSize < c.Query.CommentPageSize {
		return fmt.Errorf("MAX_PAGE_SIZE cannot be below the default page sizes")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

// defaultLogFormat switches to the console writer in development
func defaultLogFormat() string {
	if os.Getenv("ENV") == "development" {
		return "pretty"
	}
	return "json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
