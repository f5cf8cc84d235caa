package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort string
	AppMode string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	SQLitePath  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	WSPingIntervalSec int
	RateLimitPerMin   int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:           getEnv("PORT", "3001"),
		AppMode:           getEnv("APP_MODE", "debug"),
		DBDriver:          getEnv("DB_DRIVER", DriverPostgres),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "nexora"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		SQLitePath:        getEnv("SQLITE_PATH", "nexora.db"),
		RedisHost:         getEnv("REDIS_HOST", ""),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		WSPingIntervalSec: getEnvAsInt("WS_PING_INTERVAL_SEC", 30),
		RateLimitPerMin:   getEnvAsInt("RATE_LIMIT_PER_MIN", 60),
	}
}

// DSN returns the connection string for the configured driver. DATABASE_URL
// wins over the discrete DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) PingInterval() time.Duration {
	if c.WSPingIntervalSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.WSPingIntervalSec) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
