package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"spinwin/internal/utils"
	"spinwin/pkg/cache"
	"spinwin/pkg/database"
)

const (
	StoreMongoDB = "mongodb"
	StoreMemory  = "memory"
)

type Config struct {
	App      *AppConfig
	Database *DatabaseConfig
	Redis    *RedisConfig
	Security *SecurityConfig
}

type AppConfig struct {
	Name            string
	Version         string
	Environment     string
	Port            int
	Host            string
	Debug           bool
	LogLevel        string
	LogFormat       string
	Timezone        string
	Currency        string
	Store           string
	SeedFile        string
	ShutdownTimeout time.Duration
}

type SecurityConfig struct {
	JWTSecret          string
	JWTAccessTokenTTL  time.Duration
	RateLimitPerMinute int
	MaxLoginAttempts   int
	LoginLockoutTime   time.Duration
	CORSAllowedOrigins []string
	TrustedProxies     []string
}

func Load() (*Config, error) {
	config := &Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		Security: loadSecurityConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.App.Store {
	case StoreMongoDB, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.App.Store)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}

	if c.IsProduction() && (c.Security.JWTSecret == "" || c.Security.JWTSecret == defaultJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	if c.Security.MaxLoginAttempts < 1 {
		return fmt.Errorf("MAX_LOGIN_ATTEMPTS must be positive")
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

const defaultJWTSecret = "spinwin-dev-secret"

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:            getEnv("APP_NAME", utils.AppName),
		Version:         getEnv("APP_VERSION", utils.AppVersion),
		Environment:     getEnv("APP_ENV", "development"),
		Port:            getEnvAsInt("APP_PORT", 4000),
		Host:            getEnv("APP_HOST", "0.0.0.0"),
		Debug:           getEnvAsBool("APP_DEBUG", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		Timezone:        getEnv("APP_TIMEZONE", utils.DefaultTimeZone),
		Currency:        strings.ToUpper(getEnv("APP_CURRENCY", "INR")),
		Store:           strings.ToLower(getEnv("APP_STORE", StoreMongoDB)),
		SeedFile:        getEnv("APP_SEED_FILE", ""),
		ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
		JWTAccessTokenTTL:  getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		MaxLoginAttempts:   getEnvAsInt("MAX_LOGIN_ATTEMPTS", 5),
		LoginLockoutTime:   getEnvAsDuration("LOGIN_LOCKOUT_TIME", 15*time.Minute),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Location is the default reporting zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RedisCacheConfig maps the redis section onto the cache connector.
func (c *Config) RedisCacheConfig() *cache.RedisConfig {
	r := c.Redis
	return &cache.RedisConfig{
		Host:         r.Host,
		Port:         r.Port,
		Password:     r.Password,
		DB:           r.DB,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConns,
		DialTimeout:  r.DialTimeout,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
		KeyPrefix:    r.KeyPrefix,
	}
}

// MongoConfig maps the database section onto the MongoDB connector.
func (c *Config) MongoConfig() *database.DatabaseConfig {
	d := c.Database
	return &database.DatabaseConfig{
		URI:            d.URI,
		Database:       d.Database,
		MaxPoolSize:    d.MaxPoolSize,
		MinPoolSize:    d.MinPoolSize,
		ConnectTimeout: d.ConnectTimeout,
		SocketTimeout:  d.SocketTimeout,
	}
}
