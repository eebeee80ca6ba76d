package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the attendance policy knobs.
type AttendanceConfig struct {
	// Cooldown is the minimum gap between a clock-out and the next clock-in.
	Cooldown time.Duration
	// MaxOpenTime caps how long a session may stay open before the sweeper
	// closes it.
	MaxOpenTime time.Duration
	// SweepInterval is how often the stale-session sweeper runs.
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Attendance policy
	cooldownMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_COOLDOWN_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_COOLDOWN_MINUTES: %w", err)
	}
	maxOpenHours, err := strconv.Atoi(getEnv("ATTENDANCE_MAX_OPEN_HOURS", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_MAX_OPEN_HOURS: %w", err)
	}
	sweepMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_SWEEP_INTERVAL_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SWEEP_INTERVAL_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Cooldown:      time.Duration(cooldownMinutes) * time.Minute,
		MaxOpenTime:   time.Duration(maxOpenHours) * time.Hour,
		SweepInterval: time.Duration(sweepMinutes) * time.Minute,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.Cooldown < 0 {
		return fmt.Errorf("ATTENDANCE_COOLDOWN_MINUTES must not be negative")
	}
	if c.Attendance.MaxOpenTime <= 0 {
		return fmt.Errorf("ATTENDANCE_MAX_OPEN_HOURS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
