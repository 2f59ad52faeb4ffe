package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v6"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Lock       LockConfig
	Redis      RedisConfig
}

type DatabaseConfig struct {
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        int    `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"postgres"`
	Password    string `env:"DB_PASSWORD"`
	Name        string `env:"DB_NAME" envDefault:"cmlabs-presence"`
	SSLMode     string `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns    int32  `env:"DB_MIN_CONNS" envDefault:"5"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `env:"JWT_SECRET_KEY"`
	AccessExpiration string `env:"JWT_ACCESS_EXPIRATION_TIME" envDefault:"1h"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name               string   `env:"APP_NAME" envDefault:"presence-api"`
	Port               int      `env:"APP_PORT" envDefault:"8080"`
	Env                string   `env:"APP_ENV" envDefault:"development"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// AttendanceConfig holds the check-in policy
type AttendanceConfig struct {
	Timezone          string `env:"ATTENDANCE_TIMEZONE" envDefault:"Asia/Jakarta"`
	CheckInStart      string `env:"ATTENDANCE_CHECK_IN_START" envDefault:"07:30:00"`
	CheckInEnd        string `env:"ATTENDANCE_CHECK_IN_END" envDefault:"09:00:00"`
	ReportConcurrency int    `env:"REPORT_CONCURRENCY" envDefault:"8"`
}

const (
	LockDriverLocal = "local"
	LockDriverRedis = "redis"
)

// LockConfig selects how check-ins are serialised per employee
type LockConfig struct {
	Driver string        `env:"LOCK_DRIVER" envDefault:"local"`
	TTL    time.Duration `env:"LOCK_TTL" envDefault:"10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Prefix   string `env:"REDIS_PREFIX" envDefault:"presence:lock"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.CheckInWindow(); err != nil {
		return err
	}
	if c.Attendance.ReportConcurrency < 1 {
		return fmt.Errorf("REPORT_CONCURRENCY must be at least 1")
	}

	switch c.Lock.Driver {
	case LockDriverLocal:
	case LockDriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when LOCK_DRIVER is redis")
		}
		if c.Lock.TTL <= 0 {
			return fmt.Errorf("LOCK_TTL must be positive")
		}
	default:
		return fmt.Errorf("LOCK_DRIVER must be %q or %q, got %q", LockDriverLocal, LockDriverRedis, c.Lock.Driver)
	}

	return nil
}

// Location returns the attendance time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Attendance.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	return loc, nil
}

// CheckInWindow returns the configured check-in window
func (c *Config) CheckInWindow() (attendance.CheckInWindow, error) {
	w, err := attendance.ParseCheckInWindow(c.Attendance.CheckInStart, c.Attendance.CheckInEnd)
	if err != nil {
		return attendance.CheckInWindow{}, fmt.Errorf("invalid ATTENDANCE_CHECK_IN_START/END: %w", err)
	}
	return w, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}
