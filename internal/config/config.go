// Package config loads the immutable process configuration.
//
// Resolution order: Default, then an optional TOML file, then WORKLOG_*
// environment overrides, then Validate.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "worklog.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WORKLOG_"

// Config is the full process configuration.
type Config struct {
	Project  ProjectConfig  `toml:"project"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`
	HTTP     HTTPConfig     `toml:"http"`
	Tasks    TasksConfig    `toml:"tasks"`
	Log      LogConfig      `toml:"log"`
}

type ProjectConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Debug   bool   `toml:"debug"`
}

// DatabaseConfig selects the task store. Path is used by sqlite, URL by postgres.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
}

// RedisConfig enables the stats cache when URL is non-empty.
type RedisConfig struct {
	URL        string `toml:"url"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type AuthConfig struct {
	SecretKey                string `toml:"secret_key"`
	Issuer                   string `toml:"issuer"`
	AccessTokenExpireMinutes int    `toml:"access_token_expire_minutes"`
	BcryptCost               int    `toml:"bcrypt_cost"`
}

type HTTPConfig struct {
	Addr                   string   `toml:"addr"`
	CORSOrigins            []string `toml:"cors_origins"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
}

// TasksConfig holds query engine settings.
type TasksConfig struct {
	// Timezone is the IANA zone that defines "today".
	Timezone string `toml:"timezone"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Project: ProjectConfig{Name: "worklog", Version: "1.0.0"},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   defaultDBPath(),
		},
		Redis: RedisConfig{TTLSeconds: 300},
		Auth: AuthConfig{
			Issuer:                   "worklog",
			AccessTokenExpireMinutes: 30,
		},
		HTTP: HTTPConfig{
			Addr:                   ":8000",
			CORSOrigins:            []string{"*"},
			ShutdownTimeoutSeconds: 30,
		},
		Tasks: TasksConfig{Timezone: "UTC"},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "worklog.db"
	}
	return filepath.Join(home, ".worklog", "worklog.db")
}

// Load builds the configuration from path (optional) and the process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup.
// An empty path falls back to WORKLOG_CONFIG, then to DefaultFile when it exists.
func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = getenv(EnvPrefix + "CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultFile
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	str("DATABASE_DRIVER", &cfg.Database.Driver)
	str("DATABASE_PATH", &cfg.Database.Path)
	if v := getenv(EnvPrefix + "DATABASE_URL"); v != "" {
		cfg.Database.URL = v
		if getenv(EnvPrefix+"DATABASE_DRIVER") == "" && isPostgresURL(v) {
			cfg.Database.Driver = DriverPostgres
		}
	}
	str("SECRET_KEY", &cfg.Auth.SecretKey)
	str("REDIS_URL", &cfg.Redis.URL)
	str("HTTP_ADDR", &cfg.HTTP.Addr)
	str("TIMEZONE", &cfg.Tasks.Timezone)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	if v := getenv(EnvPrefix + "CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := getenv(EnvPrefix + "DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sDEBUG %q: %w", EnvPrefix, v, err)
		}
		cfg.Project.Debug = debug
	}
	return nil
}

func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database.driver %q", c.Database.Driver))
	}

	if c.Auth.AccessTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("auth.access_token_expire_minutes must be positive"))
	}
	if c.Redis.TTLSeconds < 0 {
		errs = append(errs, errors.New("redis.ttl_seconds must not be negative"))
	}
	if c.HTTP.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("http.shutdown_timeout_seconds must be positive"))
	}
	if _, err := time.LoadLocation(c.Tasks.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid tasks.timezone %q: %w", c.Tasks.Timezone, err))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Location returns the zone used for "today" queries. Validate guarantees it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Tasks.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AccessTokenTTL returns the access token lifetime.
func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Auth.AccessTokenExpireMinutes) * time.Minute
}

// CacheTTL returns the stats cache entry lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

// ShutdownTimeout returns how long serve waits for in-flight work on exit.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.HTTP.ShutdownTimeoutSeconds) * time.Second
}
