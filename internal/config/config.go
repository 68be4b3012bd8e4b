// Package config loads server configuration from an optional YAML file,
// an optional .env file and SIGNAGE_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite    = "sqlite"
	DriverSurrealDB = "surrealdb"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Surreal   SurrealConfig   `yaml:"surreal"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Kiosk     KioskConfig     `yaml:"kiosk"`
	Engine    EngineConfig    `yaml:"engine"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type SurrealConfig struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type KioskConfig struct {
	// Token is the shared kiosk bearer token. Empty disables kiosk auth.
	Token string `yaml:"token"`
	// FallbackPath is the last-good playlist directory. Empty keeps it in memory.
	FallbackPath string `yaml:"fallback_path"`
}

type EngineConfig struct {
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	LookupTimeout  time.Duration `yaml:"lookup_timeout"`
	RetryAttempts  int           `yaml:"retry_attempts"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(xdg.DataHome, "signage", "signage.db"),
		},
		Surreal: SurrealConfig{
			Namespace: "signage",
			Database:  "signage",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Kiosk: KioskConfig{
			FallbackPath: filepath.Join(xdg.DataHome, "signage", "lastgood"),
		},
		Engine: EngineConfig{
			FetchTimeout:   5 * time.Second,
			LookupTimeout:  3 * time.Second,
			RetryAttempts:  3,
			RetryBaseDelay: 200 * time.Millisecond,
		},
	}
}

// Load reads configuration. path overrides SIGNAGE_CONFIG_PATH when set.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("SIGNAGE_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric settings.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
	case DriverSurrealDB:
		if c.Surreal.URL == "" {
			return fmt.Errorf("surreal.url is required for driver %s", DriverSurrealDB)
		}
	default:
		return fmt.Errorf("unknown db.driver %q", c.DB.Driver)
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("unknown transport.mode %q", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Engine.RetryAttempts < 1 {
		return fmt.Errorf("engine.retry_attempts must be at least 1")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "SIGNAGE_SERVER_HOST")
	if err := setInt(&cfg.Server.Port, "SIGNAGE_SERVER_PORT"); err != nil {
		return err
	}
	setString(&cfg.DB.Driver, "SIGNAGE_DB_DRIVER")
	setString(&cfg.DB.Path, "SIGNAGE_DB_PATH")
	setString(&cfg.Surreal.URL, "SIGNAGE_SURREAL_URL")
	setString(&cfg.Surreal.Namespace, "SIGNAGE_SURREAL_NAMESPACE")
	setString(&cfg.Surreal.Database, "SIGNAGE_SURREAL_DATABASE")
	setString(&cfg.Surreal.Username, "SIGNAGE_SURREAL_USERNAME")
	setString(&cfg.Surreal.Password, "SIGNAGE_SURREAL_PASSWORD")
	setString(&cfg.Log.Level, "SIGNAGE_LOG_LEVEL")
	setString(&cfg.Log.Path, "SIGNAGE_LOG_PATH")
	setString(&cfg.Transport.Mode, "SIGNAGE_TRANSPORT")
	if err := setBool(&cfg.Auth.Enabled, "SIGNAGE_AUTH_ENABLED"); err != nil {
		return err
	}
	setString(&cfg.Kiosk.Token, "SIGNAGE_KIOSK_TOKEN")
	setString(&cfg.Kiosk.FallbackPath, "SIGNAGE_KIOSK_FALLBACK_PATH")
	if err := setDuration(&cfg.Engine.FetchTimeout, "SIGNAGE_FETCH_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Engine.LookupTimeout, "SIGNAGE_LOOKUP_TIMEOUT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Engine.RetryAttempts, "SIGNAGE_RETRY_ATTEMPTS"); err != nil {
		return err
	}
	return setDuration(&cfg.Engine.RetryBaseDelay, "SIGNAGE_RETRY_BASE_DELAY")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
