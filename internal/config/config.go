package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Seed      SeedConfig      `yaml:"seed"`
	Static    StaticConfig    `yaml:"static"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects "http" (REST + MCP over HTTP) or "stdio" (MCP only).
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// StoreConfig selects the registry backend: "memory" or "sqlite".
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// SeedConfig optionally points at a YAML catalog replacing the built-in one.
type SeedConfig struct {
	Path string `yaml:"path"`
}

// StaticConfig optionally serves front-end assets from disk instead of the
// embedded copy.
type StaticConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Store: StoreConfig{
			Driver: "memory",
			DSN:    ":memory:",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML
// file and environment variables, in that order of increasing precedence.
func Load() (Config, error) {
	if err := loadDotEnv(envOr("ACTIVITIES_ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Default()

	if path := os.Getenv("ACTIVITIES_CONFIG_PATH"); path != "" {
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

// Validate rejects unknown modes and drivers and out-of-range ports.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == "sqlite" && c.Store.DSN == "" {
		return errors.New("store dsn is required for sqlite")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("ACTIVITIES_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ACTIVITIES_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITIES_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("ACTIVITIES_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if driver := os.Getenv("ACTIVITIES_STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	if dsn := os.Getenv("ACTIVITIES_STORE_DSN"); dsn != "" {
		cfg.Store.DSN = dsn
	}
	if seed := os.Getenv("ACTIVITIES_SEED_PATH"); seed != "" {
		cfg.Seed.Path = seed
	}
	if dir := os.Getenv("ACTIVITIES_STATIC_DIR"); dir != "" {
		cfg.Static.Dir = dir
	}
	if level := os.Getenv("ACTIVITIES_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("ACTIVITIES_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if enabled := os.Getenv("ACTIVITIES_METRICS_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITIES_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = v
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

// loadDotEnv populates unset variables from path. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
