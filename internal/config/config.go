package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Metadata MetadataConfig `yaml:"metadata" json:"metadata"`
	Static   StaticConfig   `yaml:"static" json:"static"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string        `yaml:"host" json:"host"`
	Port         int           `yaml:"port" json:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	EnableCORS   bool          `yaml:"enable_cors" json:"enable_cors"`
}

// DatabaseConfig selects and parameterizes the storage backend
type DatabaseConfig struct {
	Type       string `yaml:"type" json:"type"` // "sqlite" or "postgres"
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path"`
	Host       string `yaml:"host" json:"host"`
	Port       int    `yaml:"port" json:"port"`
	Username   string `yaml:"username" json:"username"`
	Password   string `yaml:"password" json:"-"`
	Database   string `yaml:"database" json:"database"`
}

// MetadataConfig holds the external metadata provider settings
type MetadataConfig struct {
	OMDbAPIKey     string        `yaml:"omdb_api_key" json:"-"`
	TMDbAPIKey     string        `yaml:"tmdb_api_key" json:"-"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// StaticConfig holds frontend asset serving configuration
type StaticConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			EnableCORS:   true,
		},
		Database: DatabaseConfig{
			Type:       "sqlite",
			SQLitePath: "films.db",
			Host:       "localhost",
			Port:       5432,
			Username:   "paradiso",
			Database:   "paradiso",
		},
		Metadata: MetadataConfig{
			RequestTimeout: 10 * time.Second,
		},
		Static: StaticConfig{
			Dir: "static",
		},
	}
}

// Load reads configuration from an optional yaml file, then applies
// environment overrides. An empty path means defaults + environment only.
func Load(configPath string) error {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// Get returns the current configuration, loading defaults if Load was never called
func Get() *Config {
	configMu.RLock()
	cfg := globalConfig
	configMu.RUnlock()

	if cfg != nil {
		return cfg
	}

	configMu.Lock()
	defer configMu.Unlock()
	if globalConfig == nil {
		globalConfig = DefaultConfig()
		applyEnvOverrides(globalConfig)
	}
	return globalConfig
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PARADISO_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PARADISO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.Database.Username = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.Database.Database = v
	}
	if v := os.Getenv("OMDB_API_KEY"); v != "" {
		cfg.Metadata.OMDbAPIKey = v
	}
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		cfg.Metadata.TMDbAPIKey = v
	}
	if v := os.Getenv("PARADISO_STATIC_DIR"); v != "" {
		cfg.Static.Dir = v
	}
}

// Reset clears the global configuration (used by tests)
func Reset() {
	configMu.Lock()
	globalConfig = nil
	configMu.Unlock()
}
