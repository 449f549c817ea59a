package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces all environment overrides.
const envPrefix = "LODSERVER_"

// LoadFromFile reads a YAML config file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Load builds the effective configuration with layered precedence:
// defaults, then the optional config file, then environment variables.
// A .env file in the working directory is folded into the environment
// first.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	cfg := DefaultConfig()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
		logger.Debug("loaded config file", "path", path)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides individual settings from LODSERVER_* variables.
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(envPrefix + key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(envPrefix + key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(envPrefix + key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setInt("SERVER_PORT", &cfg.Server.Port)
	setDuration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	setDuration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)

	setString("REPOSITORY_NAME", &cfg.Repository.Name)
	setString("REPOSITORY_BASE_URL", &cfg.Repository.BaseURL)
	setString("REPOSITORY_ADMIN_EMAIL", &cfg.Repository.AdminEmail)
	setString("REPOSITORY_ID", &cfg.Repository.ID)
	setString("REPOSITORY_EARLIEST_DATESTAMP", &cfg.Repository.EarliestDatestamp)
	setInt("REPOSITORY_PAGE_SIZE", &cfg.Repository.PageSize)
	setString("REPOSITORY_VOCABULARY_VERSION", &cfg.Repository.VocabularyVersion)

	setString("STORE_QUERY_URL", &cfg.Store.QueryURL)
	setString("STORE_GRAPH_URL", &cfg.Store.GraphURL)
	setDuration("STORE_TIMEOUT", &cfg.Store.Timeout)

	setString("ENTITIES_DIR", &cfg.Entities.Dir)
	setBool("ENTITIES_WATCH", &cfg.Entities.Watch)
	setDuration("ENTITIES_DEBOUNCE", &cfg.Entities.Debounce)

	setString("REFRESH_SCHEDULE", &cfg.Refresh.Schedule)
	setString("REFRESH_GRAPH_BASE", &cfg.Refresh.GraphBase)

	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)
}

// NewLogger builds the service logger from the log settings.
func NewLogger(cfg LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
