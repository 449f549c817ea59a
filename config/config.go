// Package config provides configuration loading and management for the
// LOD server.
package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Repository RepositoryConfig `yaml:"repository"`
	Store      StoreConfig      `yaml:"store"`
	Entities   EntitiesConfig   `yaml:"entities"`
	Refresh    RefreshConfig    `yaml:"refresh"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Port is the listen port for the public endpoints.
	Port int `yaml:"port"`
	// ReadTimeout bounds request header and body reads.
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Address returns the HTTP server listen address.
func (c ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RepositoryConfig is the OAI-PMH repository descriptor.
type RepositoryConfig struct {
	// Name is the human-readable repository name in Identify.
	Name string `yaml:"name"`
	// BaseURL is the public harvesting endpoint URL.
	BaseURL string `yaml:"base_url"`
	// AdminEmail is the repository contact in Identify.
	AdminEmail string `yaml:"admin_email"`
	// ID is the repository identifier in the oai-identifier scheme.
	ID string `yaml:"id"`
	// EarliestDatestamp is advertised in Identify and used as the
	// datestamp for records without any date predicate.
	EarliestDatestamp string `yaml:"earliest_datestamp"`
	// PageSize is the harvest page size.
	PageSize int `yaml:"page_size"`
	// VocabularyVersion selects the published vocabulary ("v1" or
	// "v3").
	VocabularyVersion string `yaml:"vocabulary_version"`
}

// StoreConfig configures the backing triple store.
type StoreConfig struct {
	// QueryURL is the SPARQL query endpoint.
	QueryURL string `yaml:"query_url"`
	// GraphURL is the Graph Store Protocol endpoint.
	GraphURL string `yaml:"graph_url"`
	// Timeout bounds individual store requests.
	Timeout time.Duration `yaml:"timeout"`
}

// EntitiesConfig configures the file-backed entity repositories.
type EntitiesConfig struct {
	// Dir is the directory of YAML entity documents.
	Dir string `yaml:"dir"`
	// Watch enables rebuilds on file change events.
	Watch bool `yaml:"watch"`
	// Debounce coalesces bursts of change events.
	Debounce time.Duration `yaml:"debounce"`
}

// RefreshConfig configures the periodic dataset rebuild.
type RefreshConfig struct {
	// Schedule is a cron expression. Empty disables the schedule.
	Schedule string `yaml:"schedule"`
	// GraphBase prefixes the per-build named graph URIs.
	GraphBase string `yaml:"graph_base"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Repository: RepositoryConfig{
			Name:              "Earth Science Metadata Catalog",
			BaseURL:           "http://localhost:8080/oai",
			AdminEmail:        "admin@localhost.localdomain",
			ID:                "localhost",
			EarliestDatestamp: "2015-01-01T00:00:00Z",
			PageSize:          100,
			VocabularyVersion: "v1",
		},
		Store: StoreConfig{
			QueryURL: "http://localhost:3030/lod/query",
			GraphURL: "http://localhost:3030/lod/data",
			Timeout:  60 * time.Second,
		},
		Entities: EntitiesConfig{
			Dir:      "entities",
			Watch:    true,
			Debounce: 2 * time.Second,
		},
		Refresh: RefreshConfig{
			Schedule:  "@hourly",
			GraphBase: "urn:lodserver:snapshot",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := validation.ValidateStruct(&c.Repository,
		validation.Field(&c.Repository.Name, validation.Required),
		validation.Field(&c.Repository.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Repository.AdminEmail, validation.Required, is.EmailFormat),
		validation.Field(&c.Repository.PageSize, validation.Required, validation.Min(1)),
		validation.Field(&c.Repository.VocabularyVersion, validation.In("v1", "v3")),
	); err != nil {
		return fmt.Errorf("repository: %w", err)
	}
	if err := validation.ValidateStruct(&c.Store,
		validation.Field(&c.Store.QueryURL, validation.Required, is.URL),
		validation.Field(&c.Store.GraphURL, validation.Required, is.URL),
	); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := validation.ValidateStruct(&c.Entities,
		validation.Field(&c.Entities.Dir, validation.Required),
	); err != nil {
		return fmt.Errorf("entities: %w", err)
	}
	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Log.Format, validation.In("text", "json")),
	); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Merge merges another config into this one; other takes precedence
// for non-zero values.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Server.Port != 0 {
		c.Server.Port = other.Server.Port
	}
	if other.Server.ReadTimeout != 0 {
		c.Server.ReadTimeout = other.Server.ReadTimeout
	}
	if other.Server.WriteTimeout != 0 {
		c.Server.WriteTimeout = other.Server.WriteTimeout
	}

	if other.Repository.Name != "" {
		c.Repository.Name = other.Repository.Name
	}
	if other.Repository.BaseURL != "" {
		c.Repository.BaseURL = other.Repository.BaseURL
	}
	if other.Repository.AdminEmail != "" {
		c.Repository.AdminEmail = other.Repository.AdminEmail
	}
	if other.Repository.ID != "" {
		c.Repository.ID = other.Repository.ID
	}
	if other.Repository.EarliestDatestamp != "" {
		c.Repository.EarliestDatestamp = other.Repository.EarliestDatestamp
	}
	if other.Repository.PageSize != 0 {
		c.Repository.PageSize = other.Repository.PageSize
	}
	if other.Repository.VocabularyVersion != "" {
		c.Repository.VocabularyVersion = other.Repository.VocabularyVersion
	}

	if other.Store.QueryURL != "" {
		c.Store.QueryURL = other.Store.QueryURL
	}
	if other.Store.GraphURL != "" {
		c.Store.GraphURL = other.Store.GraphURL
	}
	if other.Store.Timeout != 0 {
		c.Store.Timeout = other.Store.Timeout
	}

	if other.Entities.Dir != "" {
		c.Entities.Dir = other.Entities.Dir
	}
	if other.Entities.Watch {
		c.Entities.Watch = true
	}
	if other.Entities.Debounce != 0 {
		c.Entities.Debounce = other.Entities.Debounce
	}

	if other.Refresh.Schedule != "" {
		c.Refresh.Schedule = other.Refresh.Schedule
	}
	if other.Refresh.GraphBase != "" {
		c.Refresh.GraphBase = other.Refresh.GraphBase
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}
