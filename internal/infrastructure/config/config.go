// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for tension configuration.
	DefaultConfigDir = ".tension"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultEnvFile is the dotenv file read from the base path.
	DefaultEnvFile = ".env"
	// DefaultMemoryFile is the JSONL store used when nothing else is configured.
	DefaultMemoryFile = "memory.jsonl"
	// DefaultSQLiteFile is the database file used by the sqlite backend.
	DefaultSQLiteFile = "tension.db"
	// DefaultTools is the tool selection used when none is configured.
	DefaultTools = "STC_TOOLS,NARRATIVE_TOOLS,init_llm_guidance"
)

// Store backends.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvMemoryPath    = "COAIAN_MF"
	EnvCurrentChart  = "COAIAN_CURRENT_CHART"
	EnvTools         = "COAIA_TOOLS"
	EnvDisabledTools = "COAIA_DISABLED_TOOLS"
	EnvStoreBackend  = "TENSION_STORE_BACKEND"
	EnvLogEnv        = "TENSION_LOG_ENV"
)

// Config holds runtime configuration (read-only after load).
type Config struct {
	Store        StoreConfig `yaml:"store,omitempty"`
	MCP          MCPConfig   `yaml:"mcp,omitempty"`
	Log          LogConfig   `yaml:"log,omitempty"`
	CurrentChart string      `yaml:"current_chart,omitempty"`
}

// StoreConfig selects and locates the graph store.
type StoreConfig struct {
	// Backend is "jsonl" or "sqlite".
	Backend string `yaml:"backend,omitempty"`
	// MemoryPath is the JSONL file. Relative paths resolve against the base path.
	MemoryPath string `yaml:"memory_path,omitempty"`
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// MCPConfig controls which tools the MCP server registers. Both fields are
// comma or space separated lists of group and tool names.
type MCPConfig struct {
	Tools         string `yaml:"tools,omitempty"`
	DisabledTools string `yaml:"disabled_tools,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Env is "development" or "production".
	Env string `yaml:"env,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:    BackendJSONL,
			MemoryPath: DefaultMemoryFile,
			SQLitePath: filepath.Join(DefaultConfigDir, DefaultSQLiteFile),
		},
		MCP: MCPConfig{
			Tools: DefaultTools,
		},
		Log: LogConfig{
			Env: "development",
		},
	}
}

// Load loads configuration from the .tension directory in basePath. A
// missing config file means defaults. The .env file in basePath is read
// without replacing variables already set, then environment overrides apply.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigFilePath(basePath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(filepath.Join(basePath, DefaultEnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", DefaultEnvFile, err)
	}

	cfg.applyEnvOverrides()
	cfg.resolvePaths(basePath)
	return cfg, nil
}

// LoadEnvFile reads an explicit env file, replacing variables already set,
// and reapplies the environment overrides.
func (c *Config) LoadEnvFile(path string) error {
	if err := godotenv.Overload(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	c.applyEnvOverrides()
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvMemoryPath); v != "" {
		c.Store.MemoryPath = v
	}
	if v := os.Getenv(EnvCurrentChart); v != "" {
		c.CurrentChart = v
	}
	if v := os.Getenv(EnvTools); v != "" {
		c.MCP.Tools = v
	}
	if v := os.Getenv(EnvDisabledTools); v != "" {
		c.MCP.DisabledTools = v
	}
	if v := os.Getenv(EnvStoreBackend); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv(EnvLogEnv); v != "" {
		c.Log.Env = v
	}
}

func (c *Config) resolvePaths(basePath string) {
	if c.Store.MemoryPath != "" && !filepath.IsAbs(c.Store.MemoryPath) {
		c.Store.MemoryPath = filepath.Join(basePath, c.Store.MemoryPath)
	}
	if c.Store.SQLitePath != "" && c.Store.SQLitePath != ":memory:" && !filepath.IsAbs(c.Store.SQLitePath) {
		c.Store.SQLitePath = filepath.Join(basePath, c.Store.SQLitePath)
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSONL:
		if c.Store.MemoryPath == "" {
			return errors.New("store.memory_path is required for the jsonl backend")
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("store.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want %s or %s)", c.Store.Backend, BackendJSONL, BackendSQLite)
	}
	return nil
}

// ConfigDir returns the path to the .tension config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
