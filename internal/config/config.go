// Package config provides reading and writing of qgate configuration.
// Supports both global (~/.qgate/config.yaml) and local (.qgate/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.qgate/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .qgate/config.yaml
	ScopeLocal
)

// Author represents the author metadata recorded against batches and reports.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits bounds what a single batch may contain.
type Limits struct {
	MaxContent *int64 `yaml:"max_content,omitempty"`
	MaxPosts   *int   `yaml:"max_posts,omitempty"`
}

// Gate holds length gate tuning.
type Gate struct {
	SamenessThreshold *float64 `yaml:"sameness_threshold,omitempty"`
}

// Default values applied when not configured.
const (
	DefaultMaxContent        = 1024 * 1024 // 1 MB per post
	DefaultMaxPosts          = 10000
	DefaultSamenessThreshold = 0.9
)

// Validation bounds for configuration values.
const (
	MinMaxContent = 1
	MaxMaxContent = 100 * 1024 * 1024 // 100 MB
	MinMaxPosts   = 1
	MaxMaxPosts   = 1000000
)

// Config contains configuration for qgate.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Gate   Gate   `yaml:"gate,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	if c.Limits.MaxPosts != nil {
		v := *c.Limits.MaxPosts
		if v < MinMaxPosts || v > MaxMaxPosts {
			return fmt.Errorf("%w: max_posts must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPosts, MaxMaxPosts, v)
		}
	}
	if c.Gate.SamenessThreshold != nil {
		v := *c.Gate.SamenessThreshold
		if v <= 0 || v > 1 {
			return fmt.Errorf("%w: sameness_threshold must be greater than 0 and at most 1, got %g",
				ErrInvalidValue, v)
		}
	}
	return nil
}

// MaxContent returns the maximum post size in bytes (defaults to 1 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// MaxPosts returns the maximum number of posts in one batch (defaults to 10000).
func (c *Config) MaxPosts() int {
	if c.Limits.MaxPosts == nil {
		return DefaultMaxPosts
	}
	return *c.Limits.MaxPosts
}

// SamenessThreshold returns the uniformity warning threshold (defaults to 0.9).
func (c *Config) SamenessThreshold() float64 {
	if c.Gate.SamenessThreshold == nil {
		return DefaultSamenessThreshold
	}
	return *c.Gate.SamenessThreshold
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".qgate", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.qgate/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".qgate", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	return loadFile(pathForScope(scope), scope)
}

// loadFile reads path as YAML. A missing file yields an empty config that
// will save back to the same path.
func loadFile(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
