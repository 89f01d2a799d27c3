// Package config handles global resdb configuration.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/resdb/internal/logger"
)

// Backend names accepted by the backend setting.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Output formats accepted by output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the global resdb configuration.
type Config struct {
	// Data is the dataset loaded when --data is not given.
	Data string `toml:"data"`

	// Backend selects the query executor: memory (default) or sqlite.
	Backend string `toml:"backend"`

	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Queries maps saved query names to query text.
	Queries map[string]string `toml:"queries"`
}

// OutputConfig controls command output.
type OutputConfig struct {
	// Format is text (default) or json.
	Format string `toml:"format"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	// Level is debug, info, warn (default) or error.
	Level string `toml:"level"`
	// JSON switches the log encoder to JSON lines.
	JSON bool `toml:"json"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	CodeTheme string `toml:"code_theme"`
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendMemory, BackendSQLite:
	default:
		return errors.WithHint(errors.Newf("unknown backend %q", c.Backend),
			`backend is "memory" or "sqlite"`)
	}
	switch c.Output.Format {
	case "", FormatText, FormatJSON:
	default:
		return errors.WithHint(errors.Newf("unknown output format %q", c.Output.Format),
			`output.format is "text" or "json"`)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// BackendOrDefault returns the configured backend, memory when unset.
func (c *Config) BackendOrDefault() string {
	if c.Backend == "" {
		return BackendMemory
	}
	return c.Backend
}

// Query returns a saved query by name.
func (c *Config) Query(name string) (string, bool) {
	q, ok := c.Queries[name]
	return q, ok
}

// QueryNames returns saved query names in sorted order.
func (c *Config) QueryNames() []string {
	names := make([]string, 0, len(c.Queries))
	for name := range c.Queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveDataPath resolves a dataset path relative to the config file it was
// read from. Absolute paths and ~/ paths are expanded.
func ResolveDataPath(configPath, data string) string {
	data = strings.TrimSpace(data)
	if data == "" {
		return ""
	}
	if strings.HasPrefix(data, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, data[2:])
		}
	}
	if filepath.IsAbs(data) || configPath == "" {
		return data
	}
	return filepath.Join(filepath.Dir(configPath), data)
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from a specific path.
// Returns a default config if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/resdb/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "resdb", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/resdb/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "resdb", "config.toml"), nil
}

// DefaultConfig is the commented template written by CreateDefault.
const DefaultConfig = `# resdb configuration

# Dataset loaded when --data is not given. Relative paths are resolved
# against this file's directory.
# data = "statements.yaml"

# Query executor: memory or sqlite.
# backend = "memory"

# [output]
# format = "text"

# [log]
# level = "warn"
# json = false

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"

# Saved queries, run with: resdb query <name>
# [queries]
# designers = 'select object where predicate == "my:designer"'
`

// CreateDefault creates a default config file at path if it doesn't exist.
func CreateDefault(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, "failed to create config directory")
	}
	if err := os.WriteFile(path, []byte(DefaultConfig), 0644); err != nil {
		return "", errors.Wrap(err, "failed to write config file")
	}
	return path, nil
}
