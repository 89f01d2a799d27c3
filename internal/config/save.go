package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/resdb/internal/atomicfile"
)

type persistedConfig struct {
	Data    *string              `toml:"data,omitempty"`
	Backend *string              `toml:"backend,omitempty"`
	Output  *persistedOutput     `toml:"output,omitempty"`
	Log     *persistedLog        `toml:"log,omitempty"`
	UI      *persistedUISettings `toml:"ui,omitempty"`
	Queries map[string]string    `toml:"queries,omitempty"`
}

type persistedOutput struct {
	Format *string `toml:"format,omitempty"`
}

type persistedLog struct {
	Level *string `toml:"level,omitempty"`
	JSON  bool    `toml:"json,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the config to a specific path atomically. Empty settings are
// left out of the file.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Data:    nonEmptyPtr(cfg.Data),
		Backend: nonEmptyPtr(cfg.Backend),
	}
	if format := nonEmptyPtr(cfg.Output.Format); format != nil {
		out.Output = &persistedOutput{Format: format}
	}
	if level := nonEmptyPtr(cfg.Log.Level); level != nil || cfg.Log.JSON {
		out.Log = &persistedLog{Level: level, JSON: cfg.Log.JSON}
	}
	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{Accent: accent, CodeTheme: codeTheme}
	}
	if len(cfg.Queries) > 0 {
		out.Queries = cfg.Queries
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config %s", path)
	}
	return nil
}

// SaveQuery stores a named query in the config at path, keeping the other
// settings.
func SaveQuery(path, name, queryText string) error {
	cfg, err := LoadFrom(path)
	if err != nil {
		return err
	}
	if cfg.Queries == nil {
		cfg.Queries = make(map[string]string)
	}
	cfg.Queries[name] = queryText
	return SaveTo(path, cfg)
}

// RemoveQuery deletes a named query. It reports whether the query existed.
func RemoveQuery(path, name string) (bool, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return false, err
	}
	if _, ok := cfg.Queries[name]; !ok {
		return false, nil
	}
	delete(cfg.Queries, name)
	return true, SaveTo(path, cfg)
}
