package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := &Config{
		Data:    "data.yaml",
		Backend: BackendSQLite,
		Output:  OutputConfig{Format: FormatJSON},
		Log:     LogConfig{Level: "info"},
		UI:      UIConfig{Accent: "#ff8800"},
		Queries: map[string]string{"kids": `select int(object) where predicate == "my:kids"`},
	}
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if loaded.Data != cfg.Data || loaded.Backend != cfg.Backend || loaded.Output != cfg.Output ||
		loaded.Log != cfg.Log || loaded.UI != cfg.UI {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
	if q, _ := loaded.Query("kids"); q != cfg.Queries["kids"] {
		t.Errorf("saved query = %q", q)
	}
}

func TestSaveToOmitsEmptySettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTo(path, &Config{Backend: "  "}); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "" {
		t.Errorf("expected empty file, got %q", data)
	}
}

func TestSaveToRequiresPath(t *testing.T) {
	if err := SaveTo(" ", &Config{}); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSaveAndRemoveQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("backend = \"sqlite\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := SaveQuery(path, "wives", `select object where predicate == "my:wife"`); err != nil {
		t.Fatalf("SaveQuery: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("SaveQuery dropped backend setting")
	}
	if _, ok := cfg.Query("wives"); !ok {
		t.Fatal("saved query missing")
	}

	removed, err := RemoveQuery(path, "wives")
	if err != nil || !removed {
		t.Fatalf("RemoveQuery = %v, %v", removed, err)
	}
	removed, err = RemoveQuery(path, "wives")
	if err != nil || removed {
		t.Errorf("second RemoveQuery = %v, %v", removed, err)
	}
}
