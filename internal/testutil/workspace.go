package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DatasetFile and ConfigFile are the names Build writes into the workspace.
const (
	DatasetFile = "data.yaml"
	ConfigFile  = "config.toml"
)

// TestWorkspace is a temporary directory holding a dataset and a config file.
type TestWorkspace struct {
	Path    string
	t       *testing.T
	dataset *string
	config  *string
}

// NewTestWorkspace creates a new workspace builder.
// Call Build() to create the actual directory.
func NewTestWorkspace(t *testing.T) *TestWorkspace {
	t.Helper()
	return &TestWorkspace{t: t}
}

// WithDataset sets the dataset YAML content.
func (w *TestWorkspace) WithDataset(yaml string) *TestWorkspace {
	w.dataset = &yaml
	return w
}

// WithConfig sets the config TOML content.
func (w *TestWorkspace) WithConfig(toml string) *TestWorkspace {
	w.config = &toml
	return w
}

// Build creates the workspace directory and the configured files.
func (w *TestWorkspace) Build() *TestWorkspace {
	w.t.Helper()
	w.Path = w.t.TempDir()
	if w.dataset != nil {
		w.writeFile(w.DatasetPath(), *w.dataset)
	}
	if w.config != nil {
		w.writeFile(w.ConfigPath(), *w.config)
	}
	return w
}

// DatasetPath returns the absolute path of the dataset file.
func (w *TestWorkspace) DatasetPath() string {
	return filepath.Join(w.Path, DatasetFile)
}

// ConfigPath returns the absolute path of the config file. The file need not
// exist.
func (w *TestWorkspace) ConfigPath() string {
	return filepath.Join(w.Path, ConfigFile)
}

func (w *TestWorkspace) writeFile(path, content string) {
	w.t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		w.t.Fatalf("failed to write %s: %v", path, err)
	}
}
