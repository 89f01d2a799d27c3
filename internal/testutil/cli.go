package testutil

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// TestVersion is linked into the binary built for CLI tests.
const TestVersion = "v0.0.0-test"

var cliBinary struct {
	once sync.Once
	path string
	err  error
}

// CLIResult is the decoded JSON envelope of one resdb invocation.
type CLIResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CLIError
	Warnings []CLIWarning
	Meta     *CLIMeta
	RawJSON  string
	ExitCode int
}

// CLIError is the error member of the envelope.
type CLIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

// CLIWarning is one entry of the warnings member, e.g. an invalid statement
// reported alongside query results.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CLIMeta carries the match count and query time.
type CLIMeta struct {
	Count       int   `json:"count,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

// BuildCLI compiles cmd/resdb once per test binary and returns its path.
func BuildCLI(t *testing.T) string {
	t.Helper()
	cliBinary.once.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			cliBinary.err = err
			return
		}
		dir, err := os.MkdirTemp("", "resdb-cli-*")
		if err != nil {
			cliBinary.err = err
			return
		}
		path := filepath.Join(dir, "resdb")
		cmd := exec.Command("go", "build",
			"-ldflags", "-X github.com/aidanlsb/resdb/internal/buildinfo.Version="+TestVersion,
			"-o", path, "./cmd/resdb")
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			cliBinary.err = errors.New(err.Error() + "\n" + string(out))
			return
		}
		cliBinary.path = path
	})
	if cliBinary.err != nil {
		t.Fatalf("failed to build resdb: %v", cliBinary.err)
	}
	return cliBinary.path
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// RunCLI runs resdb with --json and the workspace's --config, adding --data
// when the workspace has a dataset. Logs go to stderr and are discarded.
func (w *TestWorkspace) RunCLI(args ...string) *CLIResult {
	w.t.Helper()

	flags := []string{"--config", w.ConfigPath(), "--json"}
	if w.dataset != nil {
		flags = append(flags, "--data", w.DatasetPath())
	}
	out, err := exec.Command(BuildCLI(w.t), append(flags, args...)...).Output()

	result := &CLIResult{RawJSON: string(out)}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		result.ExitCode = -1
	}

	var env struct {
		OK       bool                   `json:"ok"`
		Data     map[string]interface{} `json:"data"`
		Error    *CLIError              `json:"error"`
		Warnings []CLIWarning           `json:"warnings"`
		Meta     *CLIMeta               `json:"meta"`
	}
	if err := json.Unmarshal(out, &env); err != nil {
		result.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "invalid JSON envelope: " + err.Error(),
		}
		return result
	}
	result.OK = env.OK
	result.Data = env.Data
	result.Error = env.Error
	result.Warnings = env.Warnings
	result.Meta = env.Meta
	return result
}

// MustSucceed fails the test unless the envelope reports ok.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		msg := "no error member"
		if r.Error != nil {
			msg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("command failed: %s\nRaw: %s", msg, r.RawJSON)
	}
	return r
}

// MustFail fails the test unless the command failed with code.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected %s, command succeeded\nRaw: %s", code, r.RawJSON)
	}
	if r.Error == nil || r.Error.Code != code {
		t.Fatalf("expected %s, got %+v\nRaw: %s", code, r.Error, r.RawJSON)
	}
	return r
}

// MustFailWithMessage fails the test unless the command failed and its
// message or suggestion contains substr.
func (r *CLIResult) MustFailWithMessage(t *testing.T, substr string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected failure, command succeeded\nRaw: %s", r.RawJSON)
	}
	if r.Error != nil && !strings.Contains(r.Error.Message, substr) && !strings.Contains(r.Error.Suggestion, substr) {
		t.Errorf("error %q (suggestion %q) does not mention %q", r.Error.Message, r.Error.Suggestion, substr)
	}
	return r
}

// DataList returns data[key] as a list, or nil.
func (r *CLIResult) DataList(key string) []interface{} {
	list, _ := r.Data[key].([]interface{})
	return list
}

// DataString returns data[key] as a string, or "".
func (r *CLIResult) DataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}

// ItemIDs returns the statement ids of a query result's items, in order.
func (r *CLIResult) ItemIDs() []int {
	items := r.DataList("items")
	ids := make([]int, 0, len(items))
	for _, it := range items {
		item, _ := it.(map[string]interface{})
		st, _ := item["statement"].(map[string]interface{})
		id, _ := st["id"].(float64)
		ids = append(ids, int(id))
	}
	return ids
}
