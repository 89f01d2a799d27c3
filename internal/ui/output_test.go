package ui

import (
	"strings"
	"testing"

	"github.com/aidanlsb/resdb/internal/model"
)

func TestCounts(t *testing.T) {
	tests := []struct {
		errors, warnings int
		want             string
	}{
		{1, 0, "(1 error)"},
		{3, 0, "(3 errors)"},
		{0, 1, "(1 warning)"},
		{2, 1, "(2 errors, 1 warning)"},
	}
	for _, tt := range tests {
		if got := ErrorWarningCounts(tt.errors, tt.warnings); got != tt.want {
			t.Errorf("ErrorWarningCounts(%d, %d) = %q, want %q", tt.errors, tt.warnings, got, tt.want)
		}
	}
}

func TestStatementFormatting(t *testing.T) {
	if got := StatementID(12); !strings.Contains(got, "#12") {
		t.Errorf("StatementID(12) = %q", got)
	}
	if got := Object(model.Literal("Topi", "my:title", "CTO")); !strings.Contains(got, `"CTO"`) {
		t.Errorf("literal object = %q, want quoted", got)
	}
	if got := Object(model.Resource("Topi", "my:wife", "Anna")); strings.Contains(got, `"`) || !strings.Contains(got, "Anna") {
		t.Errorf("resource object = %q, want unquoted", got)
	}
	if got := Subject("#3"); !strings.Contains(got, "#3") {
		t.Errorf("Subject(#3) = %q", got)
	}
	if got := Success("done"); got != "✓ done" {
		t.Errorf("Success = %q", got)
	}
}
