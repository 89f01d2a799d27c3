package ui

import (
	"strings"
	"testing"

	builtindocs "github.com/aidanlsb/resdb/docs"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		want    string
	}{
		{"heading", "# Query language", 80, "Query language"},
		{"default width", "select where kind == resource", 0, "kind == resource"},
		{"term table", "| Term | Value |\n|---|---|\n| `id` | the statement id |\n", 80, "statement id"},
		{"query example", "```\nselect subject where attr(\"my:wife\") == \"Anna\"\n```\n", 80, "my:wife"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderMarkdown(tt.content, tt.width)
			if err != nil {
				t.Fatalf("RenderMarkdown() error = %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("rendered output missing %q:\n%s", tt.want, out)
			}
			if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
				t.Errorf("expected a single trailing newline, got %q", out)
			}
		})
	}
}

func TestRenderBuiltinDocs(t *testing.T) {
	for _, name := range []string{"query-language.md", "datasets.md", "configuration.md"} {
		content, err := builtindocs.FS.ReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if _, err := RenderMarkdown(string(content), 100); err != nil {
			t.Errorf("render %s: %v", name, err)
		}
	}
}

func TestDocStyle(t *testing.T) {
	style := docStyle()
	if style.H1.Underline == nil || !*style.H1.Underline {
		t.Errorf("expected H1 headings to be underlined")
	}
	if style.Code.Color == nil || style.CodeBlock.Color == nil {
		t.Errorf("expected inline code and code blocks to be colored")
	}
	if style.CodeBlock.Theme == "" {
		t.Errorf("expected code blocks to use a syntax theme")
	}
}

func TestConfigureMarkdownCodeTheme(t *testing.T) {
	orig := codeTheme
	t.Cleanup(func() { codeTheme = orig })

	tests := []struct {
		in   string
		want string
	}{
		{"dracula", "dracula"},
		{"  DrAcUlA ", "dracula"},
		{"not-a-real-theme", defaultCodeTheme},
		{"", defaultCodeTheme},
	}
	for _, tt := range tests {
		ConfigureMarkdownCodeTheme(tt.in)
		if codeTheme != tt.want {
			t.Errorf("ConfigureMarkdownCodeTheme(%q): theme = %q, want %q", tt.in, codeTheme, tt.want)
		}
		if got := docStyle().CodeBlock.Theme; got != tt.want {
			t.Errorf("docStyle theme = %q, want %q", got, tt.want)
		}
	}
}
