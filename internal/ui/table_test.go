package ui

import (
	"strings"
	"testing"

	"github.com/aidanlsb/resdb/internal/model"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("a", "bb", "c")
	tbl.AddRow("dddd", "e", "ffff", "dropped")

	got := tbl.String()
	want := "a     bb  c\ndddd  e   ffff\n"
	if got != want {
		t.Errorf("Table.String() = %q, want %q", got, want)
	}
	if NewTable(2).String() != "" {
		t.Errorf("empty table should render empty string")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
		{"hello big world", 12, "hello big..."},
		{"Sähkö Sähkö Sähkö", 10, "Sähkö..."},
		{"ääää", 4, "ääää"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestRowNum(t *testing.T) {
	tests := []struct {
		num, last int
		want      string
	}{
		{3, 9, " 3"},
		{7, 120, "  7"},
		{120, 120, "120"},
	}
	for _, tt := range tests {
		if got := rowNum(tt.num, tt.last); got != tt.want {
			t.Errorf("rowNum(%d, %d) = %q, want %q", tt.num, tt.last, got, tt.want)
		}
	}
}

func TestLayoutWidths(t *testing.T) {
	wide := layoutWidths(NewDisplayContextWithWidth(120), statementColumns)
	if wide[0] != numCol.min || wide[1] != idCol.min {
		t.Errorf("fixed widths = %d, %d", wide[0], wide[1])
	}
	if w := wide[2]; w < subjectCol.min || w > subjectCol.max {
		t.Errorf("subject width %d outside [%d, %d]", w, subjectCol.min, subjectCol.max)
	}
	if total := sum(wide) + (len(wide)-1)*colGap; total > 120-leftMargin {
		t.Errorf("layout %v overflows 120 columns", wide)
	}

	narrow := layoutWidths(NewDisplayContextWithWidth(10), statementColumns)
	if narrow[4] != objectCol.min {
		t.Errorf("narrow object width = %d, want min %d", narrow[4], objectCol.min)
	}

	huge := layoutWidths(NewDisplayContextWithWidth(1000), valueColumns)
	if huge[1] != valueCol.max || huge[2] != sourceCol.max {
		t.Errorf("huge widths = %v, want capped at max", huge)
	}
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

func TestRenderStatements(t *testing.T) {
	display := NewDisplayContextWithWidth(120)
	if got := RenderStatements(display, nil); got != "" {
		t.Errorf("no statements should render empty, got %q", got)
	}

	a := model.Resource("Topi", "my:wife", "Anna")
	a.SetID(4)
	b := model.LiteralAbout(4, "my:kids", "6")
	b.SetID(5)

	out := RenderStatements(display, []model.Statement{a, b})
	for _, want := range []string{"#4", "Topi", "my:wife", "Anna", "#5", "my:kids"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderValues(t *testing.T) {
	st := model.Literal("Olli", "my:title", "CEO")
	st.SetID(2)
	out := RenderValues(NewDisplayContextWithWidth(120), []string{"CEO"}, []model.Statement{st})
	if !strings.Contains(out, "CEO") || !strings.Contains(out, "Olli") {
		t.Errorf("rendered values missing content:\n%s", out)
	}
}
