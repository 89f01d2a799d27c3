package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a borderless two-space-separated table for name/value listings
// such as saved queries and stats. Widths are measured with lipgloss so
// styled cells line up.
type Table struct {
	rows   [][]string
	widths []int
}

// NewTable creates a table with cols columns.
func NewTable(cols int) *Table {
	return &Table{widths: make([]int, cols)}
}

// AddRow adds a row. Extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.widths))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
			t.widths[i] = max(t.widths[i], lipgloss.Width(cells[i]))
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) String() string {
	var sb strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell)))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
