package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aidanlsb/resdb/internal/model"
)

// column sizes one column of a statement listing. Columns with a zero ratio
// are fixed at min; the others share the remaining width by ratio.
type column struct {
	ratio float64
	min   int
	max   int
	right bool
	style lipgloss.Style
}

var (
	numCol       = column{min: 4, max: 6, right: true, style: Muted}
	idCol        = column{min: 5, max: 8, style: Muted}
	subjectCol   = column{ratio: 0.30, min: 12, max: 40, style: lipgloss.NewStyle()}
	predicateCol = column{ratio: 0.25, min: 10, max: 30, style: Bold}
	objectCol    = column{ratio: 0.45, min: 12, max: 60, style: lipgloss.NewStyle()}
	valueCol     = column{ratio: 0.35, min: 12, max: 50, style: lipgloss.NewStyle()}
	sourceCol    = column{ratio: 0.65, min: 20, max: 100, style: Muted}

	// [num, id, subject, predicate, object]
	statementColumns = []column{numCol, idCol, subjectCol, predicateCol, objectCol}
	// [num, value, source statement]
	valueColumns = []column{numCol, valueCol, sourceCol}
)

const (
	leftMargin = 2
	colGap     = 2
)

// RenderStatements lists statements one per row with their back-reference
// id. Resource objects are accented and invalid statements muted.
func RenderStatements(display *DisplayContext, stmts []model.Statement) string {
	if len(stmts) == 0 {
		return ""
	}
	widths := layoutWidths(display, statementColumns)
	rows := make([][]string, len(stmts))
	for i, st := range stmts {
		rows[i] = []string{
			rowNum(i+1, len(stmts)),
			model.RefSubject(st.ID()),
			Subject(truncate(st.Subject(), widths[2])),
			st.Predicate(),
			objectCell(st, widths[4]),
		}
	}
	return renderRows(statementColumns, widths, rows)
}

// RenderValues renders projected values next to the statements that
// produced them. values and stmts are parallel.
func RenderValues(display *DisplayContext, values []string, stmts []model.Statement) string {
	if len(values) == 0 {
		return ""
	}
	widths := layoutWidths(display, valueColumns)
	rows := make([][]string, len(values))
	for i, v := range values {
		source := ""
		if i < len(stmts) {
			source = truncate(stmts[i].String(), widths[2])
		}
		rows[i] = []string{rowNum(i+1, len(values)), truncate(v, widths[1]), source}
	}
	return renderRows(valueColumns, widths, rows)
}

func objectCell(st model.Statement, width int) string {
	obj := truncate(st.Object(), width)
	switch st.Kind() {
	case model.KindResource:
		return Accent.Render(obj)
	case model.KindInvalid:
		return Muted.Render(obj)
	}
	return obj
}

// layoutWidths fits cols into the terminal width.
func layoutWidths(display *DisplayContext, cols []column) []int {
	widths := make([]int, len(cols))
	var fixed int
	var totalRatio float64
	for i, c := range cols {
		if c.ratio == 0 {
			widths[i] = c.min
			fixed += c.min
		} else {
			totalRatio += c.ratio
		}
	}

	flexible := display.AvailableWidth(leftMargin) - fixed - (len(cols)-1)*colGap
	if flexible < 0 {
		flexible = 0
	}
	for i, c := range cols {
		if c.ratio == 0 {
			continue
		}
		w := int(float64(flexible) * c.ratio / totalRatio)
		w = max(w, c.min)
		if c.max > 0 {
			w = min(w, c.max)
		}
		widths[i] = w
	}
	return widths
}

// renderRows draws rows without outer borders and with a muted rule between
// rows.
func renderRows(cols []column, widths []int, rows [][]string) string {
	return table.New().
		Border(lipgloss.Border{Top: "─", Bottom: "─", Middle: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(true).
		BorderStyle(Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			c := cols[col]
			style := c.style.Width(widths[col])
			if c.right {
				style = style.Align(lipgloss.Right)
			}
			if col < len(cols)-1 {
				style = style.PaddingRight(colGap)
			}
			return style
		}).
		Rows(rows...).
		Render()
}

// truncate shortens s to at most n runes, ending in "..." and preferring a
// word boundary past the middle.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	cut := string(r[:n-3])
	if i := strings.LastIndex(cut, " "); i > n/2 {
		cut = cut[:i]
	}
	return cut + "..."
}

// rowNum right-aligns num to the width of last, at least two columns.
func rowNum(num, last int) string {
	s := strconv.Itoa(num)
	width := max(len(strconv.Itoa(last)), 2)
	return strings.Repeat(" ", width-len(s)) + s
}
