package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiGray   = "\033[90m"
)

// colorEnabled defaults to whether stdout is a terminal; --no-color turns it off.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled reports whether output is colored.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + ansiReset
}

func Green(s string) string  { return paint(ansiGreen, s) }
func Red(s string) string    { return paint(ansiRed, s) }
func Yellow(s string) string { return paint(ansiYellow, s) }
func Gray(s string) string   { return paint(ansiGray, s) }

// Checkbox renders a todo's completed flag.
func Checkbox(done bool) string {
	if done {
		return Green("[x]")
	}
	return "[ ]"
}

// DefaultMaxTitleWidth caps title columns in list output.
const DefaultMaxTitleWidth = 60

// Table lays out rows in aligned columns separated by two spaces.
type Table struct {
	rows   [][]string
	widths []int
	limits map[int]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{limits: map[int]int{}}
}

// SetMaxWidth truncates column col to at most n visible characters.
func (t *Table) SetMaxWidth(col, n int) {
	t.limits[col] = n
}

// AddRow appends a row. Rows may have different lengths.
func (t *Table) AddRow(cols ...string) {
	for len(t.widths) < len(cols) {
		t.widths = append(t.widths, 0)
	}
	for i, col := range cols {
		w := visibleWidth(col)
		if limit, ok := t.limits[i]; ok {
			w = min(w, limit)
		}
		t.widths[i] = max(t.widths[i], w)
	}
	t.rows = append(t.rows, cols)
}

// Render writes the table to w. The last column is never padded.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var b strings.Builder
		for i, col := range row {
			if limit, ok := t.limits[i]; ok {
				col = Truncate(col, limit)
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(col)
			if i < len(t.widths)-1 && i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", t.widths[i]-visibleWidth(col)))
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// Truncate shortens s to n visible characters, ending in "..." when there
// is room for it. Escape codes are kept, and a reset is appended when a
// colored string is cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if visibleWidth(s) <= n {
		return s
	}
	const ellipsis = "..."
	if n < len(ellipsis) {
		out, _ := cutVisible(s, n)
		return out
	}
	out, colored := cutVisible(s, n-len(ellipsis))
	out += ellipsis
	if colored {
		out += ansiReset
	}
	return out
}

// cutVisible returns the prefix of s holding n visible characters and
// whether any escape code was seen.
func cutVisible(s string, n int) (string, bool) {
	var b strings.Builder
	visible := 0
	escape, colored := false, false
	for _, r := range s {
		switch {
		case r == '\033':
			escape, colored = true, true
		case escape:
			escape = r != 'm'
		case visible >= n:
			return b.String(), colored
		default:
			visible++
		}
		b.WriteRune(r)
	}
	return b.String(), colored
}

// visibleWidth counts the runes of s outside ANSI escape codes.
func visibleWidth(s string) int {
	n := 0
	escape := false
	for _, r := range s {
		switch {
		case r == '\033':
			escape = true
		case escape:
			escape = r != 'm'
		default:
			n++
		}
	}
	return n
}
