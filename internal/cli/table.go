package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/weave/internal/colour"
)

// ansiPattern matches the escape sequences emitted by ColourSquare so
// column widths count visible characters only.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Table is a plain-text table with dynamic column widths.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, padding: 2}
}

// AddRow appends a row. Short rows are padded to the header count,
// long ones truncated.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render formats the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleLen(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if l := visibleLen(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-visibleLen(cell)+t.padding))
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	separators := make([]string, len(t.headers))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	writeRow(separators)
	for _, row := range t.rows {
		writeRow(row)
	}
	return b.String()
}

func visibleLen(s string) int {
	return len([]rune(ansiPattern.ReplaceAllString(s, "")))
}

// ColourSquare renders a truecolour swatch for a hex colour. Colours
// that fail to parse render as their raw string.
func ColourSquare(hex string) string {
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm■\x1b[0m", rgb.R, rgb.G, rgb.B)
}

// ColourSquares renders a run of swatches separated by spaces.
func ColourSquares(colors []string) string {
	squares := make([]string, len(colors))
	for i, c := range colors {
		squares[i] = ColourSquare(c)
	}
	return strings.Join(squares, " ")
}

// terminalWidth reports the terminal width, defaulting to 80 columns
// when stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// nameColumnWidth sizes the name column from the terminal width so long
// wallpaper names do not push the colour swatches off screen.
func nameColumnWidth() int {
	w := terminalWidth() / 4
	if w < 12 {
		w = 12
	}
	return w
}

// truncate shortens a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
