package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable("ID", "NAME")
	table.AddRow("1", "alpha")
	table.AddRow("22", "beta")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want 4 (header, separator, two rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "--") {
		t.Errorf("separator line = %q", lines[1])
	}

	// The NAME column must start at the same offset on every line.
	offset := strings.Index(lines[0], "NAME")
	if strings.Index(lines[2], "alpha") != offset {
		t.Errorf("columns misaligned:\n%s", out)
	}
	if strings.Index(lines[3], "beta") != offset {
		t.Errorf("columns misaligned:\n%s", out)
	}
}

func TestTableShortRowsPadded(t *testing.T) {
	table := NewTable("A", "B", "C")
	table.AddRow("only")

	out := table.Render()
	if !strings.Contains(out, "only") {
		t.Errorf("short row dropped:\n%s", out)
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	if out := NewTable().Render(); out != "" {
		t.Errorf("empty table rendered %q", out)
	}
}

func TestVisibleLenIgnoresAnsi(t *testing.T) {
	plain := "abc"
	coloured := "\x1b[38;2;255;0;0mabc\x1b[0m"
	if visibleLen(plain) != visibleLen(coloured) {
		t.Errorf("visibleLen(%q) = %d, visibleLen(plain) = %d",
			coloured, visibleLen(coloured), visibleLen(plain))
	}
	if visibleLen(plain) != 3 {
		t.Errorf("visibleLen(%q) = %d, want 3", plain, visibleLen(plain))
	}
}

func TestColourSquareAlignment(t *testing.T) {
	table := NewTable("COLOUR", "NAME")
	table.AddRow(ColourSquare("#ff0000"), "red")
	table.AddRow("plain", "none")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	offset := strings.Index(lines[0], "NAME")
	stripped := ansiPattern.ReplaceAllString(lines[2], "")
	if strings.Index(stripped, "red") != offset {
		t.Errorf("swatch column misaligned:\n%s", out)
	}
}

func TestColourSquareInvalidHexPassesThrough(t *testing.T) {
	if got := ColourSquare("nope"); got != "nope" {
		t.Errorf("ColourSquare(nope) = %q, want the raw string", got)
	}
}

func TestColourSquares(t *testing.T) {
	out := ColourSquares([]string{"#ff0000", "#00ff00"})
	if strings.Count(out, "■") != 2 {
		t.Errorf("expected two swatches in %q", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "shorter than limit", input: "abc", n: 10, want: "abc"},
		{name: "at limit", input: "abc", n: 3, want: "abc"},
		{name: "over limit", input: "abcdef", n: 3, want: "abc"},
		{name: "multibyte runes", input: "héllo", n: 2, want: "hé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
