package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := ColorEnabled()
	SetColorEnabled(enabled)
	t.Cleanup(func() { SetColorEnabled(prev) })
}

func TestIsTerminalOnFiles(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}

func TestPaint(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		withColor(t, false)
		assert.Equal(t, "milk", Green("milk"))
		assert.Equal(t, "milk", Gray("milk"))
		assert.False(t, ColorEnabled())
	})

	t.Run("enabled", func(t *testing.T) {
		withColor(t, true)
		assert.Equal(t, ansiRed+"oops"+ansiReset, Red("oops"))
		assert.Equal(t, ansiYellow+"3 left"+ansiReset, Yellow("3 left"))
		assert.True(t, ColorEnabled())
	})
}

func TestCheckbox(t *testing.T) {
	withColor(t, false)
	assert.Equal(t, "[x]", Checkbox(true))
	assert.Equal(t, "[ ]", Checkbox(false))

	withColor(t, true)
	assert.Equal(t, Green("[x]"), Checkbox(true))
}

func TestTableRender(t *testing.T) {
	withColor(t, false)

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		NewTable().Render(&buf)
		assert.Empty(t, buf.String())
	})

	t.Run("todo rows align", func(t *testing.T) {
		var buf bytes.Buffer
		table := NewTable()
		table.AddRow("1", Checkbox(false), "buy milk")
		table.AddRow("12", Checkbox(true), "call mom")
		table.Render(&buf)

		assert.Equal(t, "1   [ ]  buy milk\n12  [x]  call mom\n", buf.String())
	})

	t.Run("short rows are not padded", func(t *testing.T) {
		var buf bytes.Buffer
		table := NewTable()
		table.AddRow("1", "Groceries", "2024-01-02 10:00:00")
		table.AddRow("2", "x")
		table.Render(&buf)

		lines := strings.Split(buf.String(), "\n")
		assert.Equal(t, "2  x", lines[1])
	})

	t.Run("colored cells keep alignment", func(t *testing.T) {
		withColor(t, true)
		var buf bytes.Buffer
		table := NewTable()
		table.AddRow(Gray("1"), "a", "end")
		table.AddRow(Gray("10"), "bbbb", "end")
		table.Render(&buf)

		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			assert.Equal(t, len("10  bbbb  end"), visibleWidth(line))
		}
	})
}

func TestTableMaxWidth(t *testing.T) {
	withColor(t, false)
	var buf bytes.Buffer
	table := NewTable()
	table.SetMaxWidth(1, 12)
	table.AddRow("1", "a very long note title indeed", "drawing")
	table.AddRow("2", "short", "-")
	table.Render(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1  a very lo...  drawing", lines[0])
	assert.Equal(t, "2  short         -", lines[1])
}

func TestVisibleWidth(t *testing.T) {
	withColor(t, true)
	assert.Equal(t, 0, visibleWidth(""))
	assert.Equal(t, 4, visibleWidth("note"))
	assert.Equal(t, 4, visibleWidth(Green("note")))
	assert.Equal(t, 0, visibleWidth(Red("")))
	assert.Equal(t, 3, visibleWidth("a"+Yellow("b")+"c"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"fits", "groceries", 9, "groceries"},
		{"room to spare", "milk", 10, "milk"},
		{"cut", "weekly groceries", 10, "weekly ..."},
		{"only ellipsis", "groceries", 3, "..."},
		{"below ellipsis", "groceries", 2, "gr"},
		{"zero", "groceries", 0, ""},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.n)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, visibleWidth(got), tt.n)
		})
	}

	t.Run("colored", func(t *testing.T) {
		withColor(t, true)
		got := Truncate(Green("weekly groceries"), 10)
		assert.Equal(t, ansiGreen+"weekly ..."+ansiReset, got)
		assert.Equal(t, 10, visibleWidth(got))
		assert.Equal(t, Green("milk"), Truncate(Green("milk"), 10))
	})
}
