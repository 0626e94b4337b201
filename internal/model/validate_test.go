package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTool(t *testing.T) {
	tests := []struct {
		input   string
		want    Tool
		wantErr bool
	}{
		{"pen", ToolPen, false},
		{"Eraser", ToolEraser, false},
		{"  PEN ", ToolPen, false},
		{"brush", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTool(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown tool")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToolStyle(t *testing.T) {
	color, width := ToolStyle(ToolPen)
	assert.Equal(t, "#000000", color)
	assert.Equal(t, 2.0, width)

	color, width = ToolStyle(ToolEraser)
	assert.Equal(t, "#ffffff", color)
	assert.Equal(t, 10.0, width)
}

func TestNormalizeColor(t *testing.T) {
	t.Run("long form is lowercased", func(t *testing.T) {
		got, err := NormalizeColor("#FF8800")
		require.NoError(t, err)
		assert.Equal(t, "#ff8800", got)
	})

	t.Run("short form is expanded", func(t *testing.T) {
		got, err := NormalizeColor("#f80")
		require.NoError(t, err)
		assert.Equal(t, "#ff8800", got)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, in := range []string{"ff8800", "#ff88", "#gggggg", "", "#"} {
			_, err := NormalizeColor(in)
			assert.Error(t, err, "expected error for %q", in)
		}
	})
}

func TestParseColor(t *testing.T) {
	r, g, b, err := ParseColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x10), r)
	assert.Equal(t, uint8(0x20), g)
	assert.Equal(t, uint8(0x30), b)

	_, _, _, err = ParseColor("red")
	assert.Error(t, err)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank())
	assert.True(t, IsBlank("", "  ", "\n\t"))
	assert.False(t, IsBlank("", "x"))
}

func TestCloneStrokes(t *testing.T) {
	orig := []Stroke{{{X: 1, Y: 2, Color: "#000000", LineWidth: 2, Tool: ToolPen}}}
	cp := CloneStrokes(orig)
	cp[0][0].X = 99

	assert.Equal(t, 1.0, orig[0][0].X)
	assert.Nil(t, CloneStrokes(nil))
}

func TestEqualStrokes(t *testing.T) {
	a := []Stroke{{{X: 1, Y: 2, Color: PenColor, LineWidth: PenWidth, Tool: ToolPen}}}

	assert.True(t, EqualStrokes(a, CloneStrokes(a)))
	assert.True(t, EqualStrokes(nil, []Stroke{}))
	assert.False(t, EqualStrokes(a, nil))

	b := CloneStrokes(a)
	b[0][0].Color = "#ff0000"
	assert.False(t, EqualStrokes(a, b))
}

func TestNoteDisplayTitle(t *testing.T) {
	n := Note{}
	assert.Equal(t, "Untitled Note", n.DisplayTitle())
	assert.False(t, n.HasDrawing())

	n.Title = "Groceries"
	n.Drawing = "data:image/png;base64,AAAA"
	assert.Equal(t, "Groceries", n.DisplayTitle())
	assert.True(t, n.HasDrawing())
}
