package draw

import (
	"image/color"
	"testing"

	"github.com/jacksmith/tn/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSurfaceIsBlank(t *testing.T) {
	s := NewSurface(40, 30)
	assert.Equal(t, 40, s.Width())
	assert.Equal(t, 30, s.Height())
	assert.True(t, s.Blank())

	tiny := NewSurface(0, -5)
	assert.Equal(t, 1, tiny.Width())
	assert.Equal(t, 1, tiny.Height())
}

func TestDrawSegment(t *testing.T) {
	s := NewSurface(50, 50)
	s.DrawSegment(10, 10, 30, 10, "#00ff00", 2)

	green := color.RGBA{G: 0xff, A: 0xff}
	assert.Equal(t, green, s.Image().RGBAAt(10, 10))
	assert.Equal(t, green, s.Image().RGBAAt(20, 10))
	assert.Equal(t, green, s.Image().RGBAAt(29, 10))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(20, 20))
}

func TestDrawSegmentZeroLengthPaintsDot(t *testing.T) {
	s := NewSurface(20, 20)
	s.DrawSegment(5, 5, 5, 5, "#000000", 4)

	assert.False(t, s.Blank())
	assert.Equal(t, color.RGBA{A: 0xff}, s.Image().RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(15, 15))
}

func TestDrawSegmentClipsToBounds(t *testing.T) {
	s := NewSurface(10, 10)
	s.DrawSegment(-20, -20, 30, 30, "#000000", 6)
	assert.False(t, s.Blank())
}

func TestReplayUsesPerPointStyle(t *testing.T) {
	s := NewSurface(60, 20)
	stroke := model.Stroke{
		{X: 5, Y: 10, Color: "#ff0000", LineWidth: 2, Tool: model.ToolPen},
		{X: 25, Y: 10, Color: "#ff0000", LineWidth: 2, Tool: model.ToolPen},
		{X: 50, Y: 10, Color: "#0000ff", LineWidth: 2, Tool: model.ToolPen},
	}
	s.Replay([]model.Stroke{stroke})

	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, s.Image().RGBAAt(15, 10))
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, s.Image().RGBAAt(40, 10))
}

func TestReplayClearsFirst(t *testing.T) {
	s := NewSurface(20, 20)
	s.DrawSegment(0, 0, 19, 19, "#000000", 3)

	s.Replay(nil)
	assert.True(t, s.Blank())

	s.Replay([]model.Stroke{{}})
	assert.True(t, s.Blank())
}

func TestReplayMatchesIncrementalPainting(t *testing.T) {
	s := NewSession(NewSurface(80, 40))
	s.Start(5, 5)
	s.Move(30, 20)
	require.NoError(t, s.SelectColor("#123456"))
	s.Move(60, 35)
	require.NoError(t, s.Stop())
	s.SelectTool(model.ToolEraser)
	s.Start(10, 30)
	s.Move(70, 5)
	require.NoError(t, s.Stop())

	incremental := append([]byte(nil), s.Surface().Image().Pix...)
	s.Redraw()
	assert.Equal(t, incremental, s.Surface().Image().Pix)
}

func TestInvalidColorPaintsBlack(t *testing.T) {
	s := NewSurface(10, 10)
	s.DrawSegment(5, 5, 5, 5, "not-a-color", 2)
	assert.Equal(t, color.RGBA{A: 0xff}, s.Image().RGBAAt(5, 5))
}

func TestEraserLeavesNoFringe(t *testing.T) {
	s := NewSurface(40, 20)
	s.DrawSegment(5, 10, 35, 10, model.PenColor, model.PenWidth)
	s.DrawSegment(5, 10, 35, 10, model.EraserColor, model.EraserWidth)

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			c := s.Image().RGBAAt(x, y)
			if c == (color.RGBA{}) || c == white {
				continue
			}
			t.Fatalf("pixel (%d,%d) is %v, want transparent or white", x, y, c)
		}
	}
}
