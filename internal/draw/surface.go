// Package draw captures freehand strokes into an undoable history and
// renders them onto a raster surface.
package draw

import (
	"image"
	"image/color"
	"math"

	"github.com/jacksmith/tn/internal/model"
)

// Surface is an RGBA raster that strokes are painted onto. A cleared
// surface is fully transparent.
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a transparent surface of the given size.
func NewSurface(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Image returns the backing image. Callers must not retain it across draws.
func (s *Surface) Image() *image.RGBA { return s.img }

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// Blank reports whether no pixel has been painted.
func (s *Surface) Blank() bool {
	for _, b := range s.img.Pix {
		if b != 0 {
			return false
		}
	}
	return true
}

// DrawSegment paints a line from (x0,y0) to (x1,y1) with a round pen of
// the given color and width. A zero-length segment paints a dot.
func (s *Surface) DrawSegment(x0, y0, x1, y1 float64, hex string, width float64) {
	c := toRGBA(hex)
	r := width / 2
	if r < 0.5 {
		r = 0.5
	}

	dx := x1 - x0
	dy := y1 - y0
	steps := math.Abs(dx)
	if ay := math.Abs(dy); ay > steps {
		steps = ay
	}
	n := int(math.Ceil(steps))
	if n <= 0 {
		s.stamp(x0, y0, r, c)
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		s.stamp(x0+dx*t, y0+dy*t, r, c)
	}
}

// stamp fills a disc of radius r centred on (cx, cy).
func (s *Surface) stamp(cx, cy, r float64, c color.RGBA) {
	b := s.img.Bounds()
	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))
	r2 := r * r

	for y := max(minY, b.Min.Y); y < min(maxY+1, b.Max.Y); y++ {
		for x := max(minX, b.Min.X); x < min(maxX+1, b.Max.X); x++ {
			px := float64(x) + 0.5 - cx
			py := float64(y) + 0.5 - cy
			if px*px+py*py <= r2 {
				s.img.SetRGBA(x, y, c)
			}
		}
	}
}

// Replay clears the surface and repaints strokes in order. Every segment
// takes the color and width stored on its end point, so a stroke may change
// style from point to point.
func (s *Surface) Replay(strokes []model.Stroke) {
	s.Clear()
	for _, stroke := range strokes {
		if len(stroke) == 0 {
			continue
		}
		prev := stroke[0]
		for _, p := range stroke {
			s.DrawSegment(prev.X, prev.Y, p.X, p.Y, p.Color, p.LineWidth)
			prev = p
		}
	}
}

func toRGBA(hex string) color.RGBA {
	r, g, b, err := model.ParseColor(hex)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
