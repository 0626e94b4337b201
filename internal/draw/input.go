package draw

// Rect is the displayed bounding box of the surface in client (viewport)
// coordinates.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Map converts client coordinates to surface pixel coordinates. When the
// box is displayed at a different size than the surface, the offset is
// scaled so pixels line up. A box without a size maps 1:1.
func (r Rect) Map(clientX, clientY float64, surfaceW, surfaceH int) (x, y float64) {
	x = clientX - r.Left
	y = clientY - r.Top
	if r.Width > 0 && surfaceW > 0 {
		x *= float64(surfaceW) / r.Width
	}
	if r.Height > 0 && surfaceH > 0 {
		y *= float64(surfaceH) / r.Height
	}
	return x, y
}

// EventType names a pointer or touch event.
type EventType string

const (
	MouseDown   EventType = "mousedown"
	MouseMove   EventType = "mousemove"
	MouseUp     EventType = "mouseup"
	MouseOut    EventType = "mouseout"
	TouchStart  EventType = "touchstart"
	TouchMove   EventType = "touchmove"
	TouchEnd    EventType = "touchend"
	TouchCancel EventType = "touchcancel"
)

// Touch is a single touch point.
type Touch struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
}

// Event is a pointer or touch input sample in client coordinates.
type Event struct {
	Type    EventType `json:"type"`
	ClientX float64   `json:"clientX"`
	ClientY float64   `json:"clientY"`
	Touches []Touch   `json:"touches,omitempty"`
}
