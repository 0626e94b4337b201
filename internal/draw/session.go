package draw

import (
	"log/slog"

	"github.com/jacksmith/tn/internal/model"
)

// ChangeFunc is called with copies of both stacks after every commit,
// undo, redo and clear. It is how a session persists its history.
type ChangeFunc func(committed, redo []model.Stroke) error

// Session captures pointer input into strokes and keeps an undo/redo
// history of committed strokes.
//
// A session is Idle until Start, Capturing until Stop or Leave, then Idle
// again with the stroke committed. Committing does not clear the redo
// stack; only Clear and Discard reset it.
type Session struct {
	surface  *Surface
	bounds   Rect
	logger   *slog.Logger
	onChange ChangeFunc

	committed []model.Stroke
	redo      []model.Stroke
	active    model.Stroke
	capturing bool

	tool  model.Tool
	color string
	width float64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for dropped-input diagnostics.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBounds sets the surface's displayed bounding box.
func WithBounds(r Rect) SessionOption {
	return func(s *Session) { s.bounds = r }
}

// WithChangeHook installs fn as the session's persistence hook.
func WithChangeHook(fn ChangeFunc) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

// WithHistory restores previously persisted stacks.
func WithHistory(committed, redo []model.Stroke) SessionOption {
	return func(s *Session) {
		s.committed = model.CloneStrokes(committed)
		s.redo = model.CloneStrokes(redo)
	}
}

// NewSession returns an idle session drawing on surface with the pen tool.
func NewSession(surface *Surface, opts ...SessionOption) *Session {
	color, width := model.ToolStyle(model.DefaultTool)
	s := &Session{
		surface: surface,
		logger:  slog.New(slog.DiscardHandler),
		tool:    model.DefaultTool,
		color:   color,
		width:   width,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.surface.Replay(s.committed)
	return s
}

// Surface returns the raster the session paints on.
func (s *Session) Surface() *Surface { return s.surface }

// Bounds returns the surface's displayed bounding box.
func (s *Session) Bounds() Rect { return s.bounds }

// SetBounds updates the bounding box used to map client coordinates, e.g.
// after the page scrolls or the canvas is resized.
func (s *Session) SetBounds(r Rect) { s.bounds = r }

// SetChangeHook replaces the persistence hook.
func (s *Session) SetChangeHook(fn ChangeFunc) { s.onChange = fn }

// Tool returns the selected tool.
func (s *Session) Tool() model.Tool { return s.tool }

// Color returns the color applied to new points.
func (s *Session) Color() string { return s.color }

// Width returns the line width applied to new points.
func (s *Session) Width() float64 { return s.width }

// SelectTool switches tool and resets color and width to the tool's
// defaults. Points already drawn keep their style.
func (s *Session) SelectTool(t model.Tool) {
	s.tool = t
	s.color, s.width = model.ToolStyle(t)
}

// SelectColor sets the color for subsequent points. It has no effect while
// the eraser is selected.
func (s *Session) SelectColor(c string) error {
	norm, err := model.NormalizeColor(c)
	if err != nil {
		return err
	}
	if s.tool == model.ToolEraser {
		s.logger.Debug("color ignored while erasing", "color", norm)
		return nil
	}
	s.color = norm
	return nil
}

// Capturing reports whether a stroke is being drawn.
func (s *Session) Capturing() bool { return s.capturing }

// Active returns a copy of the in-progress stroke.
func (s *Session) Active() model.Stroke { return s.active.Clone() }

// Committed returns a copy of the committed strokes, oldest first.
func (s *Session) Committed() []model.Stroke { return model.CloneStrokes(s.committed) }

// RedoStack returns a copy of the redo stack, oldest first.
func (s *Session) RedoStack() []model.Stroke { return model.CloneStrokes(s.redo) }

func (s *Session) point(clientX, clientY float64) model.Point {
	x, y := s.bounds.Map(clientX, clientY, s.surface.Width(), s.surface.Height())
	return model.Point{X: x, Y: y, Color: s.color, LineWidth: s.width, Tool: s.tool}
}

// Start begins a stroke at the given client position. A Start while
// already capturing is ignored.
func (s *Session) Start(clientX, clientY float64) {
	if s.capturing {
		s.logger.Debug("start ignored: already capturing")
		return
	}
	p := s.point(clientX, clientY)
	s.capturing = true
	s.active = model.Stroke{p}
	s.surface.DrawSegment(p.X, p.Y, p.X, p.Y, p.Color, p.LineWidth)
}

// Move extends the active stroke and paints the new segment. Without an
// active capture it does nothing.
func (s *Session) Move(clientX, clientY float64) {
	if !s.capturing {
		return
	}
	p := s.point(clientX, clientY)
	prev := s.active[len(s.active)-1]
	s.active = append(s.active, p)
	s.surface.DrawSegment(prev.X, prev.Y, p.X, p.Y, p.Color, p.LineWidth)
}

// Stop commits the active stroke. The redo stack is left untouched.
func (s *Session) Stop() error {
	if !s.capturing {
		return nil
	}
	s.capturing = false
	stroke := s.active
	s.active = nil
	if len(stroke) == 0 {
		return nil
	}
	s.committed = append(s.committed, stroke)
	return s.changed()
}

// Leave handles the pointer leaving the surface; it behaves like Stop.
func (s *Session) Leave() error {
	return s.Stop()
}

// HandleEvent dispatches a mouse or touch event. Touch events carrying no
// touch point are dropped.
func (s *Session) HandleEvent(ev Event) error {
	switch ev.Type {
	case MouseDown:
		s.Start(ev.ClientX, ev.ClientY)
	case MouseMove:
		s.Move(ev.ClientX, ev.ClientY)
	case MouseUp:
		return s.Stop()
	case MouseOut:
		return s.Leave()
	case TouchStart, TouchMove:
		if len(ev.Touches) == 0 {
			s.logger.Debug("touch event without touch points dropped", "type", ev.Type)
			return nil
		}
		t := ev.Touches[0]
		if ev.Type == TouchStart {
			s.Start(t.ClientX, t.ClientY)
		} else {
			s.Move(t.ClientX, t.ClientY)
		}
	case TouchEnd, TouchCancel:
		return s.Stop()
	default:
		s.logger.Debug("unknown event dropped", "type", ev.Type)
	}
	return nil
}

// Undo moves the most recent committed stroke to the redo stack and
// redraws. With nothing committed it does nothing.
func (s *Session) Undo() error {
	if len(s.committed) == 0 {
		return nil
	}
	last := s.committed[len(s.committed)-1]
	s.committed = s.committed[:len(s.committed)-1]
	s.redo = append(s.redo, last)
	s.surface.Replay(s.committed)
	return s.changed()
}

// Redo moves the most recent undone stroke back to the committed strokes
// and redraws. With an empty redo stack it does nothing.
func (s *Session) Redo() error {
	if len(s.redo) == 0 {
		return nil
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.committed = append(s.committed, last)
	s.surface.Replay(s.committed)
	return s.changed()
}

// Clear empties both stacks and the surface.
func (s *Session) Clear() error {
	s.Discard()
	return s.changed()
}

// Discard empties both stacks and the surface without calling the change
// hook. It is used when the caller has already persisted the reset.
func (s *Session) Discard() {
	s.committed = nil
	s.redo = nil
	s.active = nil
	s.capturing = false
	s.surface.Clear()
}

// Restore replaces both stacks with copies of the given history, abandons
// any capture in progress and repaints. The change hook is not called.
func (s *Session) Restore(committed, redo []model.Stroke) {
	s.committed = model.CloneStrokes(committed)
	s.redo = model.CloneStrokes(redo)
	s.active = nil
	s.capturing = false
	s.surface.Replay(s.committed)
}

// Sync adopts a history written elsewhere. Unlike Restore, a stroke being
// captured survives: it is repainted over the new history and committed on
// top of it when the pointer is released. The change hook is not called.
func (s *Session) Sync(committed, redo []model.Stroke) {
	s.committed = model.CloneStrokes(committed)
	s.redo = model.CloneStrokes(redo)
	if !s.capturing || len(s.active) == 0 {
		s.surface.Replay(s.committed)
		return
	}
	s.surface.Replay(append(model.CloneStrokes(s.committed), s.active))
}

// Redraw repaints the surface from the committed strokes.
func (s *Session) Redraw() {
	s.surface.Replay(s.committed)
}

// DataURL returns the surface as a PNG data URI.
func (s *Session) DataURL() (string, error) {
	return EncodeDataURL(s.surface.Image())
}

func (s *Session) changed() error {
	if s.onChange == nil {
		return nil
	}
	return s.onChange(s.Committed(), s.RedoStack())
}
