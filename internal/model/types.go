// Package model defines the core data structures for tn.
package model

import "slices"

// Tool is the drawing instrument that styles new points.
type Tool string

const (
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
)

// Default styles applied when a tool is selected.
const (
	PenColor     = "#000000"
	PenWidth     = 2.0
	EraserColor  = "#ffffff"
	EraserWidth  = 10.0
	DefaultTool  = ToolPen
	DefaultColor = PenColor
	DefaultWidth = PenWidth
)

// Point is a single sampled pointer position with the style that was
// active when it was captured. Style is stored per point, not per stroke.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"lineWidth"`
	Tool      Tool    `json:"tool"`
}

// Stroke is one continuous pointer-down-to-pointer-up path.
type Stroke []Point

// Clone returns a copy of the stroke that shares no memory with s.
func (s Stroke) Clone() Stroke {
	if s == nil {
		return nil
	}
	out := make(Stroke, len(s))
	copy(out, s)
	return out
}

// CloneStrokes deep-copies a list of strokes.
func CloneStrokes(strokes []Stroke) []Stroke {
	if strokes == nil {
		return nil
	}
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}

// EqualStrokes reports whether a and b hold the same points in the same
// order. Nil and empty lists are equal.
func EqualStrokes(a, b []Stroke) bool {
	return slices.EqualFunc(a, b, func(x, y Stroke) bool {
		return slices.Equal(x, y)
	})
}

// Todo is a single to-do item.
type Todo struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Note is a saved note, optionally carrying a drawing as a PNG data URI.
type Note struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Drawing string `json:"drawing,omitempty"`
	Date    string `json:"date"`
}

// HasDrawing reports whether the note embeds an image.
func (n *Note) HasDrawing() bool {
	return n.Drawing != ""
}

// DisplayTitle returns the title to show in list views.
func (n *Note) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return "Untitled Note"
}

// NotesState is the value stored under the notes key. Besides the saved
// notes it carries the drawing history of the note being composed.
type NotesState struct {
	Notes        []Note   `json:"notes"`
	CurrentPaths []Stroke `json:"currentPaths"`
	RedoStack    []Stroke `json:"redoStack"`
}

// EmptyNotesState returns the initial value for the notes key.
func EmptyNotesState() NotesState {
	return NotesState{
		Notes:        []Note{},
		CurrentPaths: []Stroke{},
		RedoStack:    []Stroke{},
	}
}
