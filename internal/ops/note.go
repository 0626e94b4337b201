package ops

import (
	"strings"
	"time"

	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
	"github.com/oklog/ulid/v2"
)

// DateLayout is the format of Note.Date.
const DateLayout = time.DateTime

// Clock and NewID are swapped out by tests.
var (
	Clock = time.Now
	NewID = func() string { return ulid.Make().String() }
)

// CreateNote appends a note. When session has committed strokes its
// surface is embedded as the note's drawing. Whenever a session is given,
// a successful save resets both drawing stacks in the same write and then
// discards the session, so undone strokes never leak into the next note.
// A nil session leaves the drawing history alone. A note with blank title
// and content and no drawing is ignored and reported as false.
func CreateNote(s NoteStore, title, content string, session *draw.Session) (bool, error) {
	hasDrawing := session != nil && len(session.Committed()) > 0
	if model.IsBlank(title, content) && !hasDrawing {
		return false, nil
	}

	note := model.Note{
		ID:      NewID(),
		Title:   strings.TrimSpace(title),
		Content: content,
		Date:    Clock().Format(DateLayout),
	}
	if hasDrawing {
		uri, err := session.DataURL()
		if err != nil {
			return false, err
		}
		note.Drawing = uri
	}

	st := s.Get()
	st.Notes = append(st.Notes, note)
	if session != nil {
		st.CurrentPaths = []model.Stroke{}
		st.RedoStack = []model.Stroke{}
	}
	if err := s.Set(st); err != nil {
		return false, err
	}
	if session != nil {
		session.Discard()
	}
	return true, nil
}

// GetNote returns the note at index i.
func GetNote(s NoteStore, i int) (model.Note, bool) {
	notes := s.Get().Notes
	if i < 0 || i >= len(notes) {
		return model.Note{}, false
	}
	return notes[i], true
}

// RemoveNote deletes the note at index i.
func RemoveNote(s NoteStore, i int) (bool, error) {
	st := s.Get()
	if i < 0 || i >= len(st.Notes) {
		return false, nil
	}
	next := make([]model.Note, 0, len(st.Notes)-1)
	next = append(next, st.Notes[:i]...)
	next = append(next, st.Notes[i+1:]...)
	st.Notes = next
	if err := s.Set(st); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateNote replaces the title and content of the note at index i,
// keeping its id, drawing and date. An edit that would leave the note
// with nothing in it is ignored.
func UpdateNote(s NoteStore, i int, title, content string) (bool, error) {
	st := s.Get()
	if i < 0 || i >= len(st.Notes) {
		return false, nil
	}
	n := st.Notes[i]
	if model.IsBlank(title, content) && !n.HasDrawing() {
		return false, nil
	}
	n.Title = strings.TrimSpace(title)
	n.Content = content
	st.Notes[i] = n
	if err := s.Set(st); err != nil {
		return false, err
	}
	return true, nil
}
