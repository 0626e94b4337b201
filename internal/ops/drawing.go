package ops

import (
	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
)

// BindSession loads the persisted drawing history into session and
// installs a change hook that writes every later change back to s.
func BindSession(s NoteStore, session *draw.Session) {
	st := s.Get()
	session.Restore(st.CurrentPaths, st.RedoStack)
	session.SetChangeHook(func(committed, redo []model.Stroke) error {
		cur := s.Get()
		cur.CurrentPaths = nonNil(committed)
		cur.RedoStack = nonNil(redo)
		return s.Set(cur)
	})
}

// SyncSession brings session up to date with the drawing history in st,
// typically after another process wrote the notes key. It reports whether
// the session changed. A stroke being captured is kept and lands on top of
// the adopted history.
func SyncSession(session *draw.Session, st model.NotesState) bool {
	if model.EqualStrokes(session.Committed(), st.CurrentPaths) &&
		model.EqualStrokes(session.RedoStack(), st.RedoStack) {
		return false
	}
	session.Sync(st.CurrentPaths, st.RedoStack)
	return true
}

func nonNil(strokes []model.Stroke) []model.Stroke {
	if strokes == nil {
		return []model.Stroke{}
	}
	return strokes
}
