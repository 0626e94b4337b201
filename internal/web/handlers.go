package web

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
	"github.com/jacksmith/tn/internal/ops"
)

// maxEventBody caps the size of a /draw/events request.
const maxEventBody = 1 << 20

// eventBatch is the body of POST /draw/events.
type eventBatch struct {
	Rect   draw.Rect    `json:"rect"`
	Events []draw.Event `json:"events"`
}

func (s *Server) fail(w http.ResponseWriter, action string, err error) {
	s.logger.Error("action failed", "action", action, "error", err)
	http.Error(w, "failed to "+action+": "+err.Error(), http.StatusInternalServerError)
}

func formIndex(r *http.Request) (int, bool) {
	i, err := strconv.Atoi(r.FormValue("i"))
	return i, err == nil
}

func todosURL(r *http.Request) string {
	if start := r.FormValue("start"); start != "" {
		return "/todos?start=" + url.QueryEscape(start)
	}
	return "/todos"
}

func (s *Server) addTodo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	added, err := ops.AddTodo(s.todos, r.FormValue("text"))
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "add todo", err)
		return
	}
	if !added {
		s.logger.Debug("blank todo ignored")
	}
	http.Redirect(w, r, todosURL(r), http.StatusSeeOther)
}

func (s *Server) toggleTodo(w http.ResponseWriter, r *http.Request) {
	s.indexAction(w, r, "toggle todo", todosURL(r), func(i int) (bool, error) {
		return ops.ToggleTodo(s.todos, i)
	})
}

func (s *Server) removeTodo(w http.ResponseWriter, r *http.Request) {
	s.indexAction(w, r, "remove todo", todosURL(r), func(i int) (bool, error) {
		return ops.RemoveTodo(s.todos, i)
	})
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	added, err := ops.CreateNote(s.notes, r.FormValue("title"), r.FormValue("content"), s.session)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "save note", err)
		return
	}
	if !added {
		s.logger.Debug("empty note ignored")
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	s.indexAction(w, r, "update note", "/notes", func(i int) (bool, error) {
		return ops.UpdateNote(s.notes, i, r.FormValue("title"), r.FormValue("content"))
	})
}

func (s *Server) removeNote(w http.ResponseWriter, r *http.Request) {
	s.indexAction(w, r, "remove note", "/notes", func(i int) (bool, error) {
		return ops.RemoveNote(s.notes, i)
	})
}

// indexAction runs fn on the form's index under the mutation lock and
// redirects to back. Out-of-range indices are logged and ignored.
func (s *Server) indexAction(w http.ResponseWriter, r *http.Request, action, back string, fn func(int) (bool, error)) {
	i, ok := formIndex(r)
	if !ok {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	applied, err := fn(i)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, action, err)
		return
	}
	if !applied {
		s.logger.Debug("index out of range", "action", action, "index", i)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Server) noteDrawing(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.URL.Query().Get("i"))
	notes := s.current().notes.Notes
	if err != nil || i < 0 || i >= len(notes) || !notes[i].HasDrawing() {
		http.NotFound(w, r)
		return
	}
	data, err := draw.DecodeDataURL(notes[i].Drawing)
	if err != nil {
		s.fail(w, "decode drawing", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) drawEvents(w http.ResponseWriter, r *http.Request) {
	var batch eventBatch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody))
	if err := dec.Decode(&batch); err != nil {
		http.Error(w, "invalid event batch: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SetBounds(batch.Rect)
	for _, ev := range batch.Events {
		if err := s.session.HandleEvent(ev); err != nil {
			s.fail(w, "save drawing", err)
			return
		}
	}
	s.writeStatus(w)
}

func (s *Server) drawUndo(w http.ResponseWriter, r *http.Request) {
	s.drawAction(w, r, "undo", s.session.Undo)
}

func (s *Server) drawRedo(w http.ResponseWriter, r *http.Request) {
	s.drawAction(w, r, "redo", s.session.Redo)
}

func (s *Server) drawClear(w http.ResponseWriter, r *http.Request) {
	s.drawAction(w, r, "clear drawing", s.session.Clear)
}

func (s *Server) drawTool(w http.ResponseWriter, r *http.Request) {
	tool, err := model.ParseTool(r.FormValue("tool"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.drawAction(w, r, "select tool", func() error {
		s.session.SelectTool(tool)
		return nil
	})
}

func (s *Server) drawColor(w http.ResponseWriter, r *http.Request) {
	color, err := model.NormalizeColor(r.FormValue("color"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.drawAction(w, r, "select color", func() error {
		return s.session.SelectColor(color)
	})
}

// drawAction applies fn to the session. JSON clients get the session
// status back; form posts are redirected to the notes page.
func (s *Server) drawAction(w http.ResponseWriter, r *http.Request, action string, fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		s.fail(w, action, err)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		s.writeStatus(w)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// writeStatus writes the session status as JSON. Callers hold mu.
func (s *Server) writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.sessionStatus())
}

func (s *Server) drawingPNG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	s.mu.Lock()
	err := png.Encode(&buf, s.session.Surface().Image())
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "encode drawing", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// component is a store that can report its own internals.
type component interface {
	introspection.Introspectable
	introspection.Component
}

type componentState struct {
	Type  string `json:"type"`
	State any    `json:"state"`
}

func (s *Server) debugState(w http.ResponseWriter, r *http.Request) {
	var out []componentState
	for _, c := range []component{s.todos, s.notes} {
		out = append(out, componentState{Type: c.ComponentType(), State: c.State()})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
