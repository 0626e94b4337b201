package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
	"github.com/jacksmith/tn/internal/ops"
	"github.com/jacksmith/tn/internal/state"
)

//go:embed templates/*.html
var templateFS embed.FS

// snapshot is the latest state of both collections, refreshed by store
// subscriptions and read by the views.
type snapshot struct {
	todos []model.Todo
	notes model.NotesState
}

// Server renders the todo and note views and applies form actions.
// Every mutation holds mu, so the session and stores see one writer at a
// time.
type Server struct {
	mu      sync.Mutex
	todos   *state.State[[]model.Todo]
	notes   *state.State[model.NotesState]
	session *draw.Session

	logger   *slog.Logger
	pageSize int
	tmpl     *template.Template

	snapMu sync.RWMutex
	snap   snapshot

	unsubscribe []func()
	handler     http.Handler
}

// NewServer builds a server over the two stores and a drawing session that
// is already bound to notes.
func NewServer(todos *state.State[[]model.Todo], notes *state.State[model.NotesState], session *draw.Session, opts ...Option) (*Server, error) {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		pageSize: 10,
	}
	for _, opt := range opts {
		opt(&o)
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		todos:    todos,
		notes:    notes,
		session:  session,
		logger:   o.logger,
		pageSize: o.pageSize,
		tmpl:     tmpl,
		snap:     snapshot{todos: todos.Get(), notes: notes.Get()},
	}

	todoSub := todos.Subscribe(func(v []model.Todo) {
		s.snapMu.Lock()
		s.snap.todos = v
		s.snapMu.Unlock()
	})
	// Notes writes arrive either from a handler or from Reload, and both
	// hold mu, so the session can be synced here.
	noteSub := notes.Subscribe(func(v model.NotesState) {
		s.snapMu.Lock()
		s.snap.notes = v
		s.snapMu.Unlock()
		if ops.SyncSession(s.session, v) {
			s.logger.Debug("drawing session synced with stored history", "strokes", len(v.CurrentPaths))
		}
	})
	s.unsubscribe = []func(){
		func() { todos.Unsubscribe(todoSub) },
		func() { notes.Unsubscribe(noteSub) },
	}

	s.handler = s.routes()
	return s, nil
}

// Close detaches the server from the stores.
func (s *Server) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}

// Watch picks up writes to both stores made by other processes until ctx
// is done. Reloads run under the server's mutation lock.
func (s *Server) Watch(ctx context.Context) error {
	if err := s.todos.Watch(ctx, state.WithReloadLock(&s.mu)); err != nil {
		return err
	}
	return s.notes.Watch(ctx, state.WithReloadLock(&s.mu))
}

// Reload re-reads both stores once and reports whether either changed.
func (s *Server) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todosChanged, err := s.todos.Reload()
	if err != nil {
		return false, err
	}
	notesChanged, err := s.notes.Reload()
	if err != nil {
		return false, err
	}
	return todosChanged || notesChanged, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	views := NewRouter(map[string]http.Handler{
		"/":          http.HandlerFunc(s.todosView),
		"/todos":     http.HandlerFunc(s.todosView),
		"/notes":     http.HandlerFunc(s.notesView),
		NotFoundPath: http.HandlerFunc(s.notFoundView),
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /todos/add", s.addTodo)
	mux.HandleFunc("POST /todos/toggle", s.toggleTodo)
	mux.HandleFunc("POST /todos/remove", s.removeTodo)
	mux.HandleFunc("POST /notes/add", s.addNote)
	mux.HandleFunc("POST /notes/update", s.updateNote)
	mux.HandleFunc("POST /notes/remove", s.removeNote)
	mux.HandleFunc("GET /notes/drawing", s.noteDrawing)
	mux.HandleFunc("POST /draw/events", s.drawEvents)
	mux.HandleFunc("POST /draw/undo", s.drawUndo)
	mux.HandleFunc("POST /draw/redo", s.drawRedo)
	mux.HandleFunc("POST /draw/clear", s.drawClear)
	mux.HandleFunc("POST /draw/tool", s.drawTool)
	mux.HandleFunc("POST /draw/color", s.drawColor)
	mux.HandleFunc("GET /draw.png", s.drawingPNG)
	mux.HandleFunc("GET /debug/state", s.debugState)
	mux.Handle("GET /", views)

	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) current() snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap
}

// sessionStatus describes the drawing session. Callers hold mu.
func (s *Server) sessionStatus() drawStatus {
	return drawStatus{
		Tool:      s.session.Tool(),
		Color:     s.session.Color(),
		Width:     s.session.Width(),
		Committed: len(s.session.Committed()),
		Redo:      len(s.session.RedoStack()),
		Capturing: s.session.Capturing(),
	}
}
