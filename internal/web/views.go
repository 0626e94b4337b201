package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/jacksmith/tn/internal/model"
	"github.com/jacksmith/tn/internal/ops"
)

type drawStatus struct {
	Tool      model.Tool `json:"tool"`
	Color     string     `json:"color"`
	Width     float64    `json:"width"`
	Committed int        `json:"committed"`
	Redo      int        `json:"redo"`
	Capturing bool       `json:"capturing"`
}

type todoItem struct {
	Index     int
	Text      string
	Completed bool
}

type todosPage struct {
	Items   []todoItem
	Start   int
	Next    int
	Total   int
	HasMore bool
}

type noteItem struct {
	Index      int
	Title      string
	Content    string
	Date       string
	HasDrawing bool
}

type notesPage struct {
	Notes  []noteItem
	Status drawStatus
	Width  int
	Height int
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("failed to render view", "view", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) todosView(w http.ResponseWriter, r *http.Request) {
	todos := s.current().todos
	start, _ := strconv.Atoi(r.URL.Query().Get("start"))
	if start < 0 || start >= len(todos) {
		start = 0
	}

	page := todosPage{
		Start:   start,
		Next:    ops.NextPageStart(len(todos), start, s.pageSize),
		Total:   len(todos),
		HasMore: len(todos) > s.pageSize,
	}
	for i, t := range ops.PageTodos(todos, start, s.pageSize) {
		page.Items = append(page.Items, todoItem{Index: start + i, Text: t.Text, Completed: t.Completed})
	}
	s.render(w, http.StatusOK, "todos", page)
}

func (s *Server) notesView(w http.ResponseWriter, r *http.Request) {
	notes := s.current().notes.Notes

	s.mu.Lock()
	page := notesPage{
		Status: s.sessionStatus(),
		Width:  s.session.Surface().Width(),
		Height: s.session.Surface().Height(),
	}
	s.mu.Unlock()

	for i, n := range notes {
		page.Notes = append(page.Notes, noteItem{
			Index:      i,
			Title:      n.DisplayTitle(),
			Content:    n.Content,
			Date:       n.Date,
			HasDrawing: n.HasDrawing(),
		})
	}
	s.render(w, http.StatusOK, "notes", page)
}

func (s *Server) notFoundView(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "404", r.URL.Path)
}
