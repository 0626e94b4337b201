package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
	"github.com/jacksmith/tn/internal/ops"
	"github.com/jacksmith/tn/internal/state"
	"github.com/jacksmith/tn/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	srv     *Server
	backend *storage.MemoryBackend
	todos   *state.State[[]model.Todo]
	notes   *state.State[model.NotesState]
	session *draw.Session
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	backend := storage.NewMemoryBackend()
	todos := state.New(backend, ops.TodosKey, []model.Todo{})
	notes := state.New(backend, ops.NotesKey, model.EmptyNotesState())
	session := draw.NewSession(draw.NewSurface(100, 50))
	ops.BindSession(notes, session)

	srv, err := NewServer(todos, notes, session, opts...)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, backend: backend, todos: todos, notes: notes, session: session}
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestTodosView(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No todos yet.")

	rec = env.post(t, "/todos/add", url.Values{"text": {"water plants"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/todos", rec.Header().Get("Location"))

	body := env.get(t, "/todos").Body.String()
	assert.Contains(t, body, "water plants")
	assert.Contains(t, body, "Complete")
	assert.NotContains(t, body, "Load More")
}

func TestTodoActions(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.todos.Set([]model.Todo{{Text: "a"}, {Text: "b"}, {Text: "c"}}))

	rec := env.post(t, "/todos/toggle", url.Values{"i": {"1"}, "start": {"0"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/todos?start=0", rec.Header().Get("Location"))
	assert.Equal(t, []model.Todo{{Text: "a"}, {Text: "b", Completed: true}, {Text: "c"}}, env.todos.Get())

	body := env.get(t, "/todos").Body.String()
	assert.Contains(t, body, `<span class="done">b</span>`)
	assert.Contains(t, body, "Unmark")

	env.post(t, "/todos/remove", url.Values{"i": {"0"}})
	assert.Equal(t, []model.Todo{{Text: "b", Completed: true}, {Text: "c"}}, env.todos.Get())

	rec = env.post(t, "/todos/remove", url.Values{"i": {"9"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code, "out of range is a silent no-op")
	assert.Len(t, env.todos.Get(), 2)

	rec = env.post(t, "/todos/toggle", url.Values{"i": {"first"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodosPagination(t *testing.T) {
	env := newTestEnv(t, WithPageSize(2))
	require.NoError(t, env.todos.Set([]model.Todo{{Text: "t1"}, {Text: "t2"}, {Text: "t3"}}))

	body := env.get(t, "/todos").Body.String()
	assert.Contains(t, body, "t1")
	assert.Contains(t, body, "t2")
	assert.NotContains(t, body, "t3")
	assert.Contains(t, body, `href="/todos?start=2"`)

	body = env.get(t, "/todos?start=2").Body.String()
	assert.Contains(t, body, "t3")
	assert.NotContains(t, body, "t1")
	assert.Contains(t, body, `href="/todos?start=0"`, "load more wraps to the first page")

	body = env.get(t, "/todos?start=50").Body.String()
	assert.Contains(t, body, "t1", "out-of-range start shows the first page")
}

func TestViewsEscapeContent(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.todos.Set([]model.Todo{{Text: "<script>alert(1)</script>"}}))

	body := env.get(t, "/todos").Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/missing/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/missing/page")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestNoteLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/notes/add", url.Values{"title": {""}, "content": {" "}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, env.notes.Get().Notes, "blank note is ignored")

	env.post(t, "/notes/add", url.Values{"title": {"Shopping"}, "content": {"eggs"}})
	body := env.get(t, "/notes").Body.String()
	assert.Contains(t, body, "Shopping")
	assert.Contains(t, body, "eggs")
	assert.NotContains(t, body, "/notes/drawing?i=0")

	env.post(t, "/notes/update", url.Values{"i": {"0"}, "title": {"Groceries"}, "content": {"eggs, milk"}})
	n, ok := ops.GetNote(env.notes, 0)
	require.True(t, ok)
	assert.Equal(t, "Groceries", n.Title)

	env.post(t, "/notes/remove", url.Values{"i": {"0"}})
	assert.Empty(t, env.notes.Get().Notes)
}

func TestDrawEventsAndSave(t *testing.T) {
	env := newTestEnv(t)

	batch := map[string]any{
		"rect": map[string]float64{"left": 100, "top": 50},
		"events": []map[string]any{
			{"type": "mousedown", "clientX": 110, "clientY": 60},
			{"type": "mousemove", "clientX": 120, "clientY": 60},
			{"type": "mousemove", "clientX": 120, "clientY": 70},
			{"type": "mouseup"},
			{"type": "touchmove"},
		},
	}
	rec := env.postJSON(t, "/draw/events", batch)
	require.Equal(t, http.StatusOK, rec.Code)

	var status drawStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 1, status.Committed)
	assert.Equal(t, model.ToolPen, status.Tool)

	persisted := env.notes.Get().CurrentPaths
	require.Len(t, persisted, 1)
	assert.Equal(t, []model.Point{
		{X: 10, Y: 10, Color: "#000000", LineWidth: 2, Tool: model.ToolPen},
		{X: 20, Y: 10, Color: "#000000", LineWidth: 2, Tool: model.ToolPen},
		{X: 20, Y: 20, Color: "#000000", LineWidth: 2, Tool: model.ToolPen},
	}, []model.Point(persisted[0]))

	rec = env.get(t, "/draw.png")
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(rec.Body)
	require.NoError(t, err)

	env.post(t, "/notes/add", url.Values{"title": {"sketch"}})
	st := env.notes.Get()
	require.Len(t, st.Notes, 1)
	assert.True(t, st.Notes[0].HasDrawing())
	assert.Empty(t, st.CurrentPaths)

	rec = env.get(t, "/notes/drawing?i=0")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, env.get(t, "/notes/drawing?i=3").Code)
	assert.Contains(t, env.get(t, "/notes").Body.String(), "/notes/drawing?i=0")
}

func TestDrawEventsBadBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/draw/events", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDrawControls(t *testing.T) {
	env := newTestEnv(t)
	env.session.Start(10, 10)
	require.NoError(t, env.session.Stop())

	rec := env.postJSON(t, "/draw/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status drawStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 0, status.Committed)
	assert.Equal(t, 1, status.Redo)

	rec = env.post(t, "/draw/redo", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, env.session.Committed(), 1)

	env.post(t, "/draw/color", url.Values{"color": {"#F00"}})
	assert.Equal(t, "#ff0000", env.session.Color())

	env.post(t, "/draw/tool", url.Values{"tool": {"eraser"}})
	assert.Equal(t, model.ToolEraser, env.session.Tool())
	assert.Equal(t, model.EraserColor, env.session.Color())

	assert.Equal(t, http.StatusBadRequest, env.post(t, "/draw/tool", url.Values{"tool": {"brush"}}).Code)
	assert.Equal(t, http.StatusBadRequest, env.post(t, "/draw/color", url.Values{"color": {"red"}}).Code)

	env.post(t, "/draw/clear", nil)
	assert.Empty(t, env.session.Committed())
	assert.Empty(t, env.notes.Get().RedoStack)
}

func TestWriteFailureIsReported(t *testing.T) {
	env := newTestEnv(t)
	env.backend.FailWrites(storage.ErrQuotaExceeded)

	rec := env.post(t, "/todos/add", url.Values{"text": {"x"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to add todo")
}

func TestSnapshotFollowsExternalWrites(t *testing.T) {
	env := newTestEnv(t)

	_, err := ops.AddTodo(env.todos, "written elsewhere")
	require.NoError(t, err)
	assert.Contains(t, env.get(t, "/todos").Body.String(), "written elsewhere")

	env.srv.Close()
	_, err = ops.AddTodo(env.todos, "after close")
	require.NoError(t, err)
	assert.NotContains(t, env.get(t, "/todos").Body.String(), "after close")
}

func TestDebugState(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/debug/state")
	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		Type  string         `json:"type"`
		State state.Snapshot `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "state", out[0].Type)
	assert.Equal(t, ops.TodosKey, out[0].State.Key)
	assert.Equal(t, ops.NotesKey, out[1].State.Key)
	assert.Equal(t, 1, out[0].State.Listeners, fmt.Sprintf("%+v", out[0]))
}

func TestExternalStrokesSurviveLocalDrawing(t *testing.T) {
	env := newTestEnv(t)

	// Another tn process sharing the same store draws a stroke.
	other := state.New(env.backend, ops.NotesKey, model.EmptyNotesState())
	otherSession := draw.NewSession(draw.NewSurface(100, 50))
	ops.BindSession(other, otherSession)
	otherSession.Start(5, 5)
	otherSession.Move(15, 5)
	require.NoError(t, otherSession.Stop())

	changed, err := env.srv.Reload()
	require.NoError(t, err)
	require.True(t, changed)
	assert.Len(t, env.session.Committed(), 1)

	batch := map[string]any{
		"events": []map[string]any{
			{"type": "mousedown", "clientX": 30, "clientY": 30},
			{"type": "mousemove", "clientX": 40, "clientY": 30},
			{"type": "mouseup"},
		},
	}
	rec := env.postJSON(t, "/draw/events", batch)
	require.Equal(t, http.StatusOK, rec.Code)

	persisted := env.notes.Get().CurrentPaths
	require.Len(t, persisted, 2)
	assert.Equal(t, 5.0, persisted[0][0].X)
	assert.Equal(t, 30.0, persisted[1][0].X)

	changed, err = env.srv.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}
