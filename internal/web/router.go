// Package web serves the todo and note views over HTTP.
package web

import (
	"net/http"
	"strings"
)

// NotFoundPath is the route used when no other route matches.
const NotFoundPath = "/404"

// Router maps exact paths to views. Unknown paths get the /404 view with
// status 404.
type Router struct {
	routes map[string]http.Handler
}

// NewRouter returns a router over routes. The map is copied.
func NewRouter(routes map[string]http.Handler) *Router {
	r := &Router{routes: make(map[string]http.Handler, len(routes))}
	for path, h := range routes {
		r.routes[path] = h
	}
	return r
}

// Resolve returns the view registered for path after dropping a trailing
// slash, or false if there is none.
func (rt *Router) Resolve(path string) (http.Handler, bool) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	h, ok := rt.routes[path]
	return h, ok
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := rt.Resolve(r.URL.Path); ok {
		h.ServeHTTP(w, r)
		return
	}
	fallback, ok := rt.routes[NotFoundPath]
	if !ok {
		http.NotFound(w, r)
		return
	}
	fallback.ServeHTTP(&statusWriter{ResponseWriter: w, code: http.StatusNotFound}, r)
}

// statusWriter forces the status code of the first header written.
type statusWriter struct {
	http.ResponseWriter
	code  int
	wrote bool
}

func (w *statusWriter) WriteHeader(int) {
	if !w.wrote {
		w.wrote = true
		w.ResponseWriter.WriteHeader(w.code)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.WriteHeader(w.code)
	return w.ResponseWriter.Write(b)
}
