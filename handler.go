package gogrid

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Handler serves a grid over HTTP, building a fresh Grid for every request.
type Handler[T any] struct {
	// Variant returns the grid variant for the request.
	Variant  func(r *http.Request) Variant[T]
	Config   Config
	Renderer Renderer[T]
	Views    ViewEngine
	Logger   zerolog.Logger
}

// ServeHTTP - implements http.Handler.
func (h Handler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var variant Variant[T]
	if h.Variant != nil {
		variant = h.Variant(r)
	}

	g := NewGrid(variant).
		WithConfig(h.Config).
		WithRequest(r).
		WithRenderer(h.Renderer).
		WithViews(h.Views).
		WithLogger(h.Logger)

	rw := &responseWriter{ResponseWriter: w}
	if err := g.Respond(r.Context(), rw); err != nil {
		if rw.wroteHeader {
			h.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("cannot write grid response")
			return
		}

		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// responseWriter remembers whether the response has been started, after
// which the status can no longer be changed.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(code int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true

	return w.ResponseWriter.Write(b)
}

var _ http.Handler = Handler[struct{}]{}
