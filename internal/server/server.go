// Package server exposes the pipeline over HTTP for the upload and
// summarization collaborators. Handlers are thin: decode, call the engine
// or storage, encode.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/platewise/platewise/internal/common"
	"github.com/platewise/platewise/internal/engine"
	"github.com/platewise/platewise/internal/service"
)

// Server routes HTTP requests to the pipeline engine.
type Server struct {
	engine *engine.Engine
	store  service.Storage
}

// New creates an HTTP server around the engine and storage.
func New(eng *engine.Engine, store service.Storage) *Server {
	return &Server{engine: eng, store: store}
}

// Router builds the HTTP handler with logging and CORS middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/photo-items", s.handlePhotoItems).Methods(http.MethodPost)
	r.HandleFunc("/v1/summarize/day", s.handleSummarizeDay).Methods(http.MethodPost)
	r.HandleFunc("/v1/summarize/month", s.handleSummarizeMonth).Methods(http.MethodPost)
	r.HandleFunc("/v1/goals/generate", s.handleGenerateGoals).Methods(http.MethodPost)
	r.HandleFunc("/v1/users/{id}/days/{date}", s.handleGetDay).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{id}/months/{ym}", s.handleGetMonth).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{id}/months/{ym}/goals", s.handleGetGoals).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps pipeline errors onto HTTP statuses: missing rows are
// 404, contract violations are 422, everything else is 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case common.IsValidation(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
