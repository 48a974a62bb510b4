// Package http exposes a QueryEngine as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/morphfst/internal/logging"
	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBatch bounds the number of queries in one POST /realize.
const maxBatch = 1000

// Server holds the handlers of the API.
type Server struct {
	Engine  ports.QueryEngine
	Version string
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithVersion sets the version reported by GET /healthz.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// RealizeResult is the answer to one query.
type RealizeResult struct {
	Query  string `json:"query"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchRequest is the body of POST /realize.
type BatchRequest struct {
	Queries []string `json:"queries"`
}

// BatchResponse is the answer to POST /realize.
type BatchResponse struct {
	Results []RealizeResult `json:"results"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.QueryEngine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Get("/realize", s.Realize)
	r.Post("/realize", s.RealizeBatch)
	r.Get("/stats", s.Stats)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.Version})
}

// Realize handles GET /realize?q=WORD+TAG.
// A literal '+' in a query string decodes to a space, so clients must send
// it as %2B.
func (s *Server) Realize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	out, err := s.Engine.Realize(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RealizeResult{Query: q, Output: out})
}

// RealizeBatch handles POST /realize. Each query succeeds or fails on its own;
// only store failures abort the whole batch.
func (s *Server) RealizeBatch(w http.ResponseWriter, r *http.Request) {
	var body BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(body.Queries) > maxBatch {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "too many queries"})
		return
	}

	resp := BatchResponse{Results: make([]RealizeResult, 0, len(body.Queries))}
	for _, q := range body.Queries {
		out, err := s.Engine.Realize(r.Context(), q)
		if err != nil && status(err) >= http.StatusInternalServerError {
			s.writeError(w, r, err)
			return
		}
		res := RealizeResult{Query: q, Output: out}
		if err != nil {
			res.Error = err.Error()
		}
		resp.Results = append(resp.Results, res)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	fst, err := s.Engine.Inspect(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fst.Stats())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := status(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// status maps error kinds to HTTP status codes.
func status(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoPath), errors.Is(err, domain.ErrIncompleteMatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
