// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/pkg/logger"
)

const defaultMaxBodyBytes = 64 << 10

// Evaluator scores a single planet record.
type Evaluator interface {
	Evaluate(ctx context.Context, r habitability.Record) (habitability.Assessment, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Evaluator
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	evaluateHandler *EvaluateHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// WithMaxBodyBytes caps the accepted request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := serverOptions{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("api")
	}

	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		evaluateHandler: NewEvaluateHandler(deps, o.maxBodyBytes, o.logger),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/evaluate", s.wrap(s.evaluateHandler.HandleEvaluate, "evaluate"))
}

func (s *Server) wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(next, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
