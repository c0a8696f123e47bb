// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/shares/internal/app"
	"github.com/okian/shares/internal/presenter"
)

// Dependencies required by HTTP handlers. Using an interface keeps the
// handler layer loosely coupled to the orchestrator implementation.
type Dependencies interface {
	// Run performs one page load and presents the outcome into sink.
	Run(ctx context.Context, raw string, sink presenter.Sink) service.Report
}

// QueryParam names the query parameter carrying the requested CIK.
const QueryParam = "CIK"

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	sharesHandler *SharesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		sharesHandler: NewSharesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/shares", MetricsMiddleware(s.sharesHandler.HandleGetShares, "shares"))
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
