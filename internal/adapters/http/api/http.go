// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/parcast/internal/adapters/artifacts"
	service "github.com/okian/parcast/internal/app"
	"github.com/okian/parcast/internal/domain/features"
	"github.com/okian/parcast/internal/domain/forecast"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Options lists the selectable categories of the loaded template.
	Options(ctx context.Context) (features.Options, error)
	// Forecast runs one submission end to end.
	Forecast(ctx context.Context, in features.Input) (service.Forecast, error)
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	forecastHandler *ForecastHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		forecastHandler: NewForecastHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/options", MetricsMiddleware(s.forecastHandler.HandleGetOptions, "options"))
	mux.HandleFunc("/api/forecast", MetricsMiddleware(s.forecastHandler.HandlePostForecast, "forecast"))
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

// Status maps a forecasting error to an HTTP status and a stable error code.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, artifacts.ErrArtifactLoad):
		return http.StatusServiceUnavailable, "artifact_load"
	case errors.Is(err, ErrUnavailable), errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, forecast.ErrPrediction):
		return http.StatusUnprocessableEntity, "prediction_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
