package api

import (
	"net/http"
)

// StatsProvider reports forecasting counters and artifact status.
// The service reports started, modelPath, templatePath, served and failed,
// plus loadError when the artifacts could not be loaded, or modelKind,
// templateColumns and missingNumeric once they were.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the forecast service counters.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
