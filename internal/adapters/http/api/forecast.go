package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/parcast/internal/domain/features"
)

// ForecastHandler serves the option list and forecast submissions.
type ForecastHandler struct {
	deps Dependencies
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(deps Dependencies) *ForecastHandler {
	return &ForecastHandler{deps: deps}
}

// HandleGetOptions handles GET /api/options requests.
func (h *ForecastHandler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_options"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	opts, err := h.deps.Options(r.Context())
	if err != nil {
		status, code := Status(err)
		writeError(w, status, code, WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// HandlePostForecast handles POST /api/forecast requests.
func (h *ForecastHandler) HandlePostForecast(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_forecast"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req features.Input
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Forecast(r.Context(), req)
	if err != nil {
		status, code := Status(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
