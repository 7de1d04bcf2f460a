// Package site serves the par level form page.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/parcast/internal/adapters/http/api"
	"github.com/okian/parcast/pkg/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Error constants
var (
	ErrRender = errors.New("form page render failed")
	ErrForm   = errors.New("invalid form value")
)

// Option applies a configuration option to the RootHandler.
type Option func(*RootHandler)

// WithLocale sets the language used to format numbers on the page.
// Unknown tags fall back to English.
func WithLocale(tag string) Option {
	return func(h *RootHandler) {
		t, err := language.Parse(tag)
		if err != nil {
			t = language.English
		}
		h.printer = message.NewPrinter(t)
	}
}

// WithVolumeUnit sets the unit shown next to volumes.
func WithVolumeUnit(unit string) Option {
	return func(h *RootHandler) {
		if unit != "" {
			h.unit = unit
		}
	}
}

// WithLogger overrides the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *RootHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// Register attaches the form page and its assets to mux.
func Register(_ context.Context, mux *http.ServeMux, deps api.Dependencies, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewRootHandler(deps, opts...)
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleRoot, "form"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(Assets())))
}

// RootHandler renders the form and runs submissions.
type RootHandler struct {
	deps    api.Dependencies
	printer *message.Printer
	unit    string
	logger  logger.Logger
}

// NewRootHandler creates a new root handler
func NewRootHandler(deps api.Dependencies, opts ...Option) *RootHandler {
	h := &RootHandler{
		deps:    deps,
		printer: message.NewPrinter(language.English),
		unit:    "ml",
		logger:  logger.Named("site"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleRoot handles GET / by rendering an empty form and POST / by
// forecasting the submitted values and rendering the form again with the result.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.post(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *RootHandler) get(w http.ResponseWriter, r *http.Request) {
	v := h.newView(r)
	if v.Error != "" {
		h.render(w, r, http.StatusServiceUnavailable, v)
		return
	}
	h.render(w, r, http.StatusOK, v)
}

func (h *RootHandler) post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := h.newView(r)
	if v.Error != "" {
		h.render(w, r, http.StatusServiceUnavailable, v)
		return
	}

	if err := r.ParseForm(); err != nil {
		v.Error = err.Error()
		h.render(w, r, http.StatusBadRequest, v)
		return
	}
	in, err := parseInput(r.PostForm)
	v.Input = in
	if err != nil {
		v.Error = err.Error()
		h.render(w, r, http.StatusBadRequest, v)
		return
	}

	res, err := h.deps.Forecast(ctx, in)
	if err != nil {
		status, _ := api.Status(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error(ctx, "form forecast failed", logger.Error(err))
		}
		v.Error = err.Error()
		h.render(w, r, status, v)
		return
	}

	v.Result = &result{
		ID:          res.ID,
		Predicted:   h.printer.Sprintf("%.2f", res.Predicted),
		Recommended: h.printer.Sprintf("%d", res.Recommended),
		Defaulted:   res.Defaulted,
	}
	h.render(w, r, http.StatusOK, v)
}

func (h *RootHandler) newView(r *http.Request) *view {
	v := &view{Unit: h.unit, Input: defaultInput()}
	opts, err := h.deps.Options(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "form options unavailable", logger.Error(err))
		v.Error = err.Error()
		return v
	}
	v.Options = opts
	return v
}

func (h *RootHandler) render(w http.ResponseWriter, r *http.Request, status int, v *view) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.ExecuteTemplate(w, "index.html.tmpl", v); err != nil {
		h.logger.Error(r.Context(), ErrRender.Error(), logger.Error(err))
	}
}
