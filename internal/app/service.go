// Package service provides the forecasting service that implements
// the dependencies required by the HTTP layer and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/okian/parcast/internal/adapters/artifacts"
	"github.com/okian/parcast/internal/domain/features"
	"github.com/okian/parcast/internal/domain/forecast"
	"github.com/okian/parcast/pkg/logger"
	"github.com/okian/parcast/pkg/metrics"
)

// Forecast is the user-facing outcome of one submission.
type Forecast struct {
	ID          string   `json:"id"`
	Predicted   float64  `json:"predicted_consumption"`
	Recommended int64    `json:"recommended_par_level"`
	Unit        string   `json:"unit"`
	Defaulted   []string `json:"defaulted_columns,omitempty"`
}

// Service owns the loaded artifacts and runs submissions against them.
type Service struct {
	mu sync.RWMutex

	// Artifact sources
	loader *artifacts.Loader
	set    artifacts.Set

	// Configuration
	modelPath    string
	templatePath string
	unit         string

	// State
	started bool
	loadErr error
	served  int64
	failed  int64

	validate *validator.Validate
	logger   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithArtifactPaths sets where the model and feature template are read from.
func WithArtifactPaths(modelPath, templatePath string) Option {
	return func(s *Service) {
		s.modelPath = modelPath
		s.templatePath = templatePath
	}
}

// WithArtifacts injects already loaded artifacts; Start then skips loading.
func WithArtifacts(set artifacts.Set) Option {
	return func(s *Service) {
		s.set = set
	}
}

// WithVolumeUnit sets the unit label reported with forecasts.
func WithVolumeUnit(unit string) Option {
	return func(s *Service) {
		if unit != "" {
			s.unit = unit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		unit:     "ml",
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the artifacts once. A load failure is kept and reported by every
// later call, including a Start after Stop, so the user-facing layer can
// display it instead of a form.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A failed load is final; Stop/Start does not re-read the files.
	if s.loadErr != nil {
		return s.loadErr
	}
	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true

	if s.set.Model == nil {
		s.loader = artifacts.NewLoader(s.modelPath, s.templatePath, artifacts.WithLogger(s.logger))
		set, err := s.loader.Load(ctx)
		if err != nil {
			s.loadErr = err
			return err
		}
		s.set = set
	}

	opts := s.set.Template.Options()
	s.logger.Info(ctx, "forecast service started",
		logger.String("model", s.set.Model.Kind()),
		logger.Int("columns", s.set.Template.Len()),
		logger.Int("bars", len(opts.Bars)),
		logger.Int("brands", len(opts.Brands)),
		logger.Int("alcohols", len(opts.Alcohols)),
	)
	return nil
}

// Stop marks the service as stopped. Loaded artifacts stay in memory.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "forecast service stopped")
}

// Ready returns nil when forecasts can be served, otherwise the reason they cannot.
func (s *Service) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readyLocked()
}

func (s *Service) readyLocked() error {
	if s.loadErr != nil {
		return s.loadErr
	}
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Options returns the selectable categories derived from the template.
func (s *Service) Options(_ context.Context) (features.Options, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return features.Options{}, err
	}
	return s.set.Template.Options(), nil
}

// Forecast validates in, assembles the feature row and predicts consumption.
func (s *Service) Forecast(ctx context.Context, in features.Input) (Forecast, error) {
	s.mu.RLock()
	err := s.readyLocked()
	set := s.set
	s.mu.RUnlock()
	if err != nil {
		metrics.RecordForecastError("unavailable")
		return Forecast{}, err
	}

	id := uuid.NewString()
	log := s.logger
	if err := s.check(in, set.Template.Options()); err != nil {
		metrics.RecordForecastError("invalid_input")
		log.Debug(ctx, "rejected forecast input", logger.String("id", id), logger.Error(err))
		return Forecast{}, err
	}

	row := features.Assemble(in, set.Template)
	if d := row.Defaulted(); len(d) > 0 {
		metrics.RecordDefaultedColumns(d)
		log.Warn(ctx, "template columns zero-filled; check template and assembler for drift",
			logger.String("id", id),
			logger.Any("columns", d))
	}

	start := time.Now()
	res, err := forecast.Predict(ctx, set.Model, row)
	metrics.RecordPredictionLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		s.count(false)
		metrics.RecordForecastError("prediction")
		log.Error(ctx, "prediction failed", logger.String("id", id), logger.Error(err))
		return Forecast{}, err
	}
	s.count(true)
	metrics.RecordForecast(res.Recommended)

	log.Info(ctx, "forecast served",
		logger.String("id", id),
		logger.String("bar", in.Bar),
		logger.String("brand", in.Brand),
		logger.String("alcohol", in.Alcohol),
		logger.Float64("predicted", res.Predicted),
		logger.Any("recommended", res.Recommended),
	)
	return Forecast{
		ID:          id,
		Predicted:   res.Predicted,
		Recommended: res.Recommended,
		Unit:        s.unit,
		Defaulted:   row.Defaulted(),
	}, nil
}

// check validates numeric ranges and that each selection is one of the template options.
// A family without options only accepts an empty selection.
func (s *Service) check(in features.Input, opts features.Options) error {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidInput, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for _, c := range []struct {
		field, value string
		options      []string
	}{
		{"bar", in.Bar, opts.Bars},
		{"brand", in.Brand, opts.Brands},
		{"alcohol", in.Alcohol, opts.Alcohols},
	} {
		if len(c.options) == 0 && c.value == "" {
			continue
		}
		if !slices.Contains(c.options, c.value) {
			return fmt.Errorf("%w: %s %q is not a known option", ErrInvalidInput, c.field, c.value)
		}
	}
	return nil
}

func (s *Service) count(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.served++
	} else {
		s.failed++
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"modelPath":    s.modelPath,
		"templatePath": s.templatePath,
		"served":       s.served,
		"failed":       s.failed,
	}
	if s.loadErr != nil {
		stats["loadError"] = s.loadErr.Error()
		return stats
	}
	if s.set.Model != nil {
		stats["modelKind"] = s.set.Model.Kind()
		stats["templateColumns"] = s.set.Template.Len()
		stats["missingNumeric"] = s.set.Template.MissingNumeric()
	}
	return stats
}
