// Package artifacts loads the trained model and feature template once per process.
package artifacts

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/okian/parcast/internal/domain/features"
	"github.com/okian/parcast/internal/domain/regressor"
	"github.com/okian/parcast/pkg/logger"
	"github.com/okian/parcast/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Set bundles the loaded artifacts. It is read-only after Load returns.
type Set struct {
	Model    regressor.Regressor
	Template features.Template
}

// Loader reads each artifact at most once and caches the outcome, including failures.
type Loader struct {
	modelPath    string
	templatePath string
	logger       logger.Logger

	modelOnce sync.Once
	model     regressor.Regressor
	modelErr  error

	templateOnce sync.Once
	template     features.Template
	templateErr  error
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a loader for the given artifact paths. Nothing is read until first use.
func NewLoader(modelPath, templatePath string, opts ...Option) *Loader {
	l := &Loader{modelPath: modelPath, templatePath: templatePath}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get()
	}
	return l
}

// Model returns the cached model, reading it on the first call.
func (l *Loader) Model(ctx context.Context) (regressor.Regressor, error) {
	l.modelOnce.Do(func() {
		start := time.Now()
		l.model, l.modelErr = readModel(l.modelPath)
		l.observe(ctx, ArtifactModel, l.modelPath, start, l.modelErr)
	})
	return l.model, l.modelErr
}

// Template returns the cached feature template, reading it on the first call.
func (l *Loader) Template(ctx context.Context) (features.Template, error) {
	l.templateOnce.Do(func() {
		start := time.Now()
		t, err := ReadTemplate(l.templatePath)
		if err != nil {
			l.templateErr = &LoadError{Artifact: ArtifactTemplate, Path: l.templatePath, Err: err}
		} else {
			l.template = t
		}
		l.observe(ctx, ArtifactTemplate, l.templatePath, start, l.templateErr)
	})
	return l.template, l.templateErr
}

// Load reads both artifacts concurrently and returns them as a Set.
func (l *Loader) Load(ctx context.Context) (Set, error) {
	var set Set
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := l.Model(gctx)
		set.Model = m
		return err
	})
	g.Go(func() error {
		t, err := l.Template(gctx)
		set.Template = t
		return err
	})
	if err := g.Wait(); err != nil {
		return Set{}, err
	}

	if missing := set.Template.MissingNumeric(); len(missing) > 0 {
		l.logger.Warn(ctx, "template has no column for some inputs; they will not reach the model",
			logger.Any("fields", missing))
	}
	if want := set.Model.Features(); want != nil && len(want) != set.Template.Len() {
		l.logger.Warn(ctx, "model and template disagree on width; predictions will be rejected",
			logger.Int("modelFeatures", len(want)),
			logger.Int("templateColumns", set.Template.Len()))
	}
	metrics.UpdateTemplateColumns(set.Template.Len())
	return set, nil
}

func readModel(path string) (regressor.Regressor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Artifact: ArtifactModel, Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()
	m, err := regressor.Decode(f)
	if err != nil {
		return nil, &LoadError{Artifact: ArtifactModel, Path: path, Err: err}
	}
	return m, nil
}

func (l *Loader) observe(ctx context.Context, artifact, path string, start time.Time, err error) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordArtifactLoad(artifact, ms, err == nil)
	if err != nil {
		l.logger.Error(ctx, "artifact load failed",
			logger.String("artifact", artifact),
			logger.String("path", path),
			logger.Error(err))
		return
	}
	l.logger.Info(ctx, "artifact loaded",
		logger.String("artifact", artifact),
		logger.String("path", path),
		logger.Float64("ms", ms))
}
