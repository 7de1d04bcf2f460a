package artifacts

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrArtifactLoad      = errors.New("artifact load failed")
	ErrUnsupportedFormat = errors.New("unsupported template format")
)

// Artifact names used in LoadError.
const (
	ArtifactModel    = "model"
	ArtifactTemplate = "feature template"
)

// LoadError reports which artifact could not be loaded and why.
// It matches ErrArtifactLoad under errors.Is.
type LoadError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Artifact, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrArtifactLoad.
func (e *LoadError) Is(target error) bool { return target == ErrArtifactLoad }
