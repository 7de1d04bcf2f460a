// Package regressor evaluates serialized regression models against feature rows.
package regressor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/parcast/internal/domain/features"
)

// Model kinds accepted in the artifact "kind" field.
const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
)

// Regressor predicts a scalar from one feature row.
type Regressor interface {
	Predict(ctx context.Context, row features.Row) (float64, error)
	Kind() string
	// Features returns the training columns the model checks rows against; nil disables the check.
	Features() []string
}

// artifact is the on-disk JSON document.
type artifact struct {
	Kind         string    `json:"kind"`
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	BaseScore    float64   `json:"base_score"`
	Trees        []Tree    `json:"trees"`
}

// Decode reads a model artifact from r.
func Decode(r io.Reader) (Regressor, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	switch a.Kind {
	case KindLinear:
		return NewLinear(a.Intercept, a.Features, a.Coefficients)
	case KindTreeEnsemble:
		return NewTreeEnsemble(a.BaseScore, a.Features, a.Trees)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidModel, a.Kind)
	}
}

// checkShape verifies the row columns equal want, in order.
func checkShape(want []string, row features.Row) error {
	if want == nil {
		return nil
	}
	got := row.Columns()
	if len(got) != len(want) {
		return fmt.Errorf("%w: got %d columns, model expects %d", ErrShapeMismatch, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: column %d is %q, model expects %q", ErrShapeMismatch, i, got[i], want[i])
		}
	}
	return nil
}
