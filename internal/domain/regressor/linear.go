package regressor

import (
	"context"
	"fmt"

	"github.com/okian/parcast/internal/domain/features"
)

// Linear is an ordinary least-squares style model: intercept + sum(coef_i * x_i).
type Linear struct {
	intercept    float64
	features     []string
	coefficients []float64
}

// NewLinear builds a linear model. When featureNames is empty the model
// accepts any row with exactly len(coefficients) columns.
func NewLinear(intercept float64, featureNames []string, coefficients []float64) (*Linear, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("%w: linear model has no coefficients", ErrInvalidModel)
	}
	if len(featureNames) > 0 && len(featureNames) != len(coefficients) {
		return nil, fmt.Errorf("%w: %d features but %d coefficients", ErrInvalidModel, len(featureNames), len(coefficients))
	}
	m := &Linear{intercept: intercept, coefficients: append([]float64(nil), coefficients...)}
	if len(featureNames) > 0 {
		m.features = append([]string(nil), featureNames...)
	}
	return m, nil
}

func (m *Linear) Kind() string { return KindLinear }

func (m *Linear) Features() []string { return m.features }

// Predict returns the linear combination for row.
func (m *Linear) Predict(ctx context.Context, row features.Row) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := checkShape(m.features, row); err != nil {
		return 0, err
	}
	x := row.Values()
	if len(x) != len(m.coefficients) {
		return 0, fmt.Errorf("%w: got %d values, model expects %d", ErrShapeMismatch, len(x), len(m.coefficients))
	}
	y := m.intercept
	for i, c := range m.coefficients {
		y += c * x[i]
	}
	return y, nil
}
