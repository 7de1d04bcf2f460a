// Package forecast turns a model prediction into a par-level recommendation.
package forecast

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/parcast/internal/domain/features"
	"github.com/shopspring/decimal"
)

// Buffer is the safety margin added on top of predicted consumption.
var Buffer = decimal.RequireFromString("0.15")

// Model is the subset of a trained regressor the predictor needs.
type Model interface {
	Predict(ctx context.Context, row features.Row) (float64, error)
}

// Result is the outcome of one forecast.
type Result struct {
	// Predicted is the model's consumption estimate.
	Predicted float64
	// Recommended is the par level: Predicted plus Buffer, rounded up to a whole unit.
	Recommended int64
}

// Predict evaluates model on row and derives the recommendation.
// Any model failure is reported as ErrPrediction and is not retried.
func Predict(ctx context.Context, model Model, row features.Row) (Result, error) {
	y, err := model.Predict(ctx, row)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return Result{}, fmt.Errorf("%w: model returned %v", ErrPrediction, y)
	}
	par, err := Recommend(y)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	return Result{Predicted: y, Recommended: par}, nil
}

var (
	maxPar = decimal.NewFromInt(math.MaxInt64)
	minPar = decimal.NewFromInt(math.MinInt64)
)

// Recommend returns ceil(predicted * (1 + Buffer)).
// Decimal arithmetic keeps exact inputs such as 100 from landing a hair above 115.
// A par level that does not fit in an int64 is ErrParOutOfRange.
func Recommend(predicted float64) (int64, error) {
	par := decimal.NewFromFloat(predicted).Mul(decimal.NewFromInt(1).Add(Buffer)).Ceil()
	if par.GreaterThan(maxPar) || par.LessThan(minPar) {
		return 0, fmt.Errorf("%w: %s", ErrParOutOfRange, par.String())
	}
	return par.IntPart(), nil
}
