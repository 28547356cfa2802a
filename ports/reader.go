package ports

import (
	"context"

	"modeleval/domain/core"
)

// PairReader loads one paired (predictor, target) observation set from
// a data source. Both slices are equal length and finite; readers fail
// on non-numeric or missing cells rather than coercing.
type PairReader interface {
	ReadPairs(ctx context.Context, predictor, target core.VariableKey) (x []float64, y []float64, err error)
	Source() string
}
