package ports

import (
	"context"

	"modeleval/domain/metrics"
)

// Plotter receives the plottable series of an evaluation: the ECDF
// overlay of the KS comparison and the normalized lift curves with
// their sorted predictors. Rendering happens outside this process.
type Plotter interface {
	PlotECDF(ctx context.Context, table *metrics.ECDFTable) error
	PlotLift(ctx context.Context, report *metrics.LiftReport) error
}
