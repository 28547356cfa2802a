package plot

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"modeleval/domain/metrics"
	"modeleval/internal/errors"
)

// SeriesExporter implements the plotting collaborator by exporting the
// plottable series as CSV for external chart tooling. No rendering
// happens in-process.
type SeriesExporter struct {
	ecdfW io.Writer
	liftW io.Writer
}

// NewSeriesExporter creates an exporter writing the ECDF overlay and
// the lift curves to separate destinations.
func NewSeriesExporter(ecdfW, liftW io.Writer) *SeriesExporter {
	return &SeriesExporter{ecdfW: ecdfW, liftW: liftW}
}

// PlotECDF writes value,f,g,cum_prob rows, one per pooled support
// point. cum_prob is the uniform cumulative axis i/(m+n) the original
// comparison chart plots both ECDFs against.
func (e *SeriesExporter) PlotECDF(ctx context.Context, table *metrics.ECDFTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if table == nil || len(table.Support) == 0 {
		return errors.InvalidInput("ECDF table is empty")
	}

	w := csv.NewWriter(e.ecdfW)
	if err := w.Write([]string{"value", "f", "g", "cum_prob"}); err != nil {
		return err
	}
	total := float64(len(table.Support))
	for i := range table.Support {
		row := []string{
			formatFloat(table.Support[i]),
			formatFloat(table.F[i]),
			formatFloat(table.G[i]),
			formatFloat(float64(i) / total),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// PlotLift writes index,normalized_buy,buy_predictor,normalized_sell,
// sell_predictor rows, one per observation.
func (e *SeriesExporter) PlotLift(ctx context.Context, report *metrics.LiftReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil || report.SampleSize == 0 {
		return errors.InvalidInput("lift report is empty")
	}

	w := csv.NewWriter(e.liftW)
	header := []string{"index", "normalized_buy", "buy_predictor", "normalized_sell", "sell_predictor"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < report.SampleSize; i++ {
		row := []string{
			strconv.Itoa(i),
			formatFloat(report.Buy.Normalized[i]),
			formatFloat(report.Buy.SortedPredictor[i]),
			formatFloat(report.Sell.Normalized[i]),
			formatFloat(report.Sell.SortedPredictor[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
