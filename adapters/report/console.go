package report

import (
	"context"
	"fmt"
	"io"

	"modeleval/domain/metrics"
)

// ConsoleReporter writes evaluation results as fixed-width text, in the
// layout the downstream tooling expects: 4 decimals for the KS pair,
// 3 decimals for rates and lift columns.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter creates a console reporter writing to w
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// ReportEvaluation renders every section present on the run
func (r *ConsoleReporter) ReportEvaluation(ctx context.Context, run *metrics.EvaluationRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintf(r.w, "evaluation %s (%s vs %s, source %s)\n\n",
		run.ID, run.PredictorKey, run.TargetKey, run.Source)

	if run.Report.KS != nil {
		r.writeKS(run.Report.KS)
	}
	if run.Report.Lift != nil {
		r.writeLift(run.Report.Lift)
	}
	if run.Report.Confusion != nil {
		r.writeConfusion(run.Report.Confusion)
	}
	return nil
}

func (r *ConsoleReporter) writeKS(res *metrics.KSResult) {
	fmt.Fprintf(r.w, "KS: %.4f %.4f\n\n", res.Statistic, res.Significance)
}

func (r *ConsoleReporter) writeLift(rep *metrics.LiftReport) {
	fmt.Fprintln(r.w, "buy:")
	r.writeLiftRows(rep.Buy.Rows)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "sell:")
	r.writeLiftRows(rep.Sell.Rows)
	fmt.Fprintln(r.w)
}

func (r *ConsoleReporter) writeLiftRows(rows []metrics.LiftBinRow) {
	for _, row := range rows {
		fmt.Fprintf(r.w, "%.2f %.3f %.3f %3d\n",
			row.Percentile, row.RawLift, row.LiftRatioPct, row.Count)
	}
}

func (r *ConsoleReporter) writeConfusion(c *metrics.ConfusionReport) {
	fmt.Fprintf(r.w, "threshold: %.4f\n\n", c.Theta)
	fmt.Fprintln(r.w, "Classification probabilities on [0, 1]")
	fmt.Fprintf(r.w, "FPF: %.3f TPF: %.3f tau: %.3f\n\n", c.FPF, c.TPF, c.Tau)
	fmt.Fprintln(r.w, "Predictive values on [0, 1]")
	fmt.Fprintf(r.w, "PPV: %.3f NPV: %.3f rho: %.3f\n\n", c.PPV, c.NPV, c.Rho)
	fmt.Fprintln(r.w, "Diagnostic likelihood ratios on [0, +oo)")
	fmt.Fprintf(r.w, "DLR+: %.3f DLR-: %.3f\n", c.DLRPos, c.DLRNeg)
}
