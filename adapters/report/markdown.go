package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"modeleval/domain/metrics"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownReporter renders an evaluation as a markdown document, with
// optional HTML conversion for embedding in dashboards.
type MarkdownReporter struct {
	w          io.Writer
	renderHTML bool
}

// NewMarkdownReporter creates a markdown reporter writing to w
func NewMarkdownReporter(w io.Writer, renderHTML bool) *MarkdownReporter {
	return &MarkdownReporter{w: w, renderHTML: renderHTML}
}

// ReportEvaluation writes the run as markdown (or rendered HTML)
func (r *MarkdownReporter) ReportEvaluation(ctx context.Context, run *metrics.EvaluationRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := r.buildMarkdown(run)
	if r.renderHTML {
		p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
		renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
		out := markdown.ToHTML([]byte(doc), p, renderer)
		_, err := r.w.Write(out)
		return err
	}
	_, err := io.WriteString(r.w, doc)
	return err
}

func (r *MarkdownReporter) buildMarkdown(run *metrics.EvaluationRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Evaluation %s\n\n", run.ID)
	fmt.Fprintf(&b, "Source `%s`, predictor `%s`, target `%s`.\n\n",
		run.Source, run.PredictorKey, run.TargetKey)

	if ks := run.Report.KS; ks != nil {
		fmt.Fprintf(&b, "## Kolmogorov-Smirnov\n\n")
		fmt.Fprintf(&b, "| statistic | significance | m | n |\n|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %.4f | %.4f | %d | %d |\n\n",
			ks.Statistic, ks.Significance, ks.SampleSizeX, ks.SampleSizeY)
	}

	if lift := run.Report.Lift; lift != nil {
		fmt.Fprintf(&b, "## Lift\n\n")
		r.writeLiftTable(&b, "Buy", lift.Buy)
		r.writeLiftTable(&b, "Sell", lift.Sell)
	}

	if c := run.Report.Confusion; c != nil {
		fmt.Fprintf(&b, "## Confusion at theta = %.4f\n\n", c.Theta)
		fmt.Fprintf(&b, "| TPF | FPF | PPV | NPV | tau | rho | DLR+ | DLR- |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %.3f | %.3f | %.3f | %.3f | %.3f | %.3f | %.3f | %.3f |\n\n",
			c.TPF, c.FPF, c.PPV, c.NPV, c.Tau, c.Rho, c.DLRPos, c.DLRNeg)
	}

	fmt.Fprintf(&b, "Runtime %dms.\n", run.RuntimeMs)
	return b.String()
}

func (r *MarkdownReporter) writeLiftTable(b *strings.Builder, side string, curve metrics.LiftCurve) {
	fmt.Fprintf(b, "### %s (mean lift %.4f)\n\n", side, curve.MeanLift)
	fmt.Fprintf(b, "| percentile | raw lift | lift ratio %% | count |\n|---|---|---|---|\n")
	for _, row := range curve.Rows {
		fmt.Fprintf(b, "| %.2f | %.3f | %.3f | %d |\n",
			row.Percentile, row.RawLift, row.LiftRatioPct, row.Count)
	}
	fmt.Fprintln(b)
}
