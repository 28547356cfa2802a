package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"modeleval/domain/core"
	"modeleval/domain/metrics"
)

func sampleRun() *metrics.EvaluationRun {
	run := metrics.NewEvaluationRun("unit-test", core.VariableKey("score"), core.VariableKey("outcome"))
	run.Report = metrics.EvaluationReport{
		KS: metrics.MustNewKSResult(5.0, 1.0, 50, 50),
		Lift: &metrics.LiftReport{
			Buy: metrics.LiftCurve{
				MeanLift: 0.5,
				Rows: []metrics.LiftBinRow{
					{Percentile: 10, RawLift: 1.0, LiftRatioPct: 10.0, Count: 9},
					{Percentile: 100, RawLift: 0.5, LiftRatioPct: 0.0, Count: 99},
				},
			},
			Sell: metrics.LiftCurve{
				MeanLift: -0.5,
				Rows: []metrics.LiftBinRow{
					{Percentile: 10, RawLift: -1.0, LiftRatioPct: 10.0, Count: 9},
				},
			},
			SampleSize: 100,
		},
		Confusion: &metrics.ConfusionReport{
			Theta: 0.25,
			P:     3, N: 2, TP: 2, FP: 1, FN: 1, TN: 1,
			TPF: 2.0 / 3.0, FPF: 0.5, FNF: 1.0 / 3.0, TNF: 0.5,
			Tau: 0.6, Rho: 0.6, PPV: 2.0 / 3.0, NPV: 0.5,
			DLRPos: 4.0 / 3.0, DLRNeg: 2.0 / 3.0,
		},
	}
	return run
}

// TestConsoleReporter_Layout verifies the fixed-width sections appear in
// the expected shapes.
func TestConsoleReporter_Layout(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporter(&buf)

	if err := reporter.ReportEvaluation(context.Background(), sampleRun()); err != nil {
		t.Fatalf("ReportEvaluation failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"score vs outcome",
		"KS: 5.0000 1.0000",
		"buy:",
		"10.00 1.000 10.000   9",
		"100.00 0.500 0.000  99",
		"sell:",
		"10.00 -1.000 10.000   9",
		"threshold: 0.2500",
		"FPF: 0.500 TPF: 0.667 tau: 0.600",
		"PPV: 0.667 NPV: 0.500 rho: 0.600",
		"DLR+: 1.333 DLR-: 0.667",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q\n---\n%s", want, out)
		}
	}
}

// TestConsoleReporter_SkipsAbsentSections verifies only present report
// sections are rendered.
func TestConsoleReporter_SkipsAbsentSections(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporter(&buf)

	run := metrics.NewEvaluationRun("unit-test", core.VariableKey("a"), core.VariableKey("b"))
	run.Report = metrics.EvaluationReport{
		KS: metrics.MustNewKSResult(0.3, 0.1, 10, 10),
	}

	if err := reporter.ReportEvaluation(context.Background(), run); err != nil {
		t.Fatalf("ReportEvaluation failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "KS: 0.3000 0.1000") {
		t.Errorf("Expected KS line, got:\n%s", out)
	}
	if strings.Contains(out, "buy:") || strings.Contains(out, "threshold:") {
		t.Errorf("Unexpected sections rendered:\n%s", out)
	}
}

// TestConsoleReporter_CancelledContext verifies the reporter honors
// cancellation before writing.
func TestConsoleReporter_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporter(&buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := reporter.ReportEvaluation(ctx, sampleRun()); err == nil {
		t.Error("Expected error from cancelled context, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output after cancellation, got %q", buf.String())
	}
}
