package engines

import (
	"context"
	"math"
	"testing"

	"modeleval/internal/errors"
	"modeleval/internal/testkit"
)

// TestROCEngine_KnownCounts verifies every count and rate against a
// hand-computed confusion matrix at theta = 0.
func TestROCEngine_KnownCounts(t *testing.T) {
	engine := NewROCEngine()
	ctx := context.Background()

	x := []float64{1.0, 1.0, -1.0, -1.0, 0.5}
	y := []float64{2.0, -2.0, 3.0, -3.0, 1.0}

	report, err := engine.Compute(ctx, x, y, 0.0)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if report.P != 3 || report.N != 2 {
		t.Errorf("Expected P=3 N=2, got P=%f N=%f", report.P, report.N)
	}
	if report.TP != 2 || report.FP != 1 || report.FN != 1 || report.TN != 1 {
		t.Errorf("Unexpected counts: TP=%f FP=%f FN=%f TN=%f",
			report.TP, report.FP, report.FN, report.TN)
	}

	approx := func(name string, got, want float64) {
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("%s = %f, want %f", name, got, want)
		}
	}
	approx("TPF", report.TPF, 2.0/3.0)
	approx("FPF", report.FPF, 0.5)
	approx("FNF", report.FNF, 1.0/3.0)
	approx("TNF", report.TNF, 0.5)
	approx("tau", report.Tau, 0.6)
	approx("rho", report.Rho, 0.6)
	approx("PPV", report.PPV, 2.0/3.0)
	approx("NPV", report.NPV, 0.5)
	approx("DLR+", report.DLRPos, 4.0/3.0)
	approx("DLR-", report.DLRNeg, 2.0/3.0)
}

// TestROCEngine_PositiveTheta verifies the split convention with a
// nonzero threshold: the positive/negative totals follow theta on the
// target, while the TP/FP counts follow the sign of the target. A small
// positive target below theta lands in N but never in TP.
func TestROCEngine_PositiveTheta(t *testing.T) {
	engine := NewROCEngine()
	ctx := context.Background()

	x := []float64{0.9, 0.9, 0.1, 0.1}
	y := []float64{1.0, -1.0, 0.5, 0.9}

	report, err := engine.Compute(ctx, x, y, 0.8)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// y=0.5 is below theta (negative class) even though it is positive
	// in sign; y=0.9 is in the positive class but its predictor misses.
	if report.P != 2 || report.N != 2 {
		t.Errorf("Expected P=2 N=2, got P=%f N=%f", report.P, report.N)
	}
	if report.TP != 1 || report.FP != 1 || report.FN != 1 || report.TN != 1 {
		t.Errorf("Unexpected counts: TP=%f FP=%f FN=%f TN=%f",
			report.TP, report.FP, report.FN, report.TN)
	}
	if report.DLRPos != 1.0 || report.DLRNeg != 1.0 {
		t.Errorf("Expected unit likelihood ratios, got DLR+=%f DLR-=%f",
			report.DLRPos, report.DLRNeg)
	}
}

// TestROCEngine_Invariants verifies the count identities and rate ranges
// hold on generated data.
func TestROCEngine_Invariants(t *testing.T) {
	engine := NewROCEngine()
	ctx := context.Background()

	gen := testkit.NewSignalGenerator(testkit.DefaultSignalConfig())
	x, y := gen.GeneratePairs()

	report, err := engine.Compute(ctx, x, y, 0.0)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if report.TP+report.FN != report.P {
		t.Errorf("TP+FN != P: %f+%f != %f", report.TP, report.FN, report.P)
	}
	if report.FP+report.TN != report.N {
		t.Errorf("FP+TN != N: %f+%f != %f", report.FP, report.TN, report.N)
	}
	for _, rate := range []struct {
		name string
		v    float64
	}{
		{"TPF", report.TPF}, {"FPF", report.FPF}, {"FNF", report.FNF}, {"TNF", report.TNF},
		{"tau", report.Tau}, {"rho", report.Rho}, {"PPV", report.PPV}, {"NPV", report.NPV},
	} {
		if rate.v < 0.0 || rate.v > 1.0 {
			t.Errorf("%s out of [0, 1]: %f", rate.name, rate.v)
		}
	}
	if report.DLRPos < 0 || report.DLRNeg < 0 {
		t.Errorf("Likelihood ratios must be nonnegative: DLR+=%f DLR-=%f",
			report.DLRPos, report.DLRNeg)
	}
}

// TestROCEngine_DegenerateClasses verifies each zero-denominator path
func TestROCEngine_DegenerateClasses(t *testing.T) {
	engine := NewROCEngine()
	ctx := context.Background()

	cases := []struct {
		name  string
		x, y  []float64
		theta float64
	}{
		{"no negatives", []float64{1, 1}, []float64{1, 2}, 0.0},
		{"no positives", []float64{-1, -1}, []float64{-1, -2}, 0.0},
		{"zero FPF", []float64{1, -1}, []float64{1, -1}, 0.0},
	}
	for _, tc := range cases {
		_, err := engine.Compute(ctx, tc.x, tc.y, tc.theta)
		if err == nil {
			t.Errorf("%s: expected degenerate error, got nil", tc.name)
			continue
		}
		if code := errors.GetCode(err); code != errors.CodeDegenerateInput {
			t.Errorf("%s: expected %s, got %s", tc.name, errors.CodeDegenerateInput, code)
		}
	}
}

// TestROCEngine_InvalidInput verifies precondition failures
func TestROCEngine_InvalidInput(t *testing.T) {
	engine := NewROCEngine()
	ctx := context.Background()

	_, err := engine.Compute(ctx, []float64{1, 2}, []float64{1}, 0.0)
	if err == nil {
		t.Fatal("Expected error for mismatched lengths, got nil")
	}
	if code := errors.GetCode(err); code != errors.CodeInvalidInput {
		t.Errorf("Expected %s, got %s", errors.CodeInvalidInput, code)
	}

	_, err = engine.Compute(ctx, nil, nil, 0.0)
	if err == nil {
		t.Fatal("Expected error for empty input, got nil")
	}
	if code := errors.GetCode(err); code != errors.CodeInvalidInput {
		t.Errorf("Expected %s, got %s", errors.CodeInvalidInput, code)
	}
}
