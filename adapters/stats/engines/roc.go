package engines

import (
	"context"

	"modeleval/domain/metrics"
	"modeleval/internal/errors"
)

// ROCEngine computes confusion-matrix counts and derived rates at a
// single classification threshold.
type ROCEngine struct{}

// NewROCEngine creates a confusion/ROC engine
func NewROCEngine() *ROCEngine {
	return &ROCEngine{}
}

// Name returns the engine name
func (e *ROCEngine) Name() string {
	return "confusion"
}

// Compute classifies the paired series at threshold theta.
//
// The positive/negative totals split the target on theta, while the
// TP/FP counts combine the predictor threshold with the sign of the
// target (y > 0, y < 0), not with theta itself. This mixed convention
// is preserved exactly; see the ConfusionReport doc comment.
//
// Any zero denominator (empty negative class, no actual positives, no
// predicted positives, zero FPF or TNF for the likelihood ratios) fails
// with DEGENERATE_INPUT rather than returning a non-finite rate.
func (e *ROCEngine) Compute(ctx context.Context, x, y []float64, theta float64) (*metrics.ConfusionReport, error) {
	if len(x) != len(y) {
		return nil, errors.InvalidInputf("confusion requires equal-length series, got %d and %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, errors.InvalidInput("confusion requires at least one observation")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "confusion computation cancelled")
	}

	var p, n, tp, fp float64
	for i := range y {
		if y[i] >= theta {
			p++
		} else {
			n++
		}
		if x[i] >= theta && y[i] > 0.0 {
			tp++
		}
		if x[i] >= theta && y[i] < 0.0 {
			fp++
		}
	}
	fn := p - tp
	tn := n - fp

	if n == 0 {
		return nil, errors.DegenerateInput("no negative targets: FPF and TNF undefined")
	}
	if tp+fn == 0 {
		return nil, errors.DegenerateInput("no actual positives: TPF undefined")
	}
	if tp+fp == 0 {
		return nil, errors.DegenerateInput("no predicted positives: PPV undefined")
	}
	if tn+fn == 0 {
		return nil, errors.DegenerateInput("no predicted negatives: NPV undefined")
	}

	tpf := tp / (tp + fn)
	fpf := fp / n
	fnf := 1.0 - tpf
	tnf := tn / (tn + fp)

	if fpf == 0 {
		return nil, errors.DegenerateInput("zero false-positive fraction: DLR+ undefined")
	}
	if tnf == 0 {
		return nil, errors.DegenerateInput("zero true-negative fraction: DLR- undefined")
	}

	report := &metrics.ConfusionReport{
		Theta: theta,
		P:     p,
		N:     n,
		TP:    tp,
		FP:    fp,
		FN:    fn,
		TN:    tn,
		TPF:   tpf,
		FPF:   fpf,
		FNF:   fnf,
		TNF:   tnf,
		Tau:   (tp + fp) / (p + n),
		Rho:   (tp + fn) / (p + n),
		PPV:   tp / (tp + fp),
		NPV:   tn / (tn + fn),

		DLRPos: tpf / fpf,
		DLRNeg: fnf / tnf,
	}
	if err := report.Validate(); err != nil {
		return nil, errors.Wrap(err, "confusion invariant violated")
	}
	return report, nil
}
