package metrics

import (
	"fmt"

	"modeleval/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// KSResult holds the two-sample Kolmogorov-Smirnov test outcome.
// Significance is the p-value of the null hypothesis (both samples from
// the same distribution).
// INVARIANTS:
// - Statistic >= 0
// - Significance in [0.0, 1.0], nonincreasing in Statistic for Statistic > 0
type KSResult struct {
	Statistic    float64 `json:"statistic"`
	Significance float64 `json:"significance"`
	SampleSizeX  int     `json:"sample_size_x"`
	SampleSizeY  int     `json:"sample_size_y"`
}

// ECDFTable holds both empirical distribution functions evaluated over
// the pooled, ascending support of the two samples (duplicates retained).
// INVARIANTS:
// - len(Support) == len(F) == len(G) == SampleSizeX + SampleSizeY
// - F and G are nondecreasing with values in [0.0, 1.0]
type ECDFTable struct {
	Support []float64 `json:"support"`
	F       []float64 `json:"f"`
	G       []float64 `json:"g"`
}

// LiftBinRow is one reported checkpoint of a lift curve.
// Percentile is the 1-based rank position expressed as a rounded percent
// of the ordered observations; Count is the 0-based index of the
// observation the row was emitted at.
type LiftBinRow struct {
	Percentile   float64 `json:"percentile"`
	RawLift      float64 `json:"raw_lift"`
	LiftRatioPct float64 `json:"lift_ratio_pct"`
	Count        int     `json:"count"`
}

// LiftCurve carries one side (buy or sell) of a lift analysis.
// Cumulative and Normalized are full per-observation curves for
// plotting collaborators; Rows is the binned table for reporting.
// INVARIANT: Normalized[i] == Cumulative[i] - MeanLift*(i+1)
type LiftCurve struct {
	Rows            []LiftBinRow `json:"rows"`
	MeanLift        float64      `json:"mean_lift"`
	Cumulative      []float64    `json:"cumulative,omitempty"`
	Normalized      []float64    `json:"normalized,omitempty"`
	SortedPredictor []float64    `json:"sorted_predictor,omitempty"`
}

// LiftReport bundles both lift curves for one paired observation set.
type LiftReport struct {
	Buy           LiftCurve `json:"buy"`
	Sell          LiftCurve `json:"sell"`
	SampleSize    int       `json:"sample_size"`
	BuyThreshold  float64   `json:"buy_threshold"`
	SellThreshold float64   `json:"sell_threshold"`
}

// ConfusionReport holds classification counts and derived rates at a
// single threshold.
// INVARIANTS:
// - TP + FN == P and FP + TN == N
// - TPF, FPF, FNF, TNF in [0.0, 1.0] when their denominators are nonzero
//
// The positive/negative split applies Theta to the target, while the
// TP/FP split combines Theta on the predictor with the *sign* of the
// target. With Theta > 0 a target in [0, Theta) counts toward P but can
// never be a true positive. The mixed convention is kept deliberately
// so existing consumers keep seeing the same counts.
type ConfusionReport struct {
	Theta float64 `json:"theta"`

	P  float64 `json:"p"`
	N  float64 `json:"n"`
	TP float64 `json:"tp"`
	FP float64 `json:"fp"`
	FN float64 `json:"fn"`
	TN float64 `json:"tn"`

	TPF float64 `json:"tpf"`
	FPF float64 `json:"fpf"`
	FNF float64 `json:"fnf"`
	TNF float64 `json:"tnf"`

	Tau float64 `json:"tau"` // predicted-positive rate (TP+FP)/(P+N)
	Rho float64 `json:"rho"` // actual-positive rate (TP+FN)/(P+N)
	PPV float64 `json:"ppv"`
	NPV float64 `json:"npv"`

	DLRPos float64 `json:"dlr_pos"`
	DLRNeg float64 `json:"dlr_neg"`
}

// SampleSummary captures the distribution shape of one input series.
type SampleSummary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	IsNormal bool    `json:"is_normal"`
}

// ============================================================================
// DOMAIN ARTIFACTS
// ============================================================================

// EvaluationReport is the combined output of all metric engines for one
// paired observation set.
type EvaluationReport struct {
	KS        *KSResult        `json:"ks,omitempty"`
	ECDF      *ECDFTable       `json:"ecdf,omitempty"`
	Lift      *LiftReport      `json:"lift,omitempty"`
	Confusion *ConfusionReport `json:"confusion,omitempty"`
}

// EvaluationRun records a persisted evaluation: where the data came
// from, the thresholds used, the reports, and run metadata.
type EvaluationRun struct {
	ID            core.RunID       `json:"id"`
	Source        string           `json:"source"`
	PredictorKey  core.VariableKey `json:"predictor_key"`
	TargetKey     core.VariableKey `json:"target_key"`
	BuyThreshold  float64          `json:"buy_threshold"`
	SellThreshold float64          `json:"sell_threshold"`
	Theta         float64          `json:"theta"`

	Report           EvaluationReport `json:"report"`
	PredictorSummary *SampleSummary   `json:"predictor_summary,omitempty"`
	TargetSummary    *SampleSummary   `json:"target_summary,omitempty"`

	RuntimeMs int64          `json:"runtime_ms"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// NewKSResult creates a KS result with invariant validation
func NewKSResult(statistic, significance float64, m, n int) (*KSResult, error) {
	if statistic < 0 {
		return nil, fmt.Errorf("Statistic must be >= 0, got %f", statistic)
	}
	if significance < 0.0 || significance > 1.0 {
		return nil, fmt.Errorf("Significance must be in [0.0, 1.0], got %f", significance)
	}
	if m <= 0 || n <= 0 {
		return nil, fmt.Errorf("sample sizes must be > 0, got m=%d n=%d", m, n)
	}
	return &KSResult{
		Statistic:    statistic,
		Significance: significance,
		SampleSizeX:  m,
		SampleSizeY:  n,
	}, nil
}

// MustNewKSResult creates a KS result (panics on invalid input)
// Use only in tests - production code should handle validation errors
func MustNewKSResult(statistic, significance float64, m, n int) *KSResult {
	res, err := NewKSResult(statistic, significance, m, n)
	if err != nil {
		panic(err)
	}
	return res
}

// NewEvaluationRun creates a run record with a fresh ID and timestamp
func NewEvaluationRun(source string, predictor, target core.VariableKey) *EvaluationRun {
	return &EvaluationRun{
		ID:           core.NewRunID(),
		Source:       source,
		PredictorKey: predictor,
		TargetKey:    target,
		CreatedAt:    core.Now(),
	}
}

// Validate checks cross-field invariants on a confusion report
func (c *ConfusionReport) Validate() error {
	if c.TP+c.FN != c.P {
		return fmt.Errorf("TP+FN must equal P: %f+%f != %f", c.TP, c.FN, c.P)
	}
	if c.FP+c.TN != c.N {
		return fmt.Errorf("FP+TN must equal N: %f+%f != %f", c.FP, c.TN, c.N)
	}
	return nil
}
