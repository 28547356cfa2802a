package engines

import (
	"context"

	"modeleval/domain/metrics"
)

// Options carries the thresholds applied by the metric engines.
type Options struct {
	BuyThreshold  float64 `json:"buy_threshold"`
	SellThreshold float64 `json:"sell_threshold"`
	Theta         float64 `json:"theta"`
}

// MetricsEngine runs all comparison engines over one paired observation
// set: KS on the two series as independent samples, lift and confusion
// on the pairing.
type MetricsEngine struct {
	ks   *KSEngine
	lift *LiftEngine
	roc  *ROCEngine
}

// NewMetricsEngine creates the combined engine
func NewMetricsEngine(ksMaxParallel int64) *MetricsEngine {
	return &MetricsEngine{
		ks:   NewKSEngine(ksMaxParallel),
		lift: NewLiftEngine(),
		roc:  NewROCEngine(),
	}
}

// KS exposes the KS engine for single-metric callers
func (e *MetricsEngine) KS() *KSEngine { return e.ks }

// Lift exposes the lift engine for single-metric callers
func (e *MetricsEngine) Lift() *LiftEngine { return e.lift }

// ROC exposes the confusion engine for single-metric callers
func (e *MetricsEngine) ROC() *ROCEngine { return e.roc }

// EvaluateAll runs the three engines concurrently and assembles one
// report. The engines share no state, so they only synchronize on the
// result channel. The first engine error fails the whole evaluation.
func (e *MetricsEngine) EvaluateAll(ctx context.Context, x, y []float64, opts Options) (*metrics.EvaluationReport, error) {
	type partial struct {
		apply func(*metrics.EvaluationReport)
		err   error
	}

	resultChan := make(chan partial, 3)

	go func() {
		res, table, err := e.ks.Compare(ctx, x, y)
		resultChan <- partial{
			apply: func(r *metrics.EvaluationReport) {
				r.KS = res
				r.ECDF = table
			},
			err: err,
		}
	}()

	go func() {
		lift, err := e.lift.Compute(ctx, x, y, opts.BuyThreshold, opts.SellThreshold)
		resultChan <- partial{
			apply: func(r *metrics.EvaluationReport) { r.Lift = lift },
			err:   err,
		}
	}()

	go func() {
		conf, err := e.roc.Compute(ctx, x, y, opts.Theta)
		resultChan <- partial{
			apply: func(r *metrics.EvaluationReport) { r.Confusion = conf },
			err:   err,
		}
	}()

	report := &metrics.EvaluationReport{}
	var firstErr error
	for i := 0; i < 3; i++ {
		res := <-resultChan
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		res.apply(report)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return report, nil
}
