package engines

import (
	"context"
	"math"
	"sort"

	"modeleval/domain/metrics"
	"modeleval/internal/errors"
)

// LiftEngine computes cumulative buy/sell lift curves over paired
// (predictor, target) observations.
type LiftEngine struct{}

// NewLiftEngine creates a lift engine
func NewLiftEngine() *LiftEngine {
	return &LiftEngine{}
}

// Name returns the engine name
func (e *LiftEngine) Name() string {
	return "lift"
}

type liftPair struct {
	predictor float64
	target    float64
}

// Compute sorts the pairs by predictor descending (stable, so ties keep
// their input order) and walks both tails:
//
//   - buy: running count of target > buyThreshold, highest predictor first
//   - sell: running count of target < sellThreshold accumulated as -1 per
//     hit, walked from the lowest predictor upward
//
// The sell side deliberately starts at the low-predictor tail: a sell
// signal is judged by how well small predictor values pick out negative
// targets.
//
// Rows are emitted every n/bins observations with bins = round(sqrt(n)).
// A zero mean lift on either side leaves the lift ratio undefined and
// fails with DEGENERATE_INPUT instead of producing NaN.
func (e *LiftEngine) Compute(ctx context.Context, x, y []float64, buyThreshold, sellThreshold float64) (*metrics.LiftReport, error) {
	if len(x) != len(y) {
		return nil, errors.InvalidInputf("lift requires equal-length series, got %d and %d", len(x), len(y))
	}
	n := len(x)
	if n == 0 {
		return nil, errors.InvalidInput("lift requires at least one observation")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "lift computation cancelled")
	}

	pairs := make([]liftPair, n)
	for i := range x {
		pairs[i] = liftPair{predictor: x[i], target: y[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].predictor > pairs[j].predictor
	})

	cumBuy := make([]float64, n)
	cumSell := make([]float64, n)
	buyPredictor := make([]float64, n)
	sellPredictor := make([]float64, n)

	var runBuy, runSell float64
	for i := 0; i < n; i++ {
		if pairs[i].target > buyThreshold {
			runBuy += 1.0
		}
		cumBuy[i] = runBuy
		buyPredictor[i] = pairs[i].predictor

		// Sell walks the same ordering reversed.
		rev := n - 1 - i
		if pairs[rev].target < sellThreshold {
			runSell += -1.0
		}
		cumSell[i] = runSell
		sellPredictor[i] = pairs[rev].predictor
	}

	meanBuy := cumBuy[n-1] / float64(n)
	meanSell := cumSell[n-1] / float64(n)
	if meanBuy == 0 {
		return nil, errors.DegenerateInputf("no targets above buy threshold %g, buy lift ratio undefined", buyThreshold)
	}
	if meanSell == 0 {
		return nil, errors.DegenerateInputf("no targets below sell threshold %g, sell lift ratio undefined", sellThreshold)
	}

	buy, err := buildCurve(cumBuy, buyPredictor, meanBuy)
	if err != nil {
		return nil, err
	}
	sell, err := buildCurve(cumSell, sellPredictor, meanSell)
	if err != nil {
		return nil, err
	}

	return &metrics.LiftReport{
		Buy:           *buy,
		Sell:          *sell,
		SampleSize:    n,
		BuyThreshold:  buyThreshold,
		SellThreshold: sellThreshold,
	}, nil
}

// liftBins is the bin-count heuristic: round(sqrt(n)) buckets, so the
// reported table grows with the square root of the sample size.
func liftBins(n int) int {
	bins := int(math.Floor(math.Sqrt(float64(n)) + 0.5))
	if bins < 1 {
		bins = 1
	}
	return bins
}

func buildCurve(cum, sortedPredictor []float64, meanLift float64) (*metrics.LiftCurve, error) {
	n := len(cum)

	bins := liftBins(n)
	step := n / bins // integer truncation, so the last bin absorbs the remainder
	if step < 1 {
		step = 1
	}

	var rows []metrics.LiftBinRow
	for i := step - 1; i < n; i += step {
		// Raw lift through 1-based rank i+1 is the cumulative count
		// divided by the rank; rank 0 is defined as 0.0 and never
		// reported, so no denominator can be zero.
		raw := cum[i] / float64(i+1)
		// 1-based rank position as a rounded percent of n. Sub-percent
		// ranks round to 0 on very large samples; the label is clamped
		// to 1 so the ratio below stays finite.
		percentile := math.Floor(float64(i+1)/float64(n)*100.0 + 0.5)
		if percentile < 1.0 {
			percentile = 1.0
		}
		rows = append(rows, metrics.LiftBinRow{
			Percentile:   percentile,
			RawLift:      raw,
			LiftRatioPct: 100.0 * (raw/meanLift - 1.0) / percentile,
			Count:        i,
		})
	}

	// Normalized curve: cumulative lift minus the cumulative expected
	// lift under the mean rate. Feeds plotting collaborators only.
	normalized := make([]float64, n)
	for i := 0; i < n; i++ {
		normalized[i] = cum[i] - meanLift*float64(i+1)
	}

	return &metrics.LiftCurve{
		Rows:            rows,
		MeanLift:        meanLift,
		Cumulative:      cum,
		Normalized:      normalized,
		SortedPredictor: sortedPredictor,
	}, nil
}
