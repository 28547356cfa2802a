package profiling

import (
	"math"

	"modeleval/domain/metrics"
	apperrors "modeleval/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampleProfiler computes distribution summaries for input series,
// attached to evaluation runs as context for interpreting the metrics.
type SampleProfiler struct{}

// NewSampleProfiler creates a sample profiler
func NewSampleProfiler() *SampleProfiler {
	return &SampleProfiler{}
}

// Summarize computes the summary statistics for one series
func (p *SampleProfiler) Summarize(data []float64) (*metrics.SampleSummary, error) {
	if len(data) == 0 {
		return nil, apperrors.InvalidInput("cannot summarize an empty series")
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, apperrors.Wrap(err, "mean computation failed")
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return nil, apperrors.Wrap(err, "standard deviation computation failed")
	}
	min, err := stats.Min(data)
	if err != nil {
		return nil, apperrors.Wrap(err, "min computation failed")
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, apperrors.Wrap(err, "max computation failed")
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, apperrors.Wrap(err, "median computation failed")
	}
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		q25 = median
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		q75 = median
	}

	skewness := sampleSkewness(data, mean, stdDev)
	isNormal := looksNormal(data, mean, stdDev, skewness)

	return &metrics.SampleSummary{
		Count:    len(data),
		Mean:     mean,
		StdDev:   stdDev,
		Min:      min,
		Max:      max,
		Median:   median,
		Q25:      q25,
		Q75:      q75,
		Skewness: skewness,
		IsNormal: isNormal,
	}, nil
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	skewness := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// looksNormal runs a rough moment-based normality check: the combined
// skewness/excess-kurtosis statistic against a chi-squared tail.
func looksNormal(data []float64, mean, stdDev, skewness float64) bool {
	if len(data) < 4 || stdDev == 0 {
		return false
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}
	excessKurtosis := sumFourth/n - 3

	testStat := math.Abs(skewness) + math.Abs(excessKurtosis)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)

	return pValue > 0.05
}
