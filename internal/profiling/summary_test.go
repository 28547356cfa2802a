package profiling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleProfiler_Summarize(t *testing.T) {
	profiler := NewSampleProfiler()

	rng := rand.New(rand.NewSource(7))
	data := make([]float64, 500)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	summary, err := profiler.Summarize(data)
	require.NoError(t, err)

	assert.Equal(t, 500, summary.Count)
	assert.InDelta(t, 0.0, summary.Mean, 0.2)
	assert.InDelta(t, 1.0, summary.StdDev, 0.2)
	assert.LessOrEqual(t, summary.Min, summary.Median)
	assert.LessOrEqual(t, summary.Median, summary.Max)
	assert.LessOrEqual(t, summary.Q25, summary.Median)
	assert.LessOrEqual(t, summary.Median, summary.Q75)
	assert.InDelta(t, 0.0, summary.Skewness, 0.5)
	assert.True(t, summary.IsNormal, "standard normal draw should pass the moment check")
}

func TestSampleProfiler_SkewedSample(t *testing.T) {
	profiler := NewSampleProfiler()

	// Squared normals are strongly right-skewed.
	rng := rand.New(rand.NewSource(11))
	data := make([]float64, 500)
	for i := range data {
		v := rng.NormFloat64()
		data[i] = v * v
	}

	summary, err := profiler.Summarize(data)
	require.NoError(t, err)

	assert.Greater(t, summary.Skewness, 1.0)
	assert.False(t, summary.IsNormal)
}

func TestSampleProfiler_ConstantSeries(t *testing.T) {
	profiler := NewSampleProfiler()

	summary, err := profiler.Summarize([]float64{3.0, 3.0, 3.0, 3.0})
	require.NoError(t, err)

	assert.Equal(t, 3.0, summary.Mean)
	assert.Equal(t, 0.0, summary.StdDev)
	assert.Equal(t, 0.0, summary.Skewness)
	assert.False(t, summary.IsNormal)
}

func TestSampleProfiler_EmptySeries(t *testing.T) {
	profiler := NewSampleProfiler()
	_, err := profiler.Summarize(nil)
	require.Error(t, err)
}

func TestSampleProfiler_TinySeries(t *testing.T) {
	profiler := NewSampleProfiler()

	summary, err := profiler.Summarize([]float64{1.0, 2.0})
	require.NoError(t, err)

	// Too few points for shape statistics.
	assert.Equal(t, 0.0, summary.Skewness)
	assert.False(t, summary.IsNormal)
	assert.Equal(t, 1.5, summary.Mean)
}
