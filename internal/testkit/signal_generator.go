package testkit

import (
	"math/rand"
	"sort"
)

// SignalConfig configures the synthetic predictor/target generator
type SignalConfig struct {
	Count  int     `json:"count"`
	Signal float64 `json:"signal"` // predictor-to-target coupling strength
	Noise  float64 `json:"noise"`  // stddev of additive target noise
	Seed   int64   `json:"seed"`
}

// DefaultSignalConfig returns sensible defaults for generated pairs
func DefaultSignalConfig() SignalConfig {
	return SignalConfig{
		Count:  200,
		Signal: 0.8,
		Noise:  0.5,
		Seed:   42,
	}
}

// SignalGenerator produces deterministic synthetic evaluation data:
// a standard-normal predictor and a target that follows it with
// configurable coupling and noise.
type SignalGenerator struct {
	config SignalConfig
	rng    *rand.Rand
}

// NewSignalGenerator creates a generator seeded from the config
func NewSignalGenerator(config SignalConfig) *SignalGenerator {
	return &SignalGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GeneratePairs returns predictor and target series of Count elements
func (g *SignalGenerator) GeneratePairs() ([]float64, []float64) {
	x := make([]float64, g.config.Count)
	y := make([]float64, g.config.Count)
	for i := range x {
		x[i] = g.rng.NormFloat64()
		y[i] = g.config.Signal*x[i] + g.config.Noise*g.rng.NormFloat64()
	}
	return x, y
}

// GenerateShifted returns two samples from the same shape with the
// second shifted by offset, for KS separation tests.
func (g *SignalGenerator) GenerateShifted(n int, offset float64) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		v := g.rng.NormFloat64()
		x[i] = v
		y[i] = g.rng.NormFloat64() + offset
	}
	return x, y
}

// PerfectRanking returns pairs where the predictor ranks the target
// perfectly and every target is positive: descending predictor values
// paired with identically ordered targets.
func PerfectRanking(n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		v := float64(n - i)
		x[i] = v
		y[i] = v
	}
	return x, y
}

// Sorted returns an ascending copy, handy for ECDF assertions
func Sorted(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	sort.Float64s(out)
	return out
}
