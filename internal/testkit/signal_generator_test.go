package testkit

import (
	"testing"
)

// TestSignalGenerator_Deterministic verifies the same seed reproduces
// the same series.
func TestSignalGenerator_Deterministic(t *testing.T) {
	config := DefaultSignalConfig()

	x1, y1 := NewSignalGenerator(config).GeneratePairs()
	x2, y2 := NewSignalGenerator(config).GeneratePairs()

	if len(x1) != config.Count || len(y1) != config.Count {
		t.Fatalf("Expected %d pairs, got %d/%d", config.Count, len(x1), len(y1))
	}
	for i := range x1 {
		if x1[i] != x2[i] || y1[i] != y2[i] {
			t.Fatalf("Seeded generator diverged at %d", i)
		}
	}
}

// TestSignalGenerator_Coupling verifies the target tracks the predictor
// in sign more often than not at strong coupling.
func TestSignalGenerator_Coupling(t *testing.T) {
	config := DefaultSignalConfig()
	config.Count = 1000
	x, y := NewSignalGenerator(config).GeneratePairs()

	agree := 0
	for i := range x {
		if (x[i] > 0) == (y[i] > 0) {
			agree++
		}
	}
	if agree < 700 {
		t.Errorf("Expected strong sign agreement at coupling %.1f, got %d/1000", config.Signal, agree)
	}
}

// TestPerfectRanking verifies the fixture shape the lift tests rely on
func TestPerfectRanking(t *testing.T) {
	x, y := PerfectRanking(10)

	for i := range x {
		if x[i] != y[i] {
			t.Fatalf("Predictor and target must match at %d", i)
		}
		if y[i] <= 0 {
			t.Fatalf("All targets must be positive, got %f at %d", y[i], i)
		}
		if i > 0 && x[i] >= x[i-1] {
			t.Fatalf("Predictor must be strictly descending at %d", i)
		}
	}
}

// TestSorted verifies the helper copies instead of mutating
func TestSorted(t *testing.T) {
	in := []float64{3, 1, 2}
	out := Sorted(in)

	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Errorf("Not sorted: %v", out)
	}
	if in[0] != 3 {
		t.Errorf("Input mutated: %v", in)
	}
}
