package engines

import (
	"math"
	"testing"
)

// TestKolmogorovSignificance_NonPositive verifies the zero branch
func TestKolmogorovSignificance_NonPositive(t *testing.T) {
	for _, x := range []float64{0.0, -0.5, -100.0} {
		if got := KolmogorovSignificance(x); got != 0.0 {
			t.Errorf("KolmogorovSignificance(%f) = %f, want 0.0", x, got)
		}
	}
}

// TestKolmogorovSignificance_Range verifies the clamped output stays in
// [0, 1], including the small-x region where the truncated series
// overshoots 1 before clamping.
func TestKolmogorovSignificance_Range(t *testing.T) {
	for x := 0.01; x < 6.0; x += 0.01 {
		got := KolmogorovSignificance(x)
		if got < 0.0 || got > 1.0 {
			t.Fatalf("KolmogorovSignificance(%f) = %f, out of [0, 1]", x, got)
		}
	}
}

// TestKolmogorovSignificance_Monotone verifies the p-value never rises
// as the statistic grows
func TestKolmogorovSignificance_Monotone(t *testing.T) {
	prev := 1.0
	for x := 0.3; x < 4.0; x += 0.05 {
		got := KolmogorovSignificance(x)
		if got > prev {
			t.Fatalf("p-value increased: f(%f) = %f > %f", x, got, prev)
		}
		prev = got
	}
}

// TestKolmogorovSignificance_Tails verifies known tail behavior: a large
// statistic yields a vanishing p-value, a tiny one a p-value near 1.
func TestKolmogorovSignificance_Tails(t *testing.T) {
	if got := KolmogorovSignificance(3.0); got > 1e-6 {
		t.Errorf("KolmogorovSignificance(3.0) = %g, want near 0", got)
	}
	if got := KolmogorovSignificance(0.1); got < 0.999 {
		t.Errorf("KolmogorovSignificance(0.1) = %f, want near 1", got)
	}

	// Spot value: Q(1.0) = 0.2700 to four decimals.
	if got := KolmogorovSignificance(1.0); math.Abs(got-0.27) > 0.001 {
		t.Errorf("KolmogorovSignificance(1.0) = %f, want 0.270", got)
	}
}

// TestGCD verifies the Euclidean reduction
func TestGCD(t *testing.T) {
	cases := []struct {
		a, b, want int
	}{
		{12, 18, 6},
		{18, 12, 6},
		{7, 13, 1},
		{100, 100, 100},
		{5, 0, 5},
		{1, 999, 1},
	}
	for _, tc := range cases {
		if got := gcd(tc.a, tc.b); got != tc.want {
			t.Errorf("gcd(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
