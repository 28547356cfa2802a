package engines

import (
	"math"
)

// Truncation window for the Kolmogorov asymptotic series. The window is
// asymmetric: the lower bound is included, the upper bound excluded.
// Terms decay super-exponentially in i^2, so 40 terms reach double
// precision for the expected range.
const (
	signifSeriesLo = -20
	signifSeriesHi = 20
)

// KolmogorovSignificance returns the smallest significance level at which
// the null hypothesis (both samples drawn from the same distribution) can
// be rejected, given the scaled two-sample KS statistic x. It is a
// p-value: near 1 for small statistics, falling toward 0 as the samples
// separate. Non-positive x maps to 0.
//
// Uses the asymptotic limiting case Q(x) = sum (-1)^i * exp(-2 i^2 x^2);
// the returned value is 1 - Q(x). The truncated series overshoots 1 by
// a few thousandths for x below roughly 0.2, so the result is clamped
// to [0, 1].
func KolmogorovSignificance(x float64) float64 {
	if x <= 0.0 {
		return 0.0
	}
	q := 0.0
	for i := signifSeriesLo; i < signifSeriesHi; i++ {
		sign := 1.0
		if i%2 != 0 {
			sign = -1.0
		}
		q += sign * math.Exp(-2.0*float64(i*i)*x*x)
	}
	p := 1.0 - q
	if p < 0.0 {
		return 0.0
	}
	return math.Min(p, 1.0)
}

// gcd returns the greatest common divisor via the Euclidean algorithm.
// gcd(a, 0) = a.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
