package engines

import (
	"context"
	"math"
	"sort"
	"sync"

	"modeleval/domain/metrics"
	"modeleval/internal/errors"

	"golang.org/x/sync/semaphore"
)

// KSEngine computes the two-sided, two-sample Kolmogorov-Smirnov test.
type KSEngine struct {
	// Bounds the number of support points counted concurrently. The
	// per-point ECDF counts are independent, so the quadratic pass
	// parallelizes without changing any output value.
	sem         *semaphore.Weighted
	maxParallel int64
}

// NewKSEngine creates a KS engine with bounded internal parallelism
func NewKSEngine(maxParallel int64) *KSEngine {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &KSEngine{
		sem:         semaphore.NewWeighted(maxParallel),
		maxParallel: maxParallel,
	}
}

// Name returns the engine name
func (e *KSEngine) Name() string {
	return "kolmogorov_smirnov"
}

// Compare runs the KS test between samples x and y. It returns the
// large-sample statistic with its significance level, plus the ECDF
// table over the pooled support for plotting collaborators.
//
// The defining computation counts each sample against every pooled
// support point, O((m+n)^2) total. A sorted merge scan would produce
// identical F and G in O((m+n) log(m+n)); the quadratic form is kept
// because it states the ECDF definition directly and the target sample
// sizes are small, with the semaphore spreading the cost across CPUs.
func (e *KSEngine) Compare(ctx context.Context, x, y []float64) (*metrics.KSResult, *metrics.ECDFTable, error) {
	m := len(x)
	n := len(y)
	if m == 0 || n == 0 {
		return nil, nil, errors.InvalidInputf("ks requires two non-empty samples, got m=%d n=%d", m, n)
	}

	d := float64(gcd(m, n))

	// Pool and sort both samples ascending, duplicates retained.
	z := make([]float64, 0, m+n)
	z = append(z, x...)
	z = append(z, y...)
	sort.Float64s(z)

	f := make([]float64, len(z))
	g := make([]float64, len(z))

	var wg sync.WaitGroup
	for i := range z {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, nil, errors.Wrap(err, "ks computation cancelled")
		}
		wg.Add(1)
		go func(i int) {
			defer e.sem.Release(1)
			defer wg.Done()
			var cx, cy float64
			for j := 0; j < m; j++ {
				if x[j] <= z[i] {
					cx++
				}
			}
			for j := 0; j < n; j++ {
				if y[j] <= z[i] {
					cy++
				}
			}
			f[i] = cx / float64(m)
			g[i] = cy / float64(n)
		}(i)
	}
	wg.Wait()

	j := 0.0
	for i := range z {
		if diff := math.Abs(f[i] - g[i]); diff > j {
			j = diff
		}
	}

	// Rescale the max ECDF difference for unequal sample sizes, then
	// apply the large-sample approximation.
	j *= float64(m) * float64(n) / d
	jStar := j * d / math.Sqrt(float64(m)*float64(n)*float64(m+n))

	result, err := metrics.NewKSResult(jStar, KolmogorovSignificance(jStar), m, n)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ks result validation failed")
	}

	table := &metrics.ECDFTable{
		Support: z,
		F:       f,
		G:       g,
	}
	return result, table, nil
}
