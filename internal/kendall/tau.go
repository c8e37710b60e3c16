package kendall

import (
	"fmt"
	"time"

	"github.com/agbru/kendallbench/internal/metrics"
	"github.com/agbru/kendallbench/internal/parallel"
)

// Result is the outcome of one aggregator call.
type Result struct {
	Tau        float64
	Concordant int64
	Discordant int64
	// N is the number of observations.
	N int
	// Elapsed covers the mode-specific computation, excluding input
	// generation.
	Elapsed time.Duration
}

// Pairs returns n(n-1)/2, the number of unordered pairs.
func (r Result) Pairs() int64 { return totalPairs(r.N) }

// Ties returns the number of pairs counted as neither concordant nor
// discordant.
func (r Result) Ties() int64 { return r.Pairs() - r.Concordant - r.Discordant }

func totalPairs(n int) int64 { return int64(n) * int64(n-1) / 2 }

// Tau returns (concordant - discordant) / (n(n-1)/2).
//
// The normalizer ignores ties. For n <= 1 the division is 0/0 and the result
// is NaN.
func Tau(concordant, discordant int64, n int) float64 {
	return float64(concordant-discordant) / (float64(n) * float64(n-1) / 2)
}

// Serial computes tau with a single nested loop over all pairs i < j.
func Serial(x, y []float64) (Result, error) {
	res, elapsed, err := metrics.Measure(func() (Result, error) {
		if err := checkLengths(x, y); err != nil {
			return Result{}, err
		}
		n := len(x)
		var c, d int64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				p := (x[i] - x[j]) * (y[i] - y[j])
				if p > 0 {
					c++
				} else if p < 0 {
					d++
				}
			}
		}
		return Result{Tau: Tau(c, d, n), Concordant: c, Discordant: d, N: n}, nil
	})
	if err != nil {
		return Result{}, err
	}
	res.Elapsed = elapsed
	return res, nil
}

// Parallel computes tau by dispatching one CountPairs task per index to a
// pool of exactly workers goroutines created for this call. It blocks until
// every task has completed, then sums the partial counts.
func Parallel(x, y []float64, workers int) (Result, error) {
	res, elapsed, err := metrics.Measure(func() (Result, error) {
		if err := checkLengths(x, y); err != nil {
			return Result{}, err
		}
		if workers < 1 {
			return Result{}, &InvalidInputError{
				LenX:    len(x),
				LenY:    len(y),
				Workers: workers,
				Reason:  fmt.Sprintf("worker count must be at least 1 (got %d)", workers),
			}
		}
		n := len(x)
		partials, err := parallel.Map(workers, n, func(i int) PartialCount {
			return CountPairs(i, x, y)
		})
		if err != nil {
			return Result{}, fmt.Errorf("parallel kendall with %d workers: %w", workers, err)
		}
		var total PartialCount
		for _, pc := range partials {
			total = total.Add(pc)
		}
		return Result{
			Tau:        Tau(total.Concordant, total.Discordant, n),
			Concordant: total.Concordant,
			Discordant: total.Discordant,
			N:          n,
		}, nil
	})
	if err != nil {
		return Result{}, err
	}
	res.Elapsed = elapsed
	return res, nil
}
