package kendall

import "fmt"

// Calculator is one benchmark configuration: a way of computing tau.
type Calculator interface {
	// Name is a short label such as "serial" or "parallel(4)".
	Name() string
	// Workers is the pool size, or 1 for the serial loop.
	Workers() int
	// Compute runs the aggregator once.
	Compute(x, y []float64) (Result, error)
}

// SerialCalculator runs Serial.
type SerialCalculator struct{}

// Name returns "serial".
func (SerialCalculator) Name() string { return "serial" }

// Workers returns 1.
func (SerialCalculator) Workers() int { return 1 }

// Compute runs the nested pair loop on the calling goroutine.
func (SerialCalculator) Compute(x, y []float64) (Result, error) { return Serial(x, y) }

// ParallelCalculator runs Parallel with a fixed worker count.
type ParallelCalculator struct {
	workers int
}

// NewParallelCalculator returns a calculator that uses the given pool size.
func NewParallelCalculator(workers int) ParallelCalculator {
	return ParallelCalculator{workers: workers}
}

// Name returns "parallel(N)" for a pool of N workers.
func (p ParallelCalculator) Name() string { return fmt.Sprintf("parallel(%d)", p.workers) }

// Workers returns the pool size.
func (p ParallelCalculator) Workers() int { return p.workers }

// Compute distributes the per-index counts over the worker pool.
func (p ParallelCalculator) Compute(x, y []float64) (Result, error) {
	return Parallel(x, y, p.workers)
}

// Calculators returns the serial baseline followed by one parallel
// configuration per worker count in [minWorkers, maxWorkers].
func Calculators(minWorkers, maxWorkers int) []Calculator {
	calcs := []Calculator{SerialCalculator{}}
	for w := minWorkers; w <= maxWorkers; w++ {
		calcs = append(calcs, NewParallelCalculator(w))
	}
	return calcs
}
