// Package dataset generates the paired samples fed to the benchmark.
package dataset

import "math/rand/v2"

// Upper is the exclusive upper bound of generated values.
const Upper = 100.0

// Generate returns two independent sequences of size values drawn uniformly
// from [0, Upper). The same seed always yields the same sequences.
func Generate(size int, seed uint64) (x, y []float64) {
	if size < 0 {
		size = 0
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	x = make([]float64, size)
	y = make([]float64, size)
	for i := range x {
		x[i] = rng.Float64() * Upper
	}
	for i := range y {
		y[i] = rng.Float64() * Upper
	}
	return x, y
}
