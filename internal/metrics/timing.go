package metrics

import "time"

// Measure invokes fn and returns its result together with the wall-clock
// time the call took. The duration is reported even when fn fails.
func Measure[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}
