// Package metrics holds the measurement side of the benchmark: the scoped
// timing wrapper used by the aggregators, runtime memory snapshots, and the
// Prometheus recorder that can persist a run to a textfile.
package metrics
