package config

import "runtime"

// classicMaxWorkers is the historical upper bound of the sweep.
const classicMaxWorkers = 8

// ApplyWorkerDefaults resolves a MaxWorkers of zero to the number of CPUs,
// capped at 8 and never below MinWorkers. Explicit values are preserved.
func ApplyWorkerDefaults(cfg AppConfig) AppConfig {
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = max(EstimateMaxWorkers(), cfg.MinWorkers)
	}
	return cfg
}

// EstimateMaxWorkers returns the largest pool size worth benchmarking on this
// machine without running anything.
func EstimateMaxWorkers() int {
	return min(runtime.NumCPU(), classicMaxWorkers)
}
