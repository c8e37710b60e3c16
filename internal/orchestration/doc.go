// Package orchestration drives a benchmark sweep: it runs the serial baseline
// and each parallel configuration one after another, aggregates the timings,
// and checks that every configuration agrees with the baseline. Presentation
// is decoupled through the ProgressReporter and ResultPresenter interfaces.
package orchestration
