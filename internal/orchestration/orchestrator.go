package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/stat"

	apperrors "github.com/agbru/kendallbench/internal/errors"
	"github.com/agbru/kendallbench/internal/kendall"
	"github.com/agbru/kendallbench/internal/logging"
	"github.com/agbru/kendallbench/internal/metrics"
	"github.com/agbru/kendallbench/internal/sysmon"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Each configuration sends at most this many updates per run.
const ProgressBufferMultiplier = 2

// TracerName identifies the spans emitted by RunBenchmark.
const TracerName = "github.com/agbru/kendallbench/internal/orchestration"

// ErrNoCalculators is returned when a sweep has nothing to run.
var ErrNoCalculators = errors.New("no calculators to run")

// Options configures one benchmark sweep.
type Options struct {
	// Calculators lists the configurations to run. The first one is the
	// serial baseline that speedups are computed against.
	Calculators []kendall.Calculator
	// Repeat is the number of timed runs per configuration (minimum 1).
	Repeat int
	// Seed is recorded in the resulting Series.
	Seed uint64
	// SampleSystem enables system CPU and memory sampling around each run.
	SampleSystem bool

	// Recorder, when set, receives one observation per run.
	Recorder *metrics.Recorder
	// Tracer overrides the global OpenTelemetry tracer.
	Tracer trace.Tracer
	// Logger receives debug output; nil disables logging.
	Logger logging.Logger
}

// Sample aggregates the runs of one configuration.
type Sample struct {
	// Label names the configuration, e.g. "serial" or "parallel(4)".
	Label string
	// Workers is the pool size, 1 for the serial loop.
	Workers int
	// Result is the outcome of the last run.
	Result kendall.Result
	// Durations holds the elapsed time of every run.
	Durations []time.Duration
	// Mean and StdDev summarize Durations. StdDev is 0 for a single run.
	Mean   time.Duration
	StdDev time.Duration
	// System is the load observed during the last run when sampling is on.
	System sysmon.Stats
	// Memory is the heap growth across all runs of the configuration.
	Memory metrics.MemorySnapshot
}

// Series is the outcome of a full sweep.
type Series struct {
	Size     int
	Seed     uint64
	Serial   Sample
	Parallel []Sample
}

// Samples returns the serial baseline followed by the parallel samples.
func (s Series) Samples() []Sample {
	return append([]Sample{s.Serial}, s.Parallel...)
}

// Speedups returns serial mean / parallel mean for each parallel sample.
// A parallel mean of zero yields 0.
func (s Series) Speedups() []float64 {
	ratios := make([]float64, len(s.Parallel))
	for i, p := range s.Parallel {
		if p.Mean > 0 {
			ratios[i] = float64(s.Serial.Mean) / float64(p.Mean)
		}
	}
	return ratios
}

// RunBenchmark runs every configuration in opts.Calculators strictly one
// after another on the same input.
//
// Cancellation of ctx is honored between runs; a run in progress always
// completes. The first failing run aborts the sweep and its error is returned
// wrapped in an apperrors.CalculationError.
func RunBenchmark(ctx context.Context, x, y []float64, opts Options, progressReporter ProgressReporter, out io.Writer) (Series, error) {
	calcs := opts.Calculators
	if len(calcs) == 0 {
		return Series{}, ErrNoCalculators
	}
	repeat := max(opts.Repeat, 1)
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	progressChan := make(chan ProgressUpdate, len(calcs)*repeat*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calcs), out)

	samples := make([]Sample, 0, len(calcs))
	var runErr error
	for i, calc := range calcs {
		mode := "parallel"
		if i == 0 {
			mode = "serial"
		}
		sample, err := runConfiguration(ctx, tracer, calc, mode, i, x, y, repeat, opts, progressChan)
		if err != nil {
			if !apperrors.IsContextError(err) {
				err = apperrors.CalculationError{Label: calc.Name(), Cause: err}
			}
			runErr = err
			break
		}
		samples = append(samples, sample)
		progressChan <- ProgressUpdate{Index: i, Label: calc.Name(), Run: repeat, Repeat: repeat, Done: true, Elapsed: sample.Mean}
		if opts.Logger != nil {
			opts.Logger.Debug("configuration complete",
				logging.String("label", sample.Label),
				logging.Duration("mean", sample.Mean),
				logging.Int64("concordant", sample.Result.Concordant),
				logging.Int64("discordant", sample.Result.Discordant))
		}
	}

	close(progressChan)
	displayWg.Wait()

	if runErr != nil {
		return Series{}, runErr
	}

	series := Series{
		Size:     len(x),
		Seed:     opts.Seed,
		Serial:   samples[0],
		Parallel: samples[1:],
	}
	if opts.Recorder != nil {
		opts.Recorder.SetTau(series.Serial.Result.Tau)
		for i, ratio := range series.Speedups() {
			opts.Recorder.SetSpeedup(series.Parallel[i].Workers, ratio)
		}
	}
	return series, nil
}

// runConfiguration times repeat runs of one calculator. ctx is checked before
// each run only.
func runConfiguration(ctx context.Context, tracer trace.Tracer, calc kendall.Calculator, mode string, index int, x, y []float64, repeat int, opts Options, progressChan chan<- ProgressUpdate) (Sample, error) {
	sample := Sample{
		Label:     calc.Name(),
		Workers:   calc.Workers(),
		Durations: make([]time.Duration, 0, repeat),
	}
	var memCollector metrics.MemoryCollector
	memBefore := memCollector.Snapshot()

	for run := 1; run <= repeat; run++ {
		if err := ctx.Err(); err != nil {
			return Sample{}, err
		}
		progressChan <- ProgressUpdate{Index: index, Label: calc.Name(), Run: run, Repeat: repeat}

		_, span := tracer.Start(ctx, "kendall.run", trace.WithAttributes(
			attribute.String("kendall.mode", mode),
			attribute.Int("kendall.workers", calc.Workers()),
			attribute.Int("kendall.size", len(x)),
			attribute.Int("kendall.run", run),
		))
		var res kendall.Result
		var err error
		compute := func() { res, err = calc.Compute(x, y) }
		if opts.SampleSystem {
			sample.System = sysmon.Around(compute)
		} else {
			compute()
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return Sample{}, err
		}
		span.SetAttributes(
			attribute.Int64("kendall.concordant", res.Concordant),
			attribute.Int64("kendall.discordant", res.Discordant),
			attribute.Float64("kendall.tau", res.Tau),
		)
		span.End()

		if opts.Recorder != nil {
			tasks := 0
			if mode == "parallel" {
				tasks = len(x)
			}
			opts.Recorder.ObserveRun(mode, calc.Workers(), res.Elapsed, tasks)
		}
		if run > 1 && (res.Concordant != sample.Result.Concordant || res.Discordant != sample.Result.Discordant) {
			return Sample{}, fmt.Errorf("run %d produced %d/%d pairs, run %d produced %d/%d",
				run, res.Concordant, res.Discordant, run-1, sample.Result.Concordant, sample.Result.Discordant)
		}
		sample.Result = res
		sample.Durations = append(sample.Durations, res.Elapsed)
	}

	sample.Memory = memBefore.Delta(memCollector.Snapshot())
	sample.Mean, sample.StdDev = summarize(sample.Durations)
	return sample, nil
}

// summarize returns the mean and sample standard deviation of durations.
func summarize(durations []time.Duration) (mean, stdDev time.Duration) {
	if len(durations) == 0 {
		return 0, 0
	}
	secs := make([]float64, len(durations))
	for i, d := range durations {
		secs[i] = d.Seconds()
	}
	if len(secs) == 1 {
		return durations[0], 0
	}
	m, sd := stat.MeanStdDev(secs, nil)
	return secondsToDuration(m), secondsToDuration(sd)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// AnalyzeSeries checks that every parallel configuration produced the same
// pair counts as the serial baseline, then presents the summary.
//
// Returns apperrors.ExitErrorMismatch when any configuration disagrees and
// apperrors.ExitSuccess otherwise.
func AnalyzeSeries(series Series, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	var mismatched []Sample
	for _, p := range series.Parallel {
		if p.Result.Concordant != series.Serial.Result.Concordant ||
			p.Result.Discordant != series.Serial.Result.Discordant {
			mismatched = append(mismatched, p)
		}
	}
	if len(mismatched) > 0 {
		presenter.PresentMismatch(series, mismatched, out)
		return apperrors.ExitErrorMismatch
	}
	presenter.PresentSeries(series, opts, out)
	return apperrors.ExitSuccess
}
