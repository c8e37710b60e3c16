package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/agbru/kendallbench/internal/cli"
	"github.com/agbru/kendallbench/internal/dataset"
	apperrors "github.com/agbru/kendallbench/internal/errors"
	"github.com/agbru/kendallbench/internal/logging"
	"github.com/agbru/kendallbench/internal/metrics"
	"github.com/agbru/kendallbench/internal/orchestration"
	"github.com/agbru/kendallbench/internal/plot"
	"github.com/agbru/kendallbench/internal/tui"
)

// runBenchmark generates the dataset, sweeps every configuration and writes
// the requested reports.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	seed := a.resolveSeed()
	x, y := dataset.Generate(a.Config.Size, seed)

	calcs := a.calculators
	if len(calcs) == 0 {
		calcs = orchestration.GetCalculatorsToRun(a.Config)
	}

	var recorder *metrics.Recorder
	if a.Config.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}
	opts := orchestration.Options{
		Calculators:  calcs,
		Repeat:       a.Config.Repeat,
		Seed:         seed,
		SampleSystem: a.Config.Details,
		Recorder:     recorder,
		Tracer:       otel.Tracer(orchestration.TracerName),
		Logger:       a.Logger,
	}

	if a.Config.TUI {
		return a.runDashboard(ctx, x, y, opts, recorder, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	var presenter orchestration.ResultPresenter = cli.CLIResultPresenter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		presenter = cli.QuietResultPresenter{}
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, seed, out)
		cli.PrintExecutionMode(calcs, out)
	}

	start := time.Now()
	series, err := orchestration.RunBenchmark(ctx, x, y, opts, reporter, progressOut)
	if err != nil {
		a.Logger.Error("benchmark failed", err, logging.Duration("elapsed", time.Since(start)))
		return cli.CLIResultPresenter{}.HandleError(err, time.Since(start), out)
	}

	presentation := orchestration.PresentationOptions{Details: a.Config.Details, Quiet: a.Config.Quiet}
	if code := orchestration.AnalyzeSeries(series, presentation, presenter, out); code != apperrors.ExitSuccess {
		return code
	}

	if err := a.saveReports(series, recorder, out); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runDashboard follows the sweep in the terminal dashboard, then prints the
// summary table and writes the reports once the dashboard has closed.
func (a *Application) runDashboard(ctx context.Context, x, y []float64, opts orchestration.Options, recorder *metrics.Recorder, out io.Writer) int {
	series, complete, code := tui.Run(ctx, tui.Options{
		X:         x,
		Y:         y,
		Seed:      opts.Seed,
		Benchmark: opts,
		Version:   Version,
	})
	if !complete {
		return code
	}
	cli.CLIResultPresenter{}.PresentSeries(series, orchestration.PresentationOptions{Details: a.Config.Details}, out)
	if err := a.saveReports(series, recorder, out); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return code
}

// resolveSeed returns the configured seed, or one derived from the clock
// when the configuration leaves it at zero.
func (a *Application) resolveSeed() uint64 {
	if a.Config.Seed != 0 {
		return a.Config.Seed
	}
	seed := uint64(a.now().UnixNano())
	a.Logger.Info("derived dataset seed from clock", logging.Uint64("seed", seed))
	return seed
}

// saveReports writes the CSV results, the speedup plot and the metrics
// textfile, skipping each one whose path is empty.
func (a *Application) saveReports(series orchestration.Series, recorder *metrics.Recorder, out io.Writer) error {
	cfg := a.Config
	if cfg.OutputFile != "" {
		if err := cli.WriteSeriesToFile(series, cfg.OutputFile); err != nil {
			return err
		}
		a.confirm(out, "Results", cfg.OutputFile)
	}
	if cfg.PlotFile != "" {
		if err := plot.RenderSpeedup(series, cfg.PlotMetric, cfg.PlotFile); err != nil {
			return apperrors.WrapError(err, "rendering plot")
		}
		a.confirm(out, "Plot", cfg.PlotFile)
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			return apperrors.WrapError(err, "writing metrics")
		}
		a.confirm(out, "Metrics", cfg.MetricsFile)
	}
	return nil
}

func (a *Application) confirm(out io.Writer, what, path string) {
	a.Logger.Debug("report written", logging.String("kind", what), logging.String("path", path))
	if !a.Config.Quiet {
		cli.DisplaySavedFile(out, what, path)
	}
}
