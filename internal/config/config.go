// Package config parses and validates the benchmark configuration.
//
// Values are resolved in increasing priority: built-in defaults, an optional
// TOML file, KENDALL_* environment variables, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/kendallbench/internal/errors"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "KENDALL_"

// Defaults reproduce the classic run: 10,000 points, serial once, then the
// pool at 2 through 8 workers, plotted to speedup.png.
const (
	DefaultSize       = 10000
	DefaultMinWorkers = 2
	DefaultMaxWorkers = 8
	DefaultRepeat     = 1
	DefaultTimeout    = 10 * time.Minute
	DefaultPlotFile   = "speedup.png"
	DefaultPlotMetric = PlotMetricTime
	DefaultLogLevel   = "warn"
)

// Plot metrics accepted by --plot-metric.
const (
	PlotMetricTime  = "time"
	PlotMetricRatio = "ratio"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "off"}

// AppConfig holds the resolved configuration for one benchmark invocation.
type AppConfig struct {
	Size       int           `toml:"size"`
	Seed       uint64        `toml:"seed"`
	MinWorkers int           `toml:"min_workers"`
	MaxWorkers int           `toml:"max_workers"`
	Repeat     int           `toml:"repeat"`
	Timeout    time.Duration `toml:"timeout"`

	PlotFile    string `toml:"plot"`
	PlotMetric  string `toml:"plot_metric"`
	OutputFile  string `toml:"output"`
	MetricsFile string `toml:"metrics_file"`

	Quiet    bool   `toml:"quiet"`
	Details  bool   `toml:"details"`
	NoColor  bool   `toml:"no_color"`
	TUI      bool   `toml:"tui"`
	LogLevel string `toml:"log_level"`

	// ConfigFile is the TOML file the configuration was loaded from, if any.
	ConfigFile string `toml:"-"`
	// Completion names a shell whose completion script should be printed
	// instead of running the benchmark.
	Completion string `toml:"-"`
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Size:       DefaultSize,
		MinWorkers: DefaultMinWorkers,
		MaxWorkers: DefaultMaxWorkers,
		Repeat:     DefaultRepeat,
		Timeout:    DefaultTimeout,
		PlotFile:   DefaultPlotFile,
		PlotMetric: DefaultPlotMetric,
		LogLevel:   DefaultLogLevel,
	}
}

// WorkerCounts returns every pool size in [MinWorkers, MaxWorkers].
func (c AppConfig) WorkerCounts() []int {
	var counts []int
	for w := c.MinWorkers; w <= c.MaxWorkers; w++ {
		counts = append(counts, w)
	}
	return counts
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate() error {
	switch {
	case c.Size < 0:
		return apperrors.NewConfigError("size must be non-negative, got %d", c.Size)
	case c.MinWorkers < 1:
		return apperrors.NewConfigError("min-workers must be at least 1, got %d", c.MinWorkers)
	case c.MaxWorkers < c.MinWorkers:
		return apperrors.NewConfigError("max-workers (%d) must not be below min-workers (%d)", c.MaxWorkers, c.MinWorkers)
	case c.Repeat < 1:
		return apperrors.NewConfigError("repeat must be at least 1, got %d", c.Repeat)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	case c.PlotMetric != PlotMetricTime && c.PlotMetric != PlotMetricRatio:
		return apperrors.NewConfigError("plot-metric must be %q or %q, got %q", PlotMetricTime, PlotMetricRatio, c.PlotMetric)
	case c.TUI && c.Quiet:
		return apperrors.NewConfigError("tui and quiet cannot be combined")
	case !slices.Contains(validLogLevels, c.LogLevel):
		return apperrors.NewConfigError("log-level must be one of %v, got %q", validLogLevels, c.LogLevel)
	}
	return nil
}

// ParseConfig builds an AppConfig from command-line arguments, an optional
// TOML file and the environment. Usage and parse errors are written to
// errWriter. flag.ErrHelp is returned unchanged when -h or -help is given.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := Default()
	fs.IntVar(&config.Size, "size", config.Size, "Number of observations in each generated sample.")
	fs.Uint64Var(&config.Seed, "seed", config.Seed, "Random seed for data generation (0 derives one from the clock).")
	fs.IntVar(&config.MinWorkers, "min-workers", config.MinWorkers, "Smallest worker pool to benchmark.")
	fs.IntVar(&config.MaxWorkers, "max-workers", config.MaxWorkers, "Largest worker pool to benchmark (0 uses the CPU count, capped at 8).")
	fs.IntVar(&config.Repeat, "repeat", config.Repeat, "Number of timed runs per configuration.")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum time for the whole benchmark (e.g. 30s, 5m).")
	fs.StringVar(&config.PlotFile, "plot", config.PlotFile, "PNG file for the speedup chart (empty disables plotting).")
	fs.StringVar(&config.PlotMetric, "plot-metric", config.PlotMetric, "Y values to plot: 'time' (elapsed seconds) or 'ratio' (serial/parallel).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the results table as CSV to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Write the results table as CSV to this file (shorthand).")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the raw timing list.")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the raw timing list (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Show memory and system load for each run.")
	fs.BoolVar(&config.Details, "d", false, "Show memory and system load for each run (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also honors NO_COLOR).")
	fs.BoolVar(&config.TUI, "tui", false, "Follow the sweep in an interactive terminal dashboard.")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn, error or off.")
	fs.StringVar(&config.ConfigFile, "config", "", "Load settings from this TOML file.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish and exit.")
	versionFlag := false
	fs.BoolVar(&versionFlag, "version", false, "Print version information and exit.")
	fs.BoolVar(&versionFlag, "V", false, "Print version information and exit (shorthand).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}

	if config.ConfigFile == "" {
		config.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if config.ConfigFile != "" {
		if err := applyFileOverrides(&config, fs, config.ConfigFile); err != nil {
			fmt.Fprintln(errWriter, err)
			return AppConfig{}, err
		}
	}
	if err := applyEnvOverrides(&config, fs); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}

	config = ApplyWorkerDefaults(config)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// applyFileOverrides decodes a TOML file and applies its keys to every
// setting whose flag was not given on the command line.
func applyFileOverrides(config *AppConfig, fs *flag.FlagSet, path string) error {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		var pe toml.ParseError
		if errors.As(err, &pe) {
			return apperrors.NewConfigError("config file %s: %s", path, pe.ErrorWithPosition())
		}
		return apperrors.NewConfigError("config file %s: %v", path, err)
	}
	for key, value := range raw {
		o, ok := overrideForFileKey(key)
		if !ok {
			return apperrors.NewConfigError("config file %s: unknown key %q", path, key)
		}
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if err := o.apply(config, fmt.Sprint(value)); err != nil {
			return apperrors.NewConfigError("config file %s: %s: %v", path, key, err)
		}
	}
	return nil
}
