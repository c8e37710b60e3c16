// This file contains the override table shared by the environment and the
// configuration file.

package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/kendallbench/internal/errors"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// override declares one externally settable value. envKey is the environment
// variable name without the KENDALL_ prefix, fileKey the TOML key, and flags
// the command-line names that take precedence over both.
type override struct {
	envKey  string
	fileKey string
	flags   []string
	apply   func(*AppConfig, string) error
}

func intSetter(dst func(*AppConfig) *int) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		*dst(c) = parsed
		return nil
	}
}

func boolSetter(dst func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		parsed, ok := parseBool(v)
		if !ok {
			return fmt.Errorf("invalid boolean %q", v)
		}
		*dst(c) = parsed
		return nil
	}
}

func stringSetter(dst func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		*dst(c) = v
		return nil
	}
}

// overrides is the declarative table of every environment and file override.
var overrides = []override{
	// Numeric overrides
	{"SIZE", "size", []string{"size"}, intSetter(func(c *AppConfig) *int { return &c.Size })},
	{"SEED", "seed", []string{"seed"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q", v)
		}
		c.Seed = parsed
		return nil
	}},
	{"MIN_WORKERS", "min_workers", []string{"min-workers"}, intSetter(func(c *AppConfig) *int { return &c.MinWorkers })},
	{"MAX_WORKERS", "max_workers", []string{"max-workers"}, intSetter(func(c *AppConfig) *int { return &c.MaxWorkers })},
	{"REPEAT", "repeat", []string{"repeat"}, intSetter(func(c *AppConfig) *int { return &c.Repeat })},

	// Duration overrides
	{"TIMEOUT", "timeout", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid duration %q", v)
		}
		c.Timeout = parsed
		return nil
	}},

	// String overrides
	{"PLOT", "plot", []string{"plot"}, stringSetter(func(c *AppConfig) *string { return &c.PlotFile })},
	{"PLOT_METRIC", "plot_metric", []string{"plot-metric"}, stringSetter(func(c *AppConfig) *string { return &c.PlotMetric })},
	{"OUTPUT", "output", []string{"output", "o"}, stringSetter(func(c *AppConfig) *string { return &c.OutputFile })},
	{"METRICS_FILE", "metrics_file", []string{"metrics-file"}, stringSetter(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"LOG_LEVEL", "log_level", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
		return nil
	}},

	// Boolean overrides
	{"QUIET", "quiet", []string{"quiet", "q"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"DETAILS", "details", []string{"details", "d"}, boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"NO_COLOR", "no_color", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", "tui", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
}

func overrideForFileKey(key string) (override, bool) {
	for _, o := range overrides {
		if o.fileKey == key {
			return o, true
		}
	}
	return override{}, false
}

// parseBool accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive).
func parseBool(val string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with KENDALL_):
//   - SIZE, SEED, MIN_WORKERS, MAX_WORKERS, REPEAT, TIMEOUT, PLOT,
//     PLOT_METRIC, OUTPUT, METRICS_FILE, LOG_LEVEL, QUIET, DETAILS, NO_COLOR, TUI
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range overrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val, ok := os.LookupEnv(EnvPrefix + o.envKey); ok && val != "" {
			if err := o.apply(config, val); err != nil {
				return apperrors.NewConfigError("%s%s: %v", EnvPrefix, o.envKey, err)
			}
		}
	}
	return nil
}
