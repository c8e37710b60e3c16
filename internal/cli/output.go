// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatProgressSuffix].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteSeriesToFile].

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/kendallbench/internal/format"
	"github.com/agbru/kendallbench/internal/orchestration"
	"github.com/agbru/kendallbench/internal/ui"
)

var csvHeader = []string{
	"configuration", "workers", "runs", "mean_seconds", "stddev_seconds",
	"speedup", "tau", "concordant", "discordant",
}

// WriteSeriesToFile writes the series as CSV preceded by '#' comment lines.
// Missing parent directories are created.
func WriteSeriesToFile(series orchestration.Series, path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeSeriesCSV(file, series, time.Now()); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}

func writeSeriesCSV(w io.Writer, series orchestration.Series, generated time.Time) error {
	fmt.Fprintf(w, "# Kendall Tau Benchmark\n")
	fmt.Fprintf(w, "# Generated: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintf(w, "# Size: %d\n", series.Size)
	fmt.Fprintf(w, "# Seed: %d\n", series.Seed)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	speedups := series.Speedups()
	for i, s := range series.Samples() {
		speedup := 1.0
		if i > 0 {
			speedup = speedups[i-1]
		}
		record := []string{
			s.Label,
			strconv.Itoa(s.Workers),
			strconv.Itoa(len(s.Durations)),
			format.FormatSeconds(s.Mean),
			format.FormatSeconds(s.StdDev),
			strconv.FormatFloat(speedup, 'f', 4, 64),
			strconv.FormatFloat(s.Result.Tau, 'g', -1, 64),
			strconv.FormatInt(s.Result.Concordant, 10),
			strconv.FormatInt(s.Result.Discordant, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatQuietResult formats the series as the classic timing list: a leading
// 0, the serial mean, then each parallel mean, all in seconds.
func FormatQuietResult(series orchestration.Series) string {
	parts := []string{"0"}
	for _, s := range series.Samples() {
		parts = append(parts, strconv.FormatFloat(s.Mean.Seconds(), 'f', -1, 64))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DisplayQuietResult outputs the timing list on a single line.
func DisplayQuietResult(out io.Writer, series orchestration.Series) {
	fmt.Fprintln(out, FormatQuietResult(series))
}

// DisplaySavedFile confirms that a report was written to path.
func DisplaySavedFile(out io.Writer, what, path string) {
	fmt.Fprintf(out, "%s✓ %s saved to: %s%s%s\n",
		ui.ColorGreen(), what, ui.ColorPrimary(), path, ui.ColorReset())
}

// QuietResultPresenter prints only the timing list for a consistent sweep.
type QuietResultPresenter struct{}

var _ orchestration.ResultPresenter = QuietResultPresenter{}

// PresentSeries prints the timing list on a single line.
func (QuietResultPresenter) PresentSeries(series orchestration.Series, _ orchestration.PresentationOptions, out io.Writer) {
	DisplayQuietResult(out, series)
}

// PresentMismatch reports the disagreement even in quiet mode.
func (QuietResultPresenter) PresentMismatch(series orchestration.Series, mismatched []orchestration.Sample, out io.Writer) {
	CLIResultPresenter{}.PresentMismatch(series, mismatched, out)
}
