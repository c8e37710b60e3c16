package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/agbru/kendallbench/internal/errors"
	"github.com/agbru/kendallbench/internal/format"
	"github.com/agbru/kendallbench/internal/metrics"
	"github.com/agbru/kendallbench/internal/orchestration"
	"github.com/agbru/kendallbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the running sweep.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numSteps int, out io.Writer) {
	DisplayProgress(wg, progressChan, numSteps, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// CLIColorProvider supplies the active theme's colors to apperrors.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

var tableHeaders = []string{"Configuration", "Mean", "StdDev", "Speedup", "Tau", "Concordant", "Discordant"}

// seriesRows renders the table cells of every sample, serial first.
func seriesRows(series orchestration.Series) [][]string {
	speedups := series.Speedups()
	rows := make([][]string, 0, len(series.Parallel)+1)
	for i, s := range series.Samples() {
		speedup := "1.00x"
		if i > 0 {
			speedup = format.FormatSpeedup(speedups[i-1])
		}
		rows = append(rows, []string{
			s.Label,
			format.FormatExecutionDuration(s.Mean),
			format.FormatExecutionDuration(s.StdDev),
			speedup,
			formatTau(s.Result.Tau),
			strconv.FormatInt(s.Result.Concordant, 10),
			strconv.FormatInt(s.Result.Discordant, 10),
		})
	}
	return rows
}

func formatTau(tau float64) string {
	if math.IsNaN(tau) {
		return "NaN"
	}
	return strconv.FormatFloat(tau, 'f', 6, 64)
}

// PresentSeries displays the summary table with one row per configuration.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentSeries(series orchestration.Series, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.CurrentStyles().Title.Render("--- Benchmark Summary ---"))

	rows := seriesRows(series)
	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	for i, h := range tableHeaders {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorBold(), h, ui.ColorReset(), padRight("", widths[i]-len(h)))
	}
	fmt.Fprintln(out)

	speedups := series.Speedups()
	for r, row := range rows {
		for i, cell := range row {
			color := ""
			switch i {
			case 0:
				color = ui.ColorPrimary()
			case 1:
				color = ui.ColorYellow()
			case 3:
				color = speedupColor(r, speedups)
			case 4:
				color = ui.ColorMagenta()
			}
			fmt.Fprintf(out, "%s%s   ", ui.Colorize(color, cell), padRight("", widths[i]-displayWidth(cell)))
		}
		fmt.Fprintln(out)
	}

	if opts.Details {
		displayDetails(series, out)
	}

	summary := fmt.Sprintf("Global Status: %sSuccess%s. All %d configurations agree (n=%d, seed=%d).",
		ui.ColorGreen(), ui.ColorReset(), len(rows), series.Size, series.Seed)
	fmt.Fprintf(out, "\n%s\n", ui.CurrentStyles().Summary.Render(summary))
}

// speedupColor is green above 1x, yellow at or below, and plain for the
// serial row.
func speedupColor(row int, speedups []float64) string {
	if row == 0 {
		return ""
	}
	if speedups[row-1] > 1 {
		return ui.ColorGreen()
	}
	return ui.ColorYellow()
}

// PresentMismatch reports the configurations whose pair counts differ from
// the serial baseline.
func (CLIResultPresenter) PresentMismatch(series orchestration.Series, mismatched []orchestration.Sample, out io.Writer) {
	base := series.Serial.Result
	fmt.Fprintf(out, "\n%sGlobal Status: CRITICAL ERROR!%s Results differ from the serial baseline (%d concordant, %d discordant):\n",
		ui.ColorRed(), ui.ColorReset(), base.Concordant, base.Discordant)
	for _, s := range mismatched {
		fmt.Fprintf(out, "  %s: %d concordant, %d discordant\n", s.Label, s.Result.Concordant, s.Result.Discordant)
	}
}

// HandleError handles benchmark errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// displayDetails prints the per-configuration system load and memory usage.
func displayDetails(series orchestration.Series, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.CurrentStyles().Title.Render("--- Run Details ---"))
	for _, s := range series.Samples() {
		fmt.Fprintf(out, "%s%s%s: %d run(s), ties %d, system %s\n",
			ui.ColorPrimary(), s.Label, ui.ColorReset(), len(s.Durations), s.Result.Ties(), s.System)
		DisplayMemoryStats(s.Memory, out)
	}
}

// DisplayMemoryStats shows heap usage and GC activity for one configuration.
func DisplayMemoryStats(m metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(m.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(m.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", m.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(m.PauseTotalNs)/1e6)
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// displayWidth counts runes, which matches terminal columns for the cells
// produced here (digits, ASCII and µ).
func displayWidth(s string) int {
	return len([]rune(s))
}
