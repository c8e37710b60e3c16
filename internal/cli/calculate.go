package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/kendallbench/internal/config"
	"github.com/agbru/kendallbench/internal/kendall"
	"github.com/agbru/kendallbench/internal/ui"
)

// PrintExecutionConfig displays the benchmark parameters and the environment
// inside a bordered banner.
func PrintExecutionConfig(cfg config.AppConfig, seed uint64, out io.Writer) {
	var b strings.Builder
	fmt.Fprintf(&b, "Kendall tau of %s%d%s points, seed %s%d%s, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.Size, ui.ColorReset(),
		ui.ColorMagenta(), seed, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(&b, "Workers %s%d..%d%s, %s%d%s run(s) per configuration.\n",
		ui.ColorPrimary(), cfg.MinWorkers, cfg.MaxWorkers, ui.ColorReset(),
		ui.ColorPrimary(), cfg.Repeat, ui.ColorReset())
	fmt.Fprintf(&b, "Environment: %s%d%s logical processors, Go %s%s%s.",
		ui.ColorPrimary(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorPrimary(), runtime.Version(), ui.ColorReset())

	styles := ui.CurrentStyles()
	fmt.Fprintln(out, styles.Title.Render("--- Execution Configuration ---"))
	fmt.Fprintln(out, styles.Banner.Render(b.String()))
}

// PrintExecutionMode lists the configurations about to run.
func PrintExecutionMode(calculators []kendall.Calculator, out io.Writer) {
	names := make([]string, len(calculators))
	for i, c := range calculators {
		names[i] = c.Name()
	}
	fmt.Fprintf(out, "Execution mode: %s%d%s configurations run sequentially (%s).\n",
		ui.ColorGreen(), len(calculators), ui.ColorReset(), strings.Join(names, ", "))
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
