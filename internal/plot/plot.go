// Package plot renders the speedup chart of a benchmark sweep as a PNG.
package plot

import (
	"fmt"
	"os"
	"path/filepath"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/agbru/kendallbench/internal/config"
	"github.com/agbru/kendallbench/internal/orchestration"
)

const (
	Title  = "Kendall Correlation Speedup"
	XLabel = "Number of Processes"
	YLabel = "Speedup"

	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

// Points returns one point per configuration: the serial baseline at x=1,
// then each parallel sample at its worker count.
//
// With config.PlotMetricTime the y value is the mean elapsed time in seconds.
// With config.PlotMetricRatio it is the speedup over the serial mean, so the
// baseline sits at 1.
func Points(series orchestration.Series, metric string) (plotter.XYs, error) {
	pts := make(plotter.XYs, 0, len(series.Parallel)+1)
	switch metric {
	case config.PlotMetricTime:
		pts = append(pts, plotter.XY{X: 1, Y: series.Serial.Mean.Seconds()})
		for _, p := range series.Parallel {
			pts = append(pts, plotter.XY{X: float64(p.Workers), Y: p.Mean.Seconds()})
		}
	case config.PlotMetricRatio:
		pts = append(pts, plotter.XY{X: 1, Y: 1})
		for i, ratio := range series.Speedups() {
			pts = append(pts, plotter.XY{X: float64(series.Parallel[i].Workers), Y: ratio})
		}
	default:
		return nil, fmt.Errorf("unknown plot metric %q", metric)
	}
	return pts, nil
}

// RenderSpeedup draws the sweep as a line with point markers over a grid and
// saves it to path. The image format follows the file extension.
func RenderSpeedup(series orchestration.Series, metric, path string) error {
	pts, err := Points(series, metric)
	if err != nil {
		return err
	}

	p := gonumplot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("building speedup line: %w", err)
	}
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving plot to %s: %w", path, err)
	}
	return nil
}
