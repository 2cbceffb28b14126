// Package export renders solutions, convergence reports and sweeps as
// image files (SVG, PNG or PDF, chosen by the file extension).
package export

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/san-kum/vibfd/internal/automation"
	"github.com/san-kum/vibfd/internal/experiment"
	"github.com/san-kum/vibfd/internal/vib"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var formats = map[string]bool{".svg": true, ".png": true, ".pdf": true}

func checkPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !formats[ext] {
		return fmt.Errorf("export: unsupported format %q (want .svg, .png or .pdf): %w", ext, vib.ErrInvalidArgument)
	}
	return nil
}

// SolutionChart plots the computed and exact sequences against time.
func SolutionChart(path string, sol *experiment.Solution) error {
	if err := checkPath(path); err != nil {
		return err
	}
	n := len(sol.U)
	if n == 0 || len(sol.Times) != n || len(sol.Exact) != n {
		return fmt.Errorf("export: solution has %d times, %d values, %d exact: %w",
			len(sol.Times), n, len(sol.Exact), vib.ErrDimensionMismatch)
	}

	computed := make(plotter.XYs, n)
	exact := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		computed[i].X, computed[i].Y = sol.Times[i], sol.U[i]
		exact[i].X, exact[i].Y = sol.Times[i], sol.Exact[i]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, %d steps, L2 error %.3e", sol.Scheme, n-1, sol.L2Error)
	p.X.Label.Text = "t"
	p.Y.Label.Text = "u"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLines(p, sol.Scheme, computed, "exact", exact); err != nil {
		return err
	}
	return p.Save(chartWidth, chartHeight, path)
}

// ConvergenceChart plots error against step size on log-log axes, with a
// reference line of the declared order through the coarsest point.
func ConvergenceChart(path string, r *vib.Report) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if len(r.StepSizes) != len(r.Errors) {
		return fmt.Errorf("export: %d step sizes for %d errors: %w", len(r.StepSizes), len(r.Errors), vib.ErrDimensionMismatch)
	}

	measured := positive(r.StepSizes, r.Errors)
	if len(measured) < 2 {
		return fmt.Errorf("export: need two positive errors for a log-log chart, got %d: %w", len(measured), vib.ErrInvalidArgument)
	}

	ref := make(plotter.XYs, len(measured))
	order := float64(r.DeclaredOrder)
	for i, pt := range measured {
		ref[i].X = pt.X
		ref[i].Y = measured[0].Y * math.Pow(pt.X/measured[0].X, order)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("convergence of %s", r.Scheme)
	p.X.Label.Text = "dt"
	p.Y.Label.Text = "L2 error"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, "measured", measured, fmt.Sprintf("order %d", r.DeclaredOrder), ref); err != nil {
		return err
	}
	return p.Save(chartWidth, chartHeight, path)
}

// SweepChart plots the finest-mesh error against frequency on a log scale.
// Points that failed or have zero error are left out; log axes need at
// least two of the rest.
func SweepChart(path, scheme string, results []automation.SweepResult) error {
	if err := checkPath(path); err != nil {
		return err
	}

	pts := make(plotter.XYs, 0, len(results))
	for _, res := range results {
		if res.Err != nil || !(res.FinalError > 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: res.Frequency, Y: res.FinalError})
	}
	if len(pts) < 2 {
		return fmt.Errorf("export: sweep has %d plottable points, need two: %w", len(pts), vib.ErrInvalidArgument)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: finest-mesh error by frequency", scheme)
	p.X.Label.Text = "w"
	p.Y.Label.Text = "L2 error"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, scheme, pts); err != nil {
		return err
	}
	return p.Save(chartWidth, chartHeight, path)
}

func positive(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if xs[i] > 0 && ys[i] > 0 {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	return pts
}
