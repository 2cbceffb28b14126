package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// PlotSolution draws the computed and exact sequences on one chart.
func PlotSolution(scheme string, u, exact []float64) string {
	if len(u) == 0 {
		return ""
	}
	caption := fmt.Sprintf("%s: u (red) vs exact (blue), %d points", scheme, len(u))
	return asciigraph.PlotMany([][]float64{u, exact},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(caption),
	)
}

// PlotSeries draws a single sequence.
func PlotSeries(caption string, data []float64) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotConvergence draws log10(error) per refinement level. Non-positive
// errors are skipped.
func PlotConvergence(scheme string, errs []float64) string {
	logs := make([]float64, 0, len(errs))
	for _, e := range errs {
		if e > 0 {
			logs = append(logs, math.Log10(e))
		}
	}
	if len(logs) < 2 {
		return ""
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(plotHeight/2),
		asciigraph.Width(plotWidth/2),
		asciigraph.Caption(fmt.Sprintf("%s: log10(error) per refinement", scheme)),
	)
}
