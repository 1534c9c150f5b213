// Package viz renders trajectories as terminal graphs and provides a
// live view for watching a solve progress.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mrsolve/internal/multirate"
)

// Component extracts one state component's series from a trajectory.
func Component(result *multirate.Result, index int) ([]float64, error) {
	if len(result.States) == 0 {
		return nil, fmt.Errorf("viz: empty trajectory")
	}
	if index < 0 || index >= len(result.States[0]) {
		return nil, fmt.Errorf("viz: component %d out of range (state dim %d)", index, len(result.States[0]))
	}
	series := make([]float64, len(result.States))
	for i, s := range result.States {
		series[i] = s[index]
	}
	return series, nil
}

// Plot renders a single state component.
func Plot(result *multirate.Result, index, width, height int, caption string) (string, error) {
	series, err := Component(result, index)
	if err != nil {
		return "", err
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	), nil
}

// PlotPartitions renders the first slow and first fast component in one
// graph, the quickest picture of the time-scale separation.
func PlotPartitions(result *multirate.Result, slowDim, width, height int) (string, error) {
	slow, err := Component(result, 0)
	if err != nil {
		return "", err
	}
	fast, err := Component(result, slowDim)
	if err != nil {
		return "", err
	}
	return asciigraph.PlotMany([][]float64{slow, fast},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption("slow[0] (green) / fast[0] (red)"),
	), nil
}
