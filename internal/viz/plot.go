// Package viz renders trajectories in the terminal.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// PlotComponent renders one state component against output index.
func PlotComponent(states [][]float64, component, width, height int) (string, error) {
	if len(states) == 0 {
		return "", fmt.Errorf("viz: empty trajectory")
	}
	if component < 0 || component >= len(states[0]) {
		return "", fmt.Errorf("viz: component %d out of range [0,%d)", component, len(states[0]))
	}
	series := make([]float64, len(states))
	for i, s := range states {
		series[i] = s[component]
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("x%d", component)),
	), nil
}

// PlotAll renders every state component in one chart. Useful for low
// dimensional systems; grid models are better viewed per component.
func PlotAll(states [][]float64, width, height int) (string, error) {
	if len(states) == 0 {
		return "", fmt.Errorf("viz: empty trajectory")
	}
	dim := len(states[0])
	series := make([][]float64, dim)
	for j := 0; j < dim; j++ {
		series[j] = make([]float64, len(states))
		for i, s := range states {
			series[j][i] = s[j]
		}
	}
	return asciigraph.PlotMany(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
	), nil
}
