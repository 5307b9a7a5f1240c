package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lcsim/internal/series"
)

// PlotGraph renders the window of g ending at tEnd as an ASCII chart. The
// caption names the series and lists the quarter-period marks in view.
func PlotGraph(g Graph, tEnd float64, width, height int) string {
	samples := g.Sample(tEnd)

	data := make([][]float64, 0, len(samples))
	colors := make([]asciigraph.AnsiColor, 0, len(samples))
	labels := make([]string, 0, len(samples))
	for i, s := range samples {
		if len(s) < 2 {
			continue
		}
		data = append(data, series.Values(s))
		colors = append(colors, asciigraph.ColorNames[g.Series[i].Hint.Color])
		labels = append(labels, g.Series[i].Label)
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(g.Min),
		asciigraph.UpperBound(g.Max),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(Caption(strings.Join(labels, "  "), g.Ticks(tEnd))),
	)
}

// Caption joins a label with the axis marks. Marks use two decimals, or
// scientific notation for very small or large times.
func Caption(label string, ticks []float64) string {
	if len(ticks) == 0 {
		return label
	}
	marks := make([]string, len(ticks))
	for i, t := range ticks {
		marks[i] = formatTick(t)
	}
	return fmt.Sprintf("%s  | t, s: %s", label, strings.Join(marks, " "))
}

func formatTick(t float64) string {
	switch {
	case t == 0:
		return "0"
	case t >= 0.01 && t < 1e4:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprintf("%.2e", t)
	}
}
