package export

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/lcsim/internal/viz"
)

var seriesColors = map[string]color.RGBA{
	"aqua":    {R: 0, G: 200, B: 200, A: 255},
	"magenta": {R: 220, G: 0, B: 220, A: 255},
	"red":     {R: 220, G: 0, B: 0, A: 255},
	"green":   {R: 0, G: 150, B: 0, A: 255},
	"blue":    {R: 0, G: 0, B: 220, A: 255},
}

func colorOf(name string) color.RGBA {
	if c, ok := seriesColors[name]; ok {
		return c
	}
	return color.RGBA{A: 255}
}

// NewGraphPlot builds a gonum plot of the window of g ending at tEnd, with
// quarter-period marks on the time axis.
func NewGraphPlot(g viz.Graph, tEnd float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = g.Title
	p.X.Label.Text = "t, s"
	p.Y.Min = g.Min
	p.Y.Max = g.Max
	p.Add(plotter.NewGrid())

	for i, samples := range g.Sample(tEnd) {
		if len(samples) < 2 {
			continue
		}
		xys := make(plotter.XYs, len(samples))
		for j, s := range samples {
			xys[j].X = s.T
			xys[j].Y = s.V
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", g.Series[i].Label, err)
		}
		line.LineStyle.Color = colorOf(g.Series[i].Hint.Color)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(g.Series[i].Label, line)
	}

	ticks := g.Ticks(tEnd)
	if len(ticks) > 0 {
		marks := make([]plot.Tick, len(ticks))
		for i, t := range ticks {
			marks[i] = plot.Tick{Value: t, Label: fmt.Sprintf("%.3g", t)}
		}
		p.X.Tick.Marker = plot.ConstantTicks(marks)
	}
	return p, nil
}

// WriteGraph renders g in the given format ("png", "svg", "pdf", ...).
func WriteGraph(w io.Writer, g viz.Graph, tEnd float64, format string, width, height vg.Length) error {
	p, err := NewGraphPlot(g, tEnd)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("export: %s plot: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveGraph writes g to path; the format follows the file extension.
func SaveGraph(path string, g viz.Graph, tEnd float64, width, height vg.Length) error {
	p, err := NewGraphPlot(g, tEnd)
	if err != nil {
		return err
	}
	return p.Save(width, height, path)
}
