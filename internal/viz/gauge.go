package viz

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/harmonica"
)

// Gauge is a progress bar whose fill follows its target through a damped
// spring, so fast oscillations read as motion instead of flicker.
type Gauge struct {
	Label  string
	bar    progress.Model
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func NewGauge(label string, fps int, width int, from, to string) *Gauge {
	bar := progress.New(
		progress.WithScaledGradient(from, to),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	return &Gauge{
		Label:  label,
		bar:    bar,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.9),
	}
}

// Update moves the gauge one frame towards target, clamped to [0, 1].
func (g *Gauge) Update(target float64) float64 {
	target = max(0, min(1, target))
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
	return g.pos
}

// Set jumps straight to target.
func (g *Gauge) Set(target float64) {
	g.pos = max(0, min(1, target))
	g.vel = 0
}

func (g *Gauge) Value() float64 { return g.pos }

func (g *Gauge) View() string {
	return g.bar.ViewAs(max(0, min(1, g.pos)))
}

// Restyle swaps the bar gradient, keeping width and position.
func (g *Gauge) Restyle(from, to string) {
	width := g.bar.Width
	g.bar = progress.New(
		progress.WithScaledGradient(from, to),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
}
