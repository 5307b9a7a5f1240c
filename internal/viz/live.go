package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/sim"
)

const (
	canvasWidth  = 48
	canvasHeight = 24
	renderFPS    = 30
	gaugeWidth   = 30
	plotWidth    = 50
	plotHeight   = 6
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	graphStyle  = lipgloss.NewStyle().Padding(0, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Options configure the live view.
type Options struct {
	Density int
	Periods float64
	Theme   string
}

// Model is the bubbletea program of the live view. The simulation runs in
// the Controller's goroutine; the model only reads snapshots at its own
// render rate and toggles or resets the controller on key presses.
type Model struct {
	ctx      context.Context
	ctrl     *sim.Controller
	circuit  *circuit.Circuit
	graphs   []Graph
	canvas   *Canvas
	markers  *Canvas
	viewport Viewport
	theme    int
	frame    dynamo.Frame
	gaugeL   *Gauge
	gaugeC   *Gauge
	graphSel int
	showHelp bool
	err      error
}

// NewModel builds the live view over a controller driving c. The
// controller is started by Init and stopped on quit.
func NewModel(ctx context.Context, ctrl *sim.Controller, c *circuit.Circuit, opts Options) (*Model, error) {
	graphs, err := CircuitGraphs(c, opts.Density, opts.Periods)
	if err != nil {
		return nil, err
	}

	theme := themeIndex(opts.Theme)
	t := Themes[theme]
	shape := CircuitShape(c)
	canvas := NewCanvas(canvasWidth, canvasHeight)
	pxW, pxH := canvas.PixelSize()
	lo, hi := shape.Bounds()
	vp := Fit(lo, hi, pxW, pxH, 2)
	canvas.Draw(vp, shape)

	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		circuit:  c,
		graphs:   graphs,
		canvas:   canvas,
		markers:  NewCanvas(canvasWidth, canvasHeight),
		viewport: vp,
		theme:    theme,
		frame:    ctrl.Snapshot(),
		gaugeL:   NewGauge("Inductor Wl", renderFPS, gaugeWidth, t.GaugeFrom, t.GaugeTo),
		gaugeC:   NewGauge("Capacitor Wc", renderFPS, gaugeWidth, t.GaugeFrom, t.GaugeTo),
		graphSel: -1,
	}
	m.gaugeL.Set(m.frame.InductorEnergy / c.TotalEnergy())
	m.gaugeC.Set(m.frame.CapacitorEnergy / c.TotalEnergy())
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/renderFPS, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	if err := m.ctrl.Start(m.ctx); err != nil {
		m.err = err
	}
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctrl.Stop()
			return m, tea.Quit
		case " ":
			if _, err := m.ctrl.Toggle(m.ctx); err != nil {
				m.err = err
			}
		case "r":
			m.ctrl.Reset()
			m.refresh(true)
		case "s":
			if !m.ctrl.Running() {
				m.ctrl.Advance()
				m.refresh(true)
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			t := Themes[m.theme]
			m.gaugeL.Restyle(t.GaugeFrom, t.GaugeTo)
			m.gaugeC.Restyle(t.GaugeFrom, t.GaugeTo)
		case "g", "tab":
			m.graphSel++
			if m.graphSel >= len(m.graphs) {
				m.graphSel = -1
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.refresh(false)
		return m, tick()
	}
	return m, nil
}

// refresh pulls a snapshot from the controller and moves the gauges.
func (m *Model) refresh(jump bool) {
	m.frame = m.ctrl.Snapshot()
	e := m.circuit.TotalEnergy()
	if jump {
		m.gaugeL.Set(m.frame.InductorEnergy / e)
		m.gaugeC.Set(m.frame.CapacitorEnergy / e)
		return
	}
	m.gaugeL.Update(m.frame.InductorEnergy / e)
	m.gaugeC.Update(m.frame.CapacitorEnergy / e)
}

// Frame is the snapshot currently on screen.
func (m *Model) Frame() dynamo.Frame { return m.frame }

// Theme is the active colour scheme.
func (m *Model) Theme() Theme { return Themes[m.theme] }

func (m *Model) drawCircuit() string {
	t := Themes[m.theme]
	m.markers.Clear()
	for _, p := range m.frame.Markers {
		m.markers.Dot(m.viewport, p)
	}
	return Layered(m.canvas, m.markers,
		lipgloss.NewStyle().Foreground(t.Wire),
		lipgloss.NewStyle().Foreground(t.Marker),
	)
}

// Layered renders two equally sized canvases as one. Cells where top has
// dots take topStyle and show the union of both layers.
func Layered(base, top *Canvas, baseStyle, topStyle lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < base.Height; row++ {
		var run []rune
		runTop := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runTop {
				b.WriteString(topStyle.Render(string(run)))
			} else {
				b.WriteString(baseStyle.Render(string(run)))
			}
			run = run[:0]
		}
		for col := 0; col < base.Width; col++ {
			cell := base.Grid[row][col]
			isTop := row < top.Height && col < top.Width && top.Grid[row][col] != 0x2800
			if isTop {
				cell |= top.Grid[row][col]
			}
			if isTop != runTop {
				flush()
				runTop = isTop
			}
			run = append(run, cell)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) View() string {
	t := Themes[m.theme]
	c := m.circuit
	f := m.frame

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("LC OSCILLATOR") + "\n")
	if m.ctrl.Running() {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("STOPPED") + "\n\n")
	}

	s.WriteString(Row("Time", fmt.Sprintf("%.3f s", f.Time)) + "\n")
	s.WriteString(Row("Voltage", fmt.Sprintf("%+.4g V", f.Voltage)) + "\n")
	s.WriteString(Row("Current", fmt.Sprintf("%+.4g A", f.Current)) + "\n")
	s.WriteString(Row("Charge", fmt.Sprintf("%+.4g C", f.Charge)) + "\n\n")

	s.WriteString(Row("Omega", fmt.Sprintf("%.4g rad/s", c.AngularFrequency())) + "\n")
	s.WriteString(Row("Period", fmt.Sprintf("%.4g s", c.Period())) + "\n")
	s.WriteString(Row("Max charge", fmt.Sprintf("%.4g C", c.PeakCharge())) + "\n")
	s.WriteString(Row("Energy", fmt.Sprintf("%.4g J", c.TotalEnergy())) + "\n\n")

	s.WriteString(MetricLabel.Render(m.gaugeL.Label) + m.gaugeL.View() + "\n")
	s.WriteString(MetricLabel.Render(m.gaugeC.Label) + m.gaugeC.View() + "\n")

	s.WriteString(helpStyle.Render("SP:Start/Stop R:Reset S:Step\nT:Theme G:Graphs ?:Help Q:Quit"))
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.drawCircuit()),
		statsStyle.BorderForeground(t.Muted).Render(s.String()),
	)

	var plots []string
	for i, g := range m.graphs {
		if m.graphSel >= 0 && i != m.graphSel {
			continue
		}
		plots = append(plots, graphStyle.Render(PlotGraph(g, f.Time, plotWidth, plotHeight)))
	}

	view := lipgloss.JoinVertical(lipgloss.Left, top, strings.Join(plots, "\n"))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  Space  start / stop the circuit clock
  R      reset time and charges
  S      single step while stopped
  T      cycle colour themes
  G/Tab  show one graph at a time, or all
  ?      toggle this help
  Q      quit
`

// Run starts the live view on the terminal's alternate screen.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
