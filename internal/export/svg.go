package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/lcsim/internal/analysis"
	"github.com/san-kum/lcsim/internal/geom"
	"github.com/san-kum/lcsim/internal/viz"
)

const (
	svgMargin    = 20.0
	markerSize   = 4.0
	arcSteps     = 16
	wireColor    = "#222222"
	markerColor  = "#e6c200"
	background   = "#ffffff"
	traceBG      = "#0a0a0a"
	wireStroke   = 2.0
	traceStroke  = 1.5
	tracePadding = 0.1
)

// FrameToSVG draws the wire loop with its symbols and the charge markers at
// their positions, in the circuit's own coordinates.
func FrameToSVG(w io.Writer, shape viz.Shape, markers []geom.Vec2) error {
	lo, hi := shape.Bounds()
	for _, p := range markers {
		lo = geom.V(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = geom.V(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}
	lo = lo.Sub(geom.V(svgMargin, svgMargin))
	hi = hi.Add(geom.V(svgMargin, svgMargin))
	size := hi.Sub(lo)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.1f %.1f %.1f %.1f">
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
<g fill="none" stroke="%s" stroke-width="%.1f">
`, size.X, size.Y, lo.X, lo.Y, size.X, size.Y, lo.X, lo.Y, size.X, size.Y, background, wireColor, wireStroke)

	for _, s := range shape.Lines {
		fmt.Fprintf(&sb, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, s.Start.X, s.Start.Y, s.End.X, s.End.Y)
	}
	for _, a := range shape.Arcs {
		sb.WriteString(`<polyline points="`)
		for i, p := range a.Points(arcSteps) {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.2f,%.2f", p.X, p.Y)
		}
		sb.WriteString(`"/>
`)
	}

	fmt.Fprintf(&sb, "</g>\n<g fill=\"%s\">\n", markerColor)
	for _, p := range markers {
		fmt.Fprintf(&sb, `<rect class="charge" x="%.2f" y="%.2f" width="%.0f" height="%.0f"/>
`, p.X-markerSize/2, p.Y-markerSize/2, markerSize, markerSize)
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// TrajectoryToSVG draws a phase portrait as one path, scaled to fill
// width x height with a small border.
func TrajectoryToSVG(w io.Writer, points []analysis.Point, width, height int, strokeColor string) error {
	if len(points) < 2 {
		return fmt.Errorf("export: trajectory needs at least two points, got %d", len(points))
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * tracePadding
	maxX += rangeX * tracePadding
	minY -= rangeY * tracePadding
	maxY += rangeY * tracePadding
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="%.1f" d="M`,
		width, height, width, height, traceBG, strokeColor, traceStroke)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
