package viz

import (
	"math"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/geom"
)

const (
	PlateGap   = 10.0
	PlateSize  = 20.0
	HumpRadius = 10.0
	HumpCount  = 3
)

// Arc is a circular arc from angle From to To, in radians, measured in the
// y-down drawing frame.
type Arc struct {
	Center geom.Vec2
	Radius float64
	From   float64
	To     float64
}

// Points returns n+1 points evenly spaced along the arc.
func (a Arc) Points(n int) []geom.Vec2 {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.Vec2, n+1)
	for i := 0; i <= n; i++ {
		angle := a.From + (a.To-a.From)*float64(i)/float64(n)
		pts[i] = a.Center.Add(geom.FromPolar(angle, a.Radius))
	}
	return pts
}

// Shape is a drawing made of straight lines and arcs.
type Shape struct {
	Lines []geom.Segment
	Arcs  []Arc
}

func (s *Shape) merge(o Shape) {
	s.Lines = append(s.Lines, o.Lines...)
	s.Arcs = append(s.Arcs, o.Arcs...)
}

// CapacitorSymbol draws a vertical capacitor of the given length hanging
// from top: two leads and two plates PlateGap apart.
func CapacitorSymbol(top geom.Vec2, length float64) Shape {
	lead := math.Max(0, (length-PlateGap)/2)
	half := PlateSize / 2
	upper := top.Y + lead
	lower := top.Y + length - lead

	return Shape{Lines: []geom.Segment{
		geom.Seg(top, geom.V(top.X, upper)),
		geom.Seg(geom.V(top.X-half, upper), geom.V(top.X+half, upper)),
		geom.Seg(geom.V(top.X-half, lower), geom.V(top.X+half, lower)),
		geom.Seg(geom.V(top.X, lower), geom.V(top.X, top.Y+length)),
	}}
}

// InductorSymbol draws a vertical coil of HumpCount half circles centred on
// the middle of the given length, bulging towards -x, with straight leads.
func InductorSymbol(top geom.Vec2, length float64) Shape {
	coil := 2 * HumpRadius * HumpCount
	lead := math.Max(0, (length-coil)/2)
	mid := top.Y + length/2

	sh := Shape{Lines: []geom.Segment{
		geom.Seg(top, geom.V(top.X, top.Y+lead)),
		geom.Seg(geom.V(top.X, top.Y+length-lead), geom.V(top.X, top.Y+length)),
	}}
	for i := 0; i < HumpCount; i++ {
		offset := (float64(i) - float64(HumpCount-1)/2) * 2 * HumpRadius
		sh.Arcs = append(sh.Arcs, Arc{
			Center: geom.V(top.X, mid+offset),
			Radius: HumpRadius,
			From:   math.Pi / 2,
			To:     3 * math.Pi / 2,
		})
	}
	return sh
}

// CircuitShape is the wire loop of c with the capacitor on the right side
// and the inductor on the left. Top and bottom are plain wire.
func CircuitShape(c *circuit.Circuit) Shape {
	path := c.Path()
	top := path.Segment(0)
	bottom := path.Segment(2)
	height := c.Params().LoopSize.Y

	sh := Shape{Lines: []geom.Segment{top, bottom}}
	sh.merge(CapacitorSymbol(top.End, height))
	sh.merge(InductorSymbol(top.Start, height))
	return sh
}

// Bounds returns the smallest rectangle holding every point of the shape.
func (s Shape) Bounds() (lo, hi geom.Vec2) {
	first := true
	add := func(p geom.Vec2) {
		if first {
			lo, hi = p, p
			first = false
			return
		}
		lo = geom.V(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = geom.V(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}
	for _, l := range s.Lines {
		add(l.Start)
		add(l.End)
	}
	for _, a := range s.Arcs {
		for _, p := range a.Points(16) {
			add(p)
		}
	}
	return lo, hi
}
