package viz

import (
	"math"

	"github.com/san-kum/lcsim/internal/geom"
)

// Viewport maps world coordinates (y down, as the circuit is laid out) onto
// canvas sub-pixels with a uniform scale.
type Viewport struct {
	Origin geom.Vec2
	Scale  float64
	OffX   float64
	OffY   float64
}

// Fit centres the world rectangle [lo, hi] in a pxW x pxH sub-pixel area,
// leaving margin sub-pixels on every side.
func Fit(lo, hi geom.Vec2, pxW, pxH int, margin float64) Viewport {
	size := hi.Sub(lo)
	availW := float64(pxW) - 2*margin
	availH := float64(pxH) - 2*margin
	scale := 1.0
	if size.X > 0 && size.Y > 0 && availW > 0 && availH > 0 {
		scale = math.Min(availW/size.X, availH/size.Y)
	}
	return Viewport{
		Origin: lo,
		Scale:  scale,
		OffX:   (float64(pxW) - size.X*scale) / 2,
		OffY:   (float64(pxH) - size.Y*scale) / 2,
	}
}

func (v Viewport) Project(p geom.Vec2) (int, int) {
	d := p.Sub(v.Origin)
	return int(math.Round(v.OffX + d.X*v.Scale)), int(math.Round(v.OffY + d.Y*v.Scale))
}
