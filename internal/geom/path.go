package geom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOpenPath indicates consecutive segments that do not share an endpoint.
	ErrOpenPath = errors.New("geom: segments do not form a closed loop")

	// ErrDegenerateGeometry indicates a path with zero total length.
	ErrDegenerateGeometry = errors.New("geom: path has zero length")
)

// closeTolerance bounds the gap allowed between joined endpoints.
const closeTolerance = 1e-9

// ClosedPath is an immutable loop of segments, walked in order.
type ClosedPath struct {
	segments []Segment
	length   float64
}

// NewClosedPath validates that segs join end to start, wrapping around.
func NewClosedPath(segs ...Segment) (ClosedPath, error) {
	if len(segs) == 0 {
		return ClosedPath{}, ErrDegenerateGeometry
	}

	total := 0.0
	for i, s := range segs {
		next := segs[(i+1)%len(segs)]
		if s.End.Dist(next.Start) > closeTolerance*math.Max(1, s.End.Len()) {
			return ClosedPath{}, fmt.Errorf("%w: segment %d ends at %v, segment %d starts at %v",
				ErrOpenPath, i, s.End, (i+1)%len(segs), next.Start)
		}
		total += s.Len()
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return ClosedPath{}, fmt.Errorf("%w: total length %g", ErrDegenerateGeometry, total)
	}

	owned := make([]Segment, len(segs))
	copy(owned, segs)
	return ClosedPath{segments: owned, length: total}, nil
}

// Rect builds the clockwise (in screen coordinates) rectangle with the given
// top-left origin and size: top, right, bottom, left.
func Rect(origin, size Vec2) (ClosedPath, error) {
	p0 := origin
	p1 := origin.Add(V(size.X, 0))
	p2 := origin.Add(size)
	p3 := origin.Add(V(0, size.Y))
	return NewClosedPath(Seg(p0, p1), Seg(p1, p2), Seg(p2, p3), Seg(p3, p0))
}

// Len returns the total arc length of the loop.
func (p ClosedPath) Len() float64 { return p.length }

// Segments returns a copy of the segments in walk order.
func (p ClosedPath) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Segment returns the i-th segment.
func (p ClosedPath) Segment(i int) Segment { return p.segments[i] }

// NumSegments returns the number of segments, degenerate ones included.
func (p ClosedPath) NumSegments() int { return len(p.segments) }

// Locate maps an arc-length offset to a point on the loop. Offsets outside
// [0, Len()) are wrapped first; zero-length segments never own a point.
func (p ClosedPath) Locate(distance float64) Vec2 {
	if len(p.segments) == 0 {
		return Vec2{}
	}

	d := Mod(distance, p.length)
	consumed := 0.0
	for _, s := range p.segments {
		if s.Degenerate() {
			continue
		}
		l := s.Len()
		if consumed+l >= d {
			return s.At(d - consumed)
		}
		consumed += l
	}

	// Only reachable through rounding right at the seam.
	return p.segments[0].Start
}

// Mod is the mathematical modulo: the result is in [0, b) for b > 0.
func Mod(a, b float64) float64 {
	if !(b > 0) {
		return 0
	}
	r := math.Mod(a, b)
	if r < 0 {
		r += b
	}
	if r >= b {
		// a tiny negative a rounds r+b up to b
		r = 0
	}
	return r
}
