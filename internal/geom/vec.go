package geom

import "math"

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float64
}

// V creates a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromPolar builds a vector of the given length pointing along angle.
func FromPolar(angle, length float64) Vec2 {
	return Vec2{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{X: a.X * s, Y: a.Y * s}
}

// Len returns the Euclidean norm.
func (a Vec2) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

// Angle returns atan2(y, x), in (-pi, pi].
func (a Vec2) Angle() float64 {
	return math.Atan2(a.Y, a.X)
}

// Dist returns |a - b|.
func (a Vec2) Dist(b Vec2) float64 {
	return a.Sub(b).Len()
}
