package geom

// Segment is a directed line from Start to End.
type Segment struct {
	Start, End Vec2
}

func Seg(start, end Vec2) Segment {
	return Segment{Start: start, End: end}
}

func (s Segment) Len() float64 {
	return s.End.Sub(s.Start).Len()
}

// Direction is the angle of End-Start. It is meaningless for a degenerate
// segment.
func (s Segment) Direction() float64 {
	return s.End.Sub(s.Start).Angle()
}

func (s Segment) Degenerate() bool {
	return s.Start == s.End
}

// At returns the point d along the segment from Start.
func (s Segment) At(d float64) Vec2 {
	return s.Start.Add(FromPolar(s.Direction(), d))
}
