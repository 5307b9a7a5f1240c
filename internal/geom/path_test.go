package geom

import (
	"testing"

	. "github.com/onsi/gomega"
)

func unitSquare(t *testing.T) ClosedPath {
	t.Helper()
	p, err := NewClosedPath(
		Seg(V(0, 0), V(1, 0)),
		Seg(V(1, 0), V(1, 1)),
		Seg(V(1, 1), V(0, 1)),
		Seg(V(0, 1), V(0, 0)),
	)
	if err != nil {
		t.Fatalf("unit square: %v", err)
	}
	return p
}

func expectNear(g *WithT, got, want Vec2) {
	g.ExpectWithOffset(1, got.X).To(BeNumerically("~", want.X, 1e-12), "x of %v", got)
	g.ExpectWithOffset(1, got.Y).To(BeNumerically("~", want.Y, 1e-12), "y of %v", got)
}

func TestLocate_UnitSquare(t *testing.T) {
	g := NewWithT(t)
	p := unitSquare(t)

	g.Expect(p.Len()).To(Equal(4.0))
	expectNear(g, p.Locate(0), V(0, 0))
	expectNear(g, p.Locate(0.5), V(0.5, 0))
	expectNear(g, p.Locate(1), V(1, 0))
	expectNear(g, p.Locate(1.25), V(1, 0.25))
	expectNear(g, p.Locate(2.5), V(0.5, 1))
	expectNear(g, p.Locate(3.5), V(0, 0.5))
}

func TestLocate_WrapsOutOfRange(t *testing.T) {
	g := NewWithT(t)
	p := unitSquare(t)

	expectNear(g, p.Locate(4), V(0, 0))
	expectNear(g, p.Locate(4.5), V(0.5, 0))
	expectNear(g, p.Locate(-0.5), V(0, 0.5))
	expectNear(g, p.Locate(-7.5), V(0.5, 0))
}

func TestLocate_SkipsDegenerateSegments(t *testing.T) {
	g := NewWithT(t)
	p, err := NewClosedPath(
		Seg(V(0, 0), V(0, 0)),
		Seg(V(0, 0), V(2, 0)),
		Seg(V(2, 0), V(2, 0)),
		Seg(V(2, 0), V(0, 0)),
	)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Len()).To(Equal(4.0))

	expectNear(g, p.Locate(0), V(0, 0))
	expectNear(g, p.Locate(2), V(2, 0))
	expectNear(g, p.Locate(3), V(1, 0))
}

func TestLocate_Continuous(t *testing.T) {
	g := NewWithT(t)
	p, err := Rect(V(100, 100), V(300, 200))
	g.Expect(err).NotTo(HaveOccurred())

	const step = 0.25
	prev := p.Locate(0)
	for d := step; d <= p.Len(); d += step {
		cur := p.Locate(d)
		g.Expect(cur.Dist(prev)).To(BeNumerically("<=", step+1e-9), "jump at d=%v", d)
		prev = cur
	}
}

func TestRect(t *testing.T) {
	g := NewWithT(t)
	p, err := Rect(V(10, 20), V(30, 40))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(p.NumSegments()).To(Equal(4))
	g.Expect(p.Len()).To(Equal(140.0))
	g.Expect(p.Segment(0)).To(Equal(Seg(V(10, 20), V(40, 20))))
	g.Expect(p.Segment(2)).To(Equal(Seg(V(40, 60), V(10, 60))))
}

func TestNewClosedPath_Errors(t *testing.T) {
	g := NewWithT(t)

	_, err := NewClosedPath()
	g.Expect(err).To(MatchError(ErrDegenerateGeometry))

	_, err = NewClosedPath(Seg(V(0, 0), V(1, 0)), Seg(V(1, 0), V(1, 1)))
	g.Expect(err).To(MatchError(ErrOpenPath))

	_, err = Rect(V(5, 5), V(0, 0))
	g.Expect(err).To(MatchError(ErrDegenerateGeometry))
}

func TestSegments_ReturnsCopy(t *testing.T) {
	g := NewWithT(t)
	p := unitSquare(t)

	segs := p.Segments()
	segs[0] = Seg(V(9, 9), V(9, 9))
	g.Expect(p.Segment(0)).To(Equal(Seg(V(0, 0), V(1, 0))))
}

func TestMod(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{5, 4, 1},
		{-1, 4, 3},
		{-4, 4, 0},
		{0, 4, 0},
		{4, 4, 0},
		{-1e-18, 4, 0},
		{1, 0, 0},
	}

	g := NewWithT(t)
	for _, tt := range tests {
		got := Mod(tt.a, tt.b)
		g.Expect(got).To(BeNumerically("~", tt.want, 1e-12), "Mod(%v, %v)", tt.a, tt.b)
		if tt.b > 0 {
			g.Expect(got).To(BeNumerically(">=", 0))
			g.Expect(got).To(BeNumerically("<", tt.b))
		}
	}
}
