package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lcsim/internal/geom"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.PixelSize()
	if w != 8 || h != 8 {
		t.Fatalf("expected 8x8 sub-pixels, got %dx%d", w, h)
	}

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("expected pixel to be set")
	}
	if c.IsSet(2, 5) || c.IsSet(3, 4) {
		t.Error("expected neighbours to stay clear")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if c.IsSet(-1, 0) || c.IsSet(100, 100) {
		t.Error("out of range pixels must be ignored")
	}

	c.Unset(3, 5)
	if c.IsSet(3, 5) {
		t.Error("expected pixel to be cleared")
	}
	if c.Grid[1][1] != 0x2800 {
		t.Errorf("expected empty braille cell, got %U", c.Grid[1][1])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Fatalf("expected horizontal line pixel at x=%d", x)
		}
	}

	c.Clear()
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Fatalf("expected diagonal pixel at %d", i)
		}
	}

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Errorf("expected 5 rows, got %d", len(lines))
	}
}

func TestViewportFit(t *testing.T) {
	vp := Fit(geom.V(0, 0), geom.V(100, 100), 100, 100, 0)
	if vp.Scale != 1 {
		t.Errorf("expected scale 1, got %f", vp.Scale)
	}
	if x, y := vp.Project(geom.V(100, 100)); x != 100 || y != 100 {
		t.Errorf("expected (100,100), got (%d,%d)", x, y)
	}

	vp = Fit(geom.V(0, 0), geom.V(200, 100), 100, 100, 0)
	if math.Abs(vp.Scale-0.5) > 1e-12 {
		t.Errorf("expected scale 0.5, got %f", vp.Scale)
	}
	if x, y := vp.Project(geom.V(0, 0)); x != 0 || y != 25 {
		t.Errorf("expected wide world centred vertically at (0,25), got (%d,%d)", x, y)
	}
}

func TestCanvasWorldDrawing(t *testing.T) {
	c := NewCanvas(10, 5)
	vp := Fit(geom.V(0, 0), geom.V(20, 20), 20, 20, 0)

	c.Segment(vp, geom.Seg(geom.V(0, 0), geom.V(19, 0)))
	if !c.IsSet(0, 0) || !c.IsSet(19, 0) {
		t.Error("expected segment endpoints lit")
	}

	c.Dot(vp, geom.V(10, 10))
	for _, p := range [][2]int{{10, 10}, {11, 10}, {10, 11}, {11, 11}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected dot pixel at %v", p)
		}
	}
}
