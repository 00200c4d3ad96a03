package wobble

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testSimulator(t *testing.T, density int) *Simulator {
	t.Helper()
	p := DefaultParams()
	p.GridDensity = density
	return NewSimulator(p, rand.New(rand.NewPCG(3, 9)))
}

func TestDisplacementsRowMajorLayout(t *testing.T) {
	s := testSimulator(t, 10)
	d := s.Displacements()
	if len(d) != 121 {
		t.Fatalf("len = %d, want 121", len(d))
	}
	// Row-major by gy then gx: index 1 advances x, index 11 advances y.
	assertNear(t, "d[0].X", d[0].X, 0)
	assertNear(t, "d[0].Y", d[0].Y, 0)
	assertNear(t, "d[1].X", d[1].X, 0.1)
	assertNear(t, "d[1].Y", d[1].Y, 0)
	assertNear(t, "d[11].X", d[11].X, 0)
	assertNear(t, "d[11].Y", d[11].Y, 0.1)
}

func TestDisplacementsAllZeroAtRest(t *testing.T) {
	s := testSimulator(t, 10)
	s.AddRegion(centerRegion)
	s.Step(Vec2{}, "")
	for i, d := range s.Displacements() {
		if d.DX != 0 || d.DY != 0 {
			t.Fatalf("sample %d displaced at rest: (%v, %v)", i, d.DX, d.DY)
		}
	}
}

func TestDisplacementFollowsRegion(t *testing.T) {
	s := testSimulator(t, 10)
	s.AddRegion(centerRegion)
	for i := 0; i < 30; i++ {
		s.Step(Vec2{X: 1}, "")
	}

	d := s.Displacements()
	center := d[5*11+5] // vertex (0.5, 0.5), the region center
	if center.DX <= 0 {
		t.Errorf("center DX = %v, want > 0 under +X force", center.DX)
	}
	if center.Influence < 0.99 {
		t.Errorf("center influence = %v, want ~1", center.Influence)
	}
	// Far corner is outside the fade edge entirely.
	corner := d[0]
	if corner.DX != 0 || corner.DY != 0 {
		t.Errorf("far corner displaced: (%v, %v)", corner.DX, corner.DY)
	}
	if corner.Influence != 0 {
		t.Errorf("far corner influence = %v, want 0", corner.Influence)
	}
}

func TestDisplacementSnapsSubPixel(t *testing.T) {
	s := testSimulator(t, 10)
	r := s.AddRegion(centerRegion)
	// Force a tiny displacement well below the 0.3 px snap threshold.
	r.Position = Vec2{X: 0.1, Y: -0.1}
	s.computeDisplacements()
	for i, d := range s.Displacements() {
		if d.DX != 0 || d.DY != 0 {
			t.Fatalf("sample %d kept sub-pixel displacement: (%v, %v)", i, d.DX, d.DY)
		}
	}
}

func TestPressOutsideRegionsHasNoEffect(t *testing.T) {
	s := testSimulator(t, 10)
	s.AddRegion(Ellipse{X: 0.0, Y: 0.0, Width: 0.25, Height: 0.25})
	s.StartPress(0, 0.9, 0.9) // far from the region
	for i := 0; i < 30; i++ {
		s.Step(Vec2{}, "")
	}
	for i, d := range s.Displacements() {
		if d.DX != 0 || d.DY != 0 {
			t.Fatalf("sample %d displaced by a press outside all regions: (%v, %v)", i, d.DX, d.DY)
		}
	}
}

func TestPressInsideRegionDeforms(t *testing.T) {
	s := testSimulator(t, 10)
	s.AddRegion(centerRegion)
	s.StartPress(0, 0.5, 0.5)
	for i := 0; i < 30; i++ {
		s.Step(Vec2{}, "")
	}

	d := s.Displacements()
	center := d[5*11+5]
	// The press point itself gets the pure-downward dimple lobe.
	if center.DY <= 0 {
		t.Errorf("center DY = %v, want > 0 (dimple pushes down)", center.DY)
	}
	// A vertex to the right of the press bulges outward (+X).
	right := d[5*11+6]
	if right.DX <= 0 {
		t.Errorf("right-neighbor DX = %v, want > 0 (outward bulge)", right.DX)
	}
	left := d[5*11+4]
	if left.DX >= 0 {
		t.Errorf("left-neighbor DX = %v, want < 0 (outward bulge)", left.DX)
	}
}

func TestPressDisplacementFades(t *testing.T) {
	s := testSimulator(t, 10)
	s.AddRegion(Ellipse{X: 0.1, Y: 0.1, Width: 0.8, Height: 0.8})
	s.StartPress(0, 0.5, 0.5)
	for i := 0; i < 60; i++ {
		s.Step(Vec2{}, "")
	}
	d := s.Displacements()

	mag := func(i int) float64 { return math.Hypot(d[i].DX, d[i].DY) }
	near := mag(5*11 + 6)  // 0.1 away
	farther := mag(5*11 + 8) // 0.3 away, two radii out
	if near <= farther {
		t.Errorf("press effect does not fade: near %v, farther %v", near, farther)
	}
}
