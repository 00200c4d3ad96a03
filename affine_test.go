package wobble

import (
	"math"
	"testing"
)

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestSolveAffineIdentity(t *testing.T) {
	tri := Triangle{{0, 0}, {10, 0}, {0, 10}}
	m, ok := SolveAffine(tri, tri)
	if !ok {
		t.Fatal("solve failed for identity mapping")
	}
	assertMatrix(t, "identity", m, AffineIdentity)
}

func TestSolveAffineTranslation(t *testing.T) {
	src := Triangle{{0, 0}, {10, 0}, {0, 10}}
	dst := Triangle{{5, -3}, {15, -3}, {5, 7}}
	m, ok := SolveAffine(src, dst)
	if !ok {
		t.Fatal("solve failed")
	}
	assertMatrix(t, "translation", m, Affine{1, 0, 0, 1, 5, -3})
}

func TestSolveAffineMapsCorners(t *testing.T) {
	src := Triangle{{2, 3}, {17, 4}, {5, 21}}
	dst := Triangle{{-4, 8}, {12, 13}, {3, -9}}
	m, ok := SolveAffine(src, dst)
	if !ok {
		t.Fatal("solve failed")
	}
	for i := range src {
		x, y := m.Apply(src[i].X, src[i].Y)
		if !approxEqual(x, dst[i].X, 1e-9) || !approxEqual(y, dst[i].Y, 1e-9) {
			t.Errorf("corner %d maps to (%v, %v), want (%v, %v)", i, x, y, dst[i].X, dst[i].Y)
		}
	}
	// Interior points follow the same transform: the centroid maps to the
	// destination centroid.
	cx, cy := m.Apply((src[0].X+src[1].X+src[2].X)/3, (src[0].Y+src[1].Y+src[2].Y)/3)
	if !approxEqual(cx, (dst[0].X+dst[1].X+dst[2].X)/3, 1e-9) ||
		!approxEqual(cy, (dst[0].Y+dst[1].Y+dst[2].Y)/3, 1e-9) {
		t.Errorf("centroid maps to (%v, %v)", cx, cy)
	}
}

func TestSolveAffineDegenerate(t *testing.T) {
	tests := []struct {
		name string
		src  Triangle
	}{
		{"all collinear", Triangle{{0, 0}, {5, 5}, {10, 10}}},
		{"repeated point", Triangle{{3, 4}, {3, 4}, {10, 2}}},
		{"zero area", Triangle{{1, 1}, {1, 1}, {1, 1}}},
	}
	dst := Triangle{{0, 0}, {10, 0}, {0, 10}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := SolveAffine(tt.src, dst); ok {
				t.Error("solve succeeded on a degenerate source triangle")
			}
		})
	}
}

func TestAffineInvertRoundTrip(t *testing.T) {
	m, ok := SolveAffine(
		Triangle{{0, 0}, {10, 0}, {0, 10}},
		Triangle{{3, 2}, {12, 5}, {-1, 11}},
	)
	if !ok {
		t.Fatal("solve failed")
	}
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("invert failed")
	}
	for _, p := range []Vec2{{0, 0}, {7, 3}, {-2, 9}} {
		fx, fy := m.Apply(p.X, p.Y)
		bx, by := inv.Apply(fx, fy)
		if !approxEqual(bx, p.X, 1e-9) || !approxEqual(by, p.Y, 1e-9) {
			t.Errorf("round trip of (%v, %v) gave (%v, %v)", p.X, p.Y, bx, by)
		}
	}
}

func TestAffineInvertSingular(t *testing.T) {
	if _, ok := (Affine{1, 2, 2, 4, 0, 0}).Invert(); ok {
		t.Error("inverted a singular matrix")
	}
}

// --- Triangle.Expand ---

func TestExpandMovesVerticesOutward(t *testing.T) {
	tri := Triangle{{0, 0}, {100, 0}, {0, 100}}
	exp := tri.Expand()
	cx := (tri[0].X + tri[1].X + tri[2].X) / 3
	cy := (tri[0].Y + tri[1].Y + tri[2].Y) / 3
	for i := range tri {
		before := math.Hypot(tri[i].X-cx, tri[i].Y-cy)
		after := math.Hypot(exp[i].X-cx, exp[i].Y-cy)
		grow := after - before
		if grow < expandMin-1e-9 || grow > expandMax+1e-9 {
			t.Errorf("vertex %d grew by %v, want within [%v, %v]", i, grow, expandMin, expandMax)
		}
	}
}

func TestExpandClampsSmallTriangles(t *testing.T) {
	tri := Triangle{{0, 0}, {2, 0}, {0, 2}}
	exp := tri.Expand()
	cx := (tri[0].X + tri[1].X + tri[2].X) / 3
	cy := (tri[0].Y + tri[1].Y + tri[2].Y) / 3
	before := math.Hypot(tri[0].X-cx, tri[0].Y-cy)
	after := math.Hypot(exp[0].X-cx, exp[0].Y-cy)
	if !approxEqual(after-before, expandMin, 1e-9) {
		t.Errorf("small triangle grew by %v, want minimum %v", after-before, expandMin)
	}
}

func TestExpandDegeneratePointStaysPut(t *testing.T) {
	tri := Triangle{{5, 5}, {5, 5}, {5, 5}}
	exp := tri.Expand()
	if exp != tri {
		t.Errorf("degenerate triangle moved: %v", exp)
	}
}

func TestTriangleSignedArea(t *testing.T) {
	tri := Triangle{{0, 0}, {10, 0}, {0, 10}}
	if got := math.Abs(tri.SignedArea()); !approxEqual(got, 100, 1e-9) {
		t.Errorf("|signed area| = %v, want 100 (twice the area)", got)
	}
}
