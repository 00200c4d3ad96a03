package wobble

import "math"

// Affine is a 2D affine transform.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
type Affine [6]float64

// AffineIdentity is the identity transform.
var AffineIdentity = Affine{1, 0, 0, 1, 0, 0}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return AffineIdentity, false
	}
	inv[0] = m[3] / det
	inv[1] = -m[1] / det
	inv[2] = -m[2] / det
	inv[3] = m[0] / det
	inv[4] = -(inv[0]*m[4] + inv[2]*m[5])
	inv[5] = -(inv[1]*m[4] + inv[3]*m[5])
	return inv, true
}

// Triangle is three points, in either winding order.
type Triangle [3]Vec2

// SignedArea returns twice the signed area (positive for counter-clockwise
// in a Y-up system; the sign is irrelevant to callers here, only the
// magnitude).
func (t Triangle) SignedArea() float64 {
	return (t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[2].X-t[0].X)*(t[1].Y-t[0].Y)
}

// degenerateArea is the |signed area| below which a source triangle cannot
// produce a stable affine solve and is skipped by the renderers.
const degenerateArea = 1e-9

// SolveAffine computes the unique affine transform mapping the three src
// points onto the three dst points. ok is false when the source triangle is
// degenerate (near-zero area); the result must then be discarded, since a
// NaN transform would corrupt every vertex it touches.
func SolveAffine(src, dst Triangle) (m Affine, ok bool) {
	u1x := src[1].X - src[0].X
	u1y := src[1].Y - src[0].Y
	u2x := src[2].X - src[0].X
	u2y := src[2].Y - src[0].Y
	det := u1x*u2y - u2x*u1y
	if math.Abs(det) < degenerateArea {
		return AffineIdentity, false
	}

	v1x := dst[1].X - dst[0].X
	v1y := dst[1].Y - dst[0].Y
	v2x := dst[2].X - dst[0].X
	v2y := dst[2].Y - dst[0].Y

	m[0] = (v1x*u2y - v2x*u1y) / det // a
	m[2] = (u1x*v2x - u2x*v1x) / det // c
	m[1] = (v1y*u2y - v2y*u1y) / det // b
	m[3] = (u1x*v2y - u2x*v1y) / det // d
	m[4] = dst[0].X - m[0]*src[0].X - m[2]*src[0].Y
	m[5] = dst[0].Y - m[1]*src[0].X - m[3]*src[0].Y
	return m, true
}

// Triangle expansion bounds, in pixels. Adjacent warped triangles otherwise
// leave hairline seams where their rasterized edges round differently.
const (
	expandMin  = 0.3
	expandMax  = 0.8
	expandRate = 0.02 // fraction of mean edge length
)

// Expand pushes each vertex outward from the centroid by a small pixel
// amount scaled with the triangle's mean edge length and clamped to
// [expandMin, expandMax]. Vertices already at the centroid stay put.
func (t Triangle) Expand() Triangle {
	cx := (t[0].X + t[1].X + t[2].X) / 3
	cy := (t[0].Y + t[1].Y + t[2].Y) / 3

	e01 := math.Hypot(t[1].X-t[0].X, t[1].Y-t[0].Y)
	e12 := math.Hypot(t[2].X-t[1].X, t[2].Y-t[1].Y)
	e20 := math.Hypot(t[0].X-t[2].X, t[0].Y-t[2].Y)
	amount := clamp((e01+e12+e20)/3*expandRate, expandMin, expandMax)

	var out Triangle
	for i, p := range t {
		dx := p.X - cx
		dy := p.Y - cy
		d := math.Hypot(dx, dy)
		if d < 1e-9 {
			out[i] = p
			continue
		}
		out[i] = Vec2{p.X + dx/d*amount, p.Y + dy/d*amount}
	}
	return out
}
