package wobble

import "math"

// DisplacementSample is the per-vertex output of one simulation step. X, Y
// are the vertex's normalized base position; DX, DY the pixel displacement;
// Influence the summed region weight at this vertex (diagnostic).
type DisplacementSample struct {
	X, Y      float64
	DX, DY    float64
	Influence float64
}

// Press deformation constants (exact visual contract; see the two-lobe
// indentation model below).
const (
	pressRadius     = 0.15 // normalized Gaussian falloff radius
	pressDepthScale = 15   // pixels of deformation at full depth
	pressGate       = 0.01 // minimum region influence for press effects
	displaceSnap    = 0.3  // pixels; sub-threshold axes snap to zero
)

// computeDisplacements fills s.samples with one sample per grid vertex,
// row-major by gy then gx: the influence-weighted sum of region
// displacements plus the two-lobe press deformation (an outward bulge of
// displaced material around a central dimple). Press effects only appear
// where some region has influence, so presses outside every region leave
// the image still.
func (s *Simulator) computeDisplacements() {
	n := s.grid.VertexCount()
	if cap(s.samples) < n {
		s.samples = make([]DisplacementSample, n)
	}
	s.samples = s.samples[:n]

	regions := s.engine.Regions()
	vx := s.grid.SizeX() + 1
	vy := s.grid.SizeY() + 1

	for gy := 0; gy < vy; gy++ {
		for gx := 0; gx < vx; gx++ {
			i := gy*vx + gx
			x, y := s.grid.Vertex(gx, gy)

			var dx, dy, totalW, maxW float64
			for _, r := range regions {
				w := Influence(x, y, r.Ellipse)
				if w <= 0 {
					continue
				}
				dx += r.Position.X * w
				dy += r.Position.Y * w
				totalW += w
				if w > maxW {
					maxW = w
				}
			}

			if maxW >= pressGate {
				for _, p := range s.presses.points {
					if p.Depth <= pressEpsilon {
						continue
					}
					ddx := x - p.X
					ddy := y - p.Y
					dist := math.Hypot(ddx, ddy)
					pressInf := math.Exp(-0.5 * (dist / pressRadius) * (dist / pressRadius))
					if pressInf < 0.01 {
						continue
					}
					amount := p.Depth * pressDepthScale
					if dist > 1e-9 {
						// Outward bulge along the press-to-vertex direction.
						dx += (ddx / dist) * amount * pressInf * maxW * 0.5
						dy += (ddy / dist) * amount * pressInf * maxW * 0.3
					}
					// Central dimple: a tighter lobe pressing straight down.
					tight := dist / (pressRadius * 0.5)
					dy += math.Exp(-0.5*tight*tight) * amount * maxW * 0.3
				}
			}

			if math.Abs(dx) < displaceSnap {
				dx = 0
			}
			if math.Abs(dy) < displaceSnap {
				dy = 0
			}
			s.samples[i] = DisplacementSample{X: x, Y: y, DX: dx, DY: dy, Influence: totalW}
		}
	}
}
