package wobble

import "math"

// Grid is a rectangular lattice of normalized (0..1) coordinates covering
// the whole image. Base positions are immutable once built; displacement is
// carried separately (see DisplacementSample). Rebuilt on density or
// aspect-ratio change.
type Grid struct {
	sizeX, sizeY int // cells per axis; vertices are (sizeX+1) x (sizeY+1)
	baseX        []float64
	baseY        []float64
}

// NewGrid builds a grid where the shorter image dimension has density cells
// and the longer one scales with the aspect ratio (width/height). aspect
// values <= 0 are treated as square.
func NewGrid(density int, aspect float64) *Grid {
	density = clampInt(density, MinGridDensity, MaxGridDensity)
	if aspect <= 0 {
		aspect = 1
	}
	g := &Grid{}
	if aspect >= 1 {
		g.sizeY = density
		g.sizeX = int(math.Round(float64(density) * aspect))
	} else {
		g.sizeX = density
		g.sizeY = int(math.Round(float64(density) / aspect))
	}

	vx := g.sizeX + 1
	vy := g.sizeY + 1
	g.baseX = make([]float64, vx*vy)
	g.baseY = make([]float64, vx*vy)
	for gy := 0; gy < vy; gy++ {
		ny := float64(gy) / float64(g.sizeY)
		for gx := 0; gx < vx; gx++ {
			i := gy*vx + gx
			g.baseX[i] = float64(gx) / float64(g.sizeX)
			g.baseY[i] = ny
		}
	}
	return g
}

// SizeX returns the number of cells along X.
func (g *Grid) SizeX() int { return g.sizeX }

// SizeY returns the number of cells along Y.
func (g *Grid) SizeY() int { return g.sizeY }

// VertexCount returns (sizeX+1) * (sizeY+1).
func (g *Grid) VertexCount() int {
	return len(g.baseX)
}

// Vertex returns the normalized base position of vertex (gx, gy).
func (g *Grid) Vertex(gx, gy int) (x, y float64) {
	i := gy*(g.sizeX+1) + gx
	return g.baseX[i], g.baseY[i]
}
