package wobble

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer draws the source image warped by the simulation's displacement
// array: every grid cell splits into two triangles, each mapped from
// source-space to displaced destination-space by its own affine transform
// and drawn via DrawTriangles.
type Renderer struct {
	// Source is the still image being deformed.
	Source *ebiten.Image
	// ShowWireframe overlays the displaced grid (diagnostic).
	ShowWireframe bool
	// ShowRegions overlays region ellipse outlines with 1-based index
	// labels (editing aid).
	ShowRegions bool

	// High-water-mark buffers reused every frame.
	verts []ebiten.Vertex
	inds  []uint16
}

// NewRenderer creates a renderer for the given source image.
func NewRenderer(src *ebiten.Image) *Renderer {
	return &Renderer{Source: src}
}

// Draw renders the warped image into rect on dst using the simulator's
// current displacement array, then any enabled overlays.
func (r *Renderer) Draw(dst *ebiten.Image, sim *Simulator, rect Rect) {
	if r.Source == nil {
		return
	}
	b := r.Source.Bounds()
	samples := sim.Displacements()
	grid := sim.Grid()

	r.verts, r.inds = appendWarpMesh(r.verts[:0], r.inds[:0],
		samples, grid.SizeX(), grid.SizeY(), float64(b.Dx()), float64(b.Dy()), rect)

	dst.DrawTriangles(r.verts, r.inds, r.Source, &ebiten.DrawTrianglesOptions{
		Address: ebiten.AddressClampToZero,
	})

	if r.ShowWireframe {
		drawWireframe(dst, samples, grid.SizeX(), grid.SizeY(), rect)
	}
	if r.ShowRegions {
		drawRegions(dst, sim.Regions(), rect)
	}
}

// appendWarpMesh appends three unshared vertices per triangle: destination
// positions come from the expanded triangle (closing sub-pixel seams between
// neighbors) while source positions are the expanded corners pulled back
// through the inverse of the transform solved from the ORIGINAL corners, so
// the mapping itself is unchanged by the expansion. Triangles whose source
// geometry is degenerate are skipped.
func appendWarpMesh(verts []ebiten.Vertex, inds []uint16, samples []DisplacementSample, gridX, gridY int, srcW, srcH float64, rect Rect) ([]ebiten.Vertex, []uint16) {
	vcols := gridX + 1
	emit := func(i0, i1, i2 int) {
		var src, dstT Triangle
		for k, i := range [3]int{i0, i1, i2} {
			s := samples[i]
			src[k] = Vec2{s.X * srcW, s.Y * srcH}
			dstT[k] = Vec2{rect.X + s.X*rect.Width + s.DX, rect.Y + s.Y*rect.Height + s.DY}
		}
		m, ok := SolveAffine(src, dstT)
		if !ok {
			return
		}
		inv, ok := m.Invert()
		if !ok {
			return
		}
		exp := dstT.Expand()
		base := uint16(len(verts))
		for _, p := range exp {
			sx, sy := inv.Apply(p.X, p.Y)
			verts = append(verts, ebiten.Vertex{
				DstX: float32(p.X), DstY: float32(p.Y),
				SrcX: float32(sx), SrcY: float32(sy),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
		inds = append(inds, base, base+1, base+2)
	}

	for gy := 0; gy < gridY; gy++ {
		for gx := 0; gx < gridX; gx++ {
			tl := gy*vcols + gx
			tr := tl + 1
			bl := (gy+1)*vcols + gx
			br := bl + 1
			emit(tl, bl, tr)
			emit(tr, bl, br)
		}
	}
	return verts, inds
}

var (
	wireframeColor = color.RGBA{0, 255, 128, 160}
	regionColor    = color.RGBA{255, 64, 128, 255}
)

// drawWireframe strokes the displaced grid edges plus each cell's diagonal.
func drawWireframe(dst *ebiten.Image, samples []DisplacementSample, gridX, gridY int, rect Rect) {
	vcols := gridX + 1
	at := func(i int) (float32, float32) {
		s := samples[i]
		return float32(rect.X + s.X*rect.Width + s.DX), float32(rect.Y + s.Y*rect.Height + s.DY)
	}
	for gy := 0; gy <= gridY; gy++ {
		for gx := 0; gx <= gridX; gx++ {
			i := gy*vcols + gx
			x0, y0 := at(i)
			if gx < gridX {
				x1, y1 := at(i + 1)
				vector.StrokeLine(dst, x0, y0, x1, y1, 1, wireframeColor, false)
			}
			if gy < gridY {
				x1, y1 := at(i + vcols)
				vector.StrokeLine(dst, x0, y0, x1, y1, 1, wireframeColor, false)
			}
			if gx < gridX && gy < gridY {
				// Diagonal matching the triangle split (bl-tr).
				bx, by := at(i + vcols)
				tx, ty := at(i + 1)
				vector.StrokeLine(dst, bx, by, tx, ty, 1, wireframeColor, false)
			}
		}
	}
}

// regionOutlineSegments is the polyline resolution of an ellipse outline.
const regionOutlineSegments = 48

// drawRegions strokes each region's capture ellipse and labels it with its
// 1-based index.
func drawRegions(dst *ebiten.Image, regions []*Region, rect Rect) {
	for i, r := range regions {
		c := r.Center()
		rx, ry := r.Radii()
		cx := rect.X + c.X*rect.Width
		cy := rect.Y + c.Y*rect.Height
		ex := rx * rect.Width
		ey := ry * rect.Height

		px := float32(cx + ex)
		py := float32(cy)
		for k := 1; k <= regionOutlineSegments; k++ {
			a := float64(k) / regionOutlineSegments * 2 * math.Pi
			qx := float32(cx + math.Cos(a)*ex)
			qy := float32(cy + math.Sin(a)*ey)
			vector.StrokeLine(dst, px, py, qx, qy, 1, regionColor, true)
			px, py = qx, qy
		}

		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%d", i+1), int(cx)-3, int(cy)-8)
	}
}
