// Package raster is the CPU backend of the mesh deformation renderer: the
// same piecewise-affine warp the GPU path draws with DrawTriangles, run
// through golang.org/x/image/draw with per-triangle clip masks. It needs no
// graphics context, which also makes it the reference for warp correctness
// tests.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/phanxgames/wobble"
)

// Warper renders displacement arrays into RGBA images. The zero value is
// ready to use; the triangle mask buffer is grown lazily and reused.
type Warper struct {
	mask *image.RGBA
}

// Warp draws src into rect on dst, deformed by the per-vertex samples
// (row-major, (gridX+1) x (gridY+1), as produced by Simulator). Every grid
// cell is split into two triangles; each is drawn through the affine
// transform solved from its original corners, clipped to the expanded
// destination triangle. Degenerate source triangles are skipped.
func (w *Warper) Warp(dst *image.RGBA, src image.Image, gridX, gridY int, samples []wobble.DisplacementSample, rect image.Rectangle) {
	if len(samples) < (gridX+1)*(gridY+1) {
		return
	}
	sb := src.Bounds()
	srcW := float64(sb.Dx())
	srcH := float64(sb.Dy())
	rectW := float64(rect.Dx())
	rectH := float64(rect.Dy())

	if w.mask == nil || !w.mask.Bounds().Eq(image.Rectangle{Max: dst.Bounds().Size()}) {
		w.mask = image.NewRGBA(image.Rectangle{Max: dst.Bounds().Size()})
	}
	off := dst.Bounds().Min
	mw := w.mask.Bounds().Dx()
	mh := w.mask.Bounds().Dy()
	scanner := rasterx.NewScannerGV(mw, mh, w.mask, w.mask.Bounds())
	filler := rasterx.NewFiller(mw, mh, scanner)
	filler.SetColor(color.Alpha{A: 0xff})

	vcols := gridX + 1
	warpTri := func(i0, i1, i2 int) {
		var srcT, dstT wobble.Triangle
		for k, i := range [3]int{i0, i1, i2} {
			s := samples[i]
			srcT[k] = wobble.Vec2{X: s.X*srcW + float64(sb.Min.X), Y: s.Y*srcH + float64(sb.Min.Y)}
			dstT[k] = wobble.Vec2{X: float64(rect.Min.X) + s.X*rectW + s.DX, Y: float64(rect.Min.Y) + s.Y*rectH + s.DY}
		}
		m, ok := wobble.SolveAffine(srcT, dstT)
		if !ok {
			return
		}
		exp := dstT.Expand()

		bbox := triBounds(exp).Intersect(dst.Bounds())
		if bbox.Empty() {
			return
		}

		// Rasterize the expanded triangle into the mask (mask space is dst
		// space translated to a zero origin).
		filler.Clear()
		filler.Start(rasterx.ToFixedP(exp[0].X-float64(off.X), exp[0].Y-float64(off.Y)))
		filler.Line(rasterx.ToFixedP(exp[1].X-float64(off.X), exp[1].Y-float64(off.Y)))
		filler.Line(rasterx.ToFixedP(exp[2].X-float64(off.X), exp[2].Y-float64(off.Y)))
		filler.Stop(true)
		filler.Draw()

		maskBox := bbox.Sub(off)
		binarize(w.mask, maskBox)

		sub := dst.SubImage(bbox).(*image.RGBA)
		draw.ApproxBiLinear.Transform(sub, f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]},
			src, sb, draw.Src, &draw.Options{
				DstMask:  w.mask,
				DstMaskP: maskBox.Min,
			})

		clearRect(w.mask, maskBox)
	}

	for gy := 0; gy < gridY; gy++ {
		for gx := 0; gx < gridX; gx++ {
			tl := gy*vcols + gx
			tr := tl + 1
			bl := (gy+1)*vcols + gx
			br := bl + 1
			warpTri(tl, bl, tr)
			warpTri(tr, bl, br)
		}
	}
}

// binarize snaps the mask's anti-aliased triangle coverage to all-or-nothing
// within r. Partially covered border pixels become fully covered, so every
// pixel the expanded triangle touches is written exactly once per triangle
// instead of being alpha-blended twice along shared edges.
func binarize(m *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[m.PixOffset(r.Min.X, y) : m.PixOffset(r.Max.X, y) : m.PixOffset(r.Max.X, y)]
		for x := 0; x < len(row); x += 4 {
			if row[x+3] != 0 {
				row[x+3] = 0xff
			}
		}
	}
}

// clearRect zeroes the mask within r.
func clearRect(m *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[m.PixOffset(r.Min.X, y):m.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = 0
		}
	}
}

// triBounds returns the integer bounding box of a triangle.
func triBounds(t wobble.Triangle) image.Rectangle {
	minX, minY := t[0].X, t[0].Y
	maxX, maxY := minX, minY
	for _, p := range t[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
}

// StrokeEllipses draws region capture ellipses into dst (the CPU analogue of
// the GPU renderer's region overlay), one-pixel outlines approximated as
// closed polylines.
func StrokeEllipses(dst *image.RGBA, ellipses []wobble.Ellipse, rect image.Rectangle, col color.Color) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetColor(col)
	dasher.SetStroke(fixed.I(1), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)

	const segments = 48
	for _, e := range ellipses {
		c := e.Center()
		rx, ry := e.Radii()
		cx := float64(rect.Min.X) + c.X*float64(rect.Dx())
		cy := float64(rect.Min.Y) + c.Y*float64(rect.Dy())
		ex := rx * float64(rect.Dx())
		ey := ry * float64(rect.Dy())

		dasher.Start(rasterx.ToFixedP(cx+ex, cy))
		for k := 1; k <= segments; k++ {
			a := float64(k) / segments * 2 * math.Pi
			dasher.Line(rasterx.ToFixedP(cx+math.Cos(a)*ex, cy+math.Sin(a)*ey))
		}
		dasher.Stop(true)
	}
	dasher.Draw()
}
