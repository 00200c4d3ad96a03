package wobble

import "math"

// Falloff constants. The influence of a region fades with normalized
// ellipse-distance d: a Gaussian core up to coreEdge, then a cubic fade
// reaching zero at fadeEdge. Values are part of the visual contract; region
// edges look soft because the two pieces meet with matching value.
const (
	influenceCoreEdge = 0.6
	influenceFadeEdge = 1.5
)

// Influence returns a continuous [0, ~1.5] weight describing how strongly
// the normalized point (px, py) is affected by the region ellipse. The base
// falloff is in [0, 1]; a vertical bias of up to 1.5x above the region
// center (down to 0.5x below) models gravity-biased wobble.
//
// Degenerate ellipses (zero or negative extent) have no influence anywhere.
func Influence(px, py float64, e Ellipse) float64 {
	rx, ry := e.Radii()
	if rx <= 0 || ry <= 0 {
		return 0
	}
	c := e.Center()
	nx := (px - c.X) / rx
	ny := (py - c.Y) / ry
	d := math.Sqrt(nx*nx + ny*ny)

	var w float64
	if d < influenceCoreEdge {
		w = math.Exp(-0.5 * d * d)
	} else {
		// Fade from the core value at the edge down to zero, smoothed
		// cubically so there is no visible crease at the boundary.
		center := math.Exp(-0.5 * influenceCoreEdge * influenceCoreEdge)
		t := (d - influenceCoreEdge) / (influenceFadeEdge - influenceCoreEdge)
		w = center * math.Max(0, 1-t*t*t)
	}

	bias := clamp(1+(c.Y-py)*0.5, 0.5, 1.5)
	return w * bias
}
