package wobble

// Vec2 is a 2D vector used for positions, forces, velocities, and
// displacements throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Ellipse is a normalized ellipse inscribed in the box {X, Y, Width, Height}
// (top-left + extent, all in [0, 1] image coordinates). It defines the
// capture area of a jiggle region.
type Ellipse struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the ellipse center.
func (e Ellipse) Center() Vec2 {
	return Vec2{e.X + e.Width/2, e.Y + e.Height/2}
}

// Radii returns the ellipse half-extents.
func (e Ellipse) Radii() (rx, ry float64) {
	return e.Width / 2, e.Height / 2
}

// Params holds every tunable of the simulation. Each field is independently
// settable via Simulator.SetParams; zero values are replaced by defaults.
type Params struct {
	// BaseStiffness is the spring constant before the per-region random
	// multiplier in [0.7, 1.3] is applied.
	BaseStiffness float64 `json:"baseStiffness"`
	// BaseDamping is the damping constant before the per-region random
	// multiplier in [0.95, 1.05] is applied.
	BaseDamping float64 `json:"baseDamping"`
	// Mass divides the summed forces to produce acceleration. Must be > 0;
	// SetParams ignores non-positive values.
	Mass float64 `json:"mass"`
	// Sensitivity multiplies incoming forces before they reach the engine.
	Sensitivity float64 `json:"sensitivity"`
	// MaxDisplacement clamps region position and velocity per axis, in pixels.
	MaxDisplacement float64 `json:"maxDisplacement"`
	// PosThreshold and VelThreshold define the anti-jitter snap: once both
	// |position| and |velocity| fall below them on an axis, that axis snaps
	// to exactly zero.
	PosThreshold float64 `json:"posThreshold"`
	VelThreshold float64 `json:"velThreshold"`
	// GridDensity is the number of grid cells along the shorter image
	// dimension. Clamped to [MinGridDensity, MaxGridDensity].
	GridDensity int `json:"gridDensity"`
}

// Grid density bounds enforced by the configuration entry points.
const (
	MinGridDensity = 5
	MaxGridDensity = 40
)

// DefaultParams returns the tuning the simulation ships with.
func DefaultParams() Params {
	return Params{
		BaseStiffness:   0.08,
		BaseDamping:     0.92,
		Mass:            1.0,
		Sensitivity:     4.0,
		MaxDisplacement: 100,
		PosThreshold:    0.1,
		VelThreshold:    0.1,
		GridDensity:     20,
	}
}

// sanitized returns p with invalid fields replaced: non-positive mass falls
// back to prev.Mass and GridDensity is clamped to its legal range. Zero
// values for the remaining fields are filled from prev so partial updates
// leave unrelated tuning untouched.
func (p Params) sanitized(prev Params) Params {
	if p.BaseStiffness == 0 {
		p.BaseStiffness = prev.BaseStiffness
	}
	if p.BaseDamping == 0 {
		p.BaseDamping = prev.BaseDamping
	}
	if p.Mass <= 0 {
		p.Mass = prev.Mass
	}
	if p.Sensitivity == 0 {
		p.Sensitivity = prev.Sensitivity
	}
	if p.MaxDisplacement == 0 {
		p.MaxDisplacement = prev.MaxDisplacement
	}
	if p.PosThreshold == 0 {
		p.PosThreshold = prev.PosThreshold
	}
	if p.VelThreshold == 0 {
		p.VelThreshold = prev.VelThreshold
	}
	if p.GridDensity == 0 {
		p.GridDensity = prev.GridDensity
	}
	p.GridDensity = clampInt(p.GridDensity, MinGridDensity, MaxGridDensity)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
