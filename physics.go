package wobble

import (
	"math"
	"math/rand/v2"
)

// Pattern ids whose X component is mirrored on alternating regions,
// simulating two hands kneading from opposite sides.
const (
	PatternKneadLeft  = "kneadLeft"
	PatternKneadRight = "kneadRight"
)

func isKneadPattern(id string) bool {
	return id == PatternKneadLeft || id == PatternKneadRight
}

// Region is a user-marked elliptical area with independent spring-damper
// state. Position and Velocity are displacements from rest in pixel units.
type Region struct {
	Ellipse

	Position Vec2
	Velocity Vec2

	// Per-instance constants, randomized at creation so overlapping regions
	// never move in lockstep.
	stiffness   float64
	damping     float64
	delayFrames int     // how many steps this region lags the force stream
	phaseOffset float64 // impulse rotation, radians
}

// Stiffness returns the region's effective spring constant.
func (r *Region) Stiffness() float64 { return r.stiffness }

// Damping returns the region's effective damping constant.
func (r *Region) Damping() float64 { return r.damping }

// DelayFrames returns how many steps the region's input force lags behind
// the global force stream.
func (r *Region) DelayFrames() int { return r.delayFrames }

// Engine owns the region list and drives one spring-damper integration per
// region per step. It is single-writer: all mutation must happen from the
// simulation step (see Simulator).
type Engine struct {
	params  Params
	regions []*Region
	history forceHistory
	rng     *rand.Rand
}

// NewEngine creates an engine with the given tuning. rng seeds the
// per-region randomized constants and impulse jitter; nil uses the global
// generator.
func NewEngine(params Params, rng *rand.Rand) *Engine {
	return &Engine{
		params: params.sanitized(DefaultParams()),
		rng:    rng,
	}
}

func (e *Engine) randFloat() float64 {
	if e.rng != nil {
		return e.rng.Float64()
	}
	return rand.Float64()
}

// randRange returns a random float64 in [min, max].
func (e *Engine) randRange(min, max float64) float64 {
	return min + e.randFloat()*(max-min)
}

// AddRegion appends a region for the given capture ellipse. The region's
// index at creation time determines its force delay and its parity under
// knead-pattern mirroring.
func (e *Engine) AddRegion(el Ellipse) *Region {
	i := len(e.regions)
	r := &Region{
		Ellipse:     el,
		stiffness:   e.params.BaseStiffness * e.randRange(0.7, 1.3),
		damping:     e.params.BaseDamping * e.randRange(0.95, 1.05),
		delayFrames: 3*i + int(e.randFloat()*2),
		phaseOffset: float64(i) * math.Pi * 0.3,
	}
	e.regions = append(e.regions, r)
	return r
}

// SetRegions replaces all regions, re-rolling per-region constants. Used to
// reconstruct the engine from persisted state.
func (e *Engine) SetRegions(ellipses []Ellipse) {
	e.regions = e.regions[:0]
	for _, el := range ellipses {
		e.AddRegion(el)
	}
}

// RemoveRegion deletes the region at index i. Out-of-range indices are
// no-ops. Surviving regions keep the constants rolled at their creation.
func (e *Engine) RemoveRegion(i int) {
	if i < 0 || i >= len(e.regions) {
		return
	}
	e.regions = append(e.regions[:i], e.regions[i+1:]...)
}

// Regions returns the live region slice. Callers must not mutate it outside
// the simulation step.
func (e *Engine) Regions() []*Region {
	return e.regions
}

// SetParams swaps the engine tuning. Existing regions keep their rolled
// stiffness/damping; new regions pick up the new base values.
func (e *Engine) SetParams(p Params) {
	e.params = p.sanitized(e.params)
}

// Params returns the current tuning.
func (e *Engine) Params() Params {
	return e.params
}

// Step records force in the history and advances every region by one
// simulation frame using its delayed view of the force stream. Knead
// patterns negate the X component on odd-index regions.
func (e *Engine) Step(force Vec2, patternID string) {
	e.history.Push(forceEntry{X: force.X, Y: force.Y, Pattern: patternID})
	for i, r := range e.regions {
		f := e.history.Delayed(r.delayFrames)
		fx, fy := f.X, f.Y
		if isKneadPattern(f.Pattern) && i%2 == 1 {
			fx = -fx
		}
		e.integrate(r, fx, fy)
	}
}

// ApplyForceAtPosition advances every region by one integration using
// force scaled by the region's influence at the given normalized point.
// No delay, no knead mirroring; pointer-relative interaction.
func (e *Engine) ApplyForceAtPosition(force Vec2, nx, ny float64) {
	for _, r := range e.regions {
		w := Influence(nx, ny, r.Ellipse)
		e.integrate(r, force.X*w, force.Y*w)
	}
}

// ApplyImpulse adds an instantaneous velocity kick to every region, rotated
// by the region's phase offset plus a small random angle and scaled by a
// random magnitude in [0.7, 1.3]. Models a shared jolt propagating
// non-uniformly across the image.
func (e *Engine) ApplyImpulse(impulse Vec2) {
	max := e.params.MaxDisplacement
	for _, r := range e.regions {
		angle := r.phaseOffset + e.randRange(-0.2, 0.2)
		mag := e.randRange(0.7, 1.3)
		sin, cos := math.Sincos(angle)
		r.Velocity.X = clamp(r.Velocity.X+(impulse.X*cos-impulse.Y*sin)*mag, -max, max)
		r.Velocity.Y = clamp(r.Velocity.Y+(impulse.X*sin+impulse.Y*cos)*mag, -max, max)
	}
}

// releaseImpulse propagates a press release into nearby regions: velocity
// away from the press point (with angular jitter) plus an upward recoil,
// both scaled by press depth and a distance falloff.
func (e *Engine) releaseImpulse(px, py, depth float64) {
	max := e.params.MaxDisplacement
	for _, r := range e.regions {
		c := r.Center()
		dx := c.X - px
		dy := c.Y - py
		dist := math.Hypot(dx, dy)
		inf := 1 - 2*dist
		if inf <= 0 {
			continue
		}
		// Direction from press point to region center; straight up when the
		// press is exactly on the center.
		ux, uy := 0.0, -1.0
		if dist > 1e-9 {
			ux, uy = dx/dist, dy/dist
		}
		jitter := e.randRange(-0.3, 0.3)
		sin, cos := math.Sincos(jitter)
		jx := ux*cos - uy*sin
		jy := ux*sin + uy*cos

		strength := depth * 8 * inf
		r.Velocity.X = clamp(r.Velocity.X+jx*strength*0.5, -max, max)
		r.Velocity.Y = clamp(r.Velocity.Y+jy*strength*0.5-strength*0.8, -max, max)
	}
}

// Reset zeroes all region state and clears the force history. Regions are
// kept; use SetRegions(nil) to remove them.
func (e *Engine) Reset() {
	for _, r := range e.regions {
		r.Position = Vec2{}
		r.Velocity = Vec2{}
	}
	e.history.Clear()
}

// integrate runs one semi-implicit Euler step (unit dt) for a single region
// and applies the clamp and anti-jitter invariants per axis.
func (e *Engine) integrate(r *Region, fx, fy float64) {
	p := e.params
	ax := (-r.stiffness*r.Position.X - r.damping*r.Velocity.X + fx) / p.Mass
	ay := (-r.stiffness*r.Position.Y - r.damping*r.Velocity.Y + fy) / p.Mass

	r.Velocity.X += ax
	r.Velocity.Y += ay
	r.Position.X += r.Velocity.X
	r.Position.Y += r.Velocity.Y

	r.Position.X = clamp(r.Position.X, -p.MaxDisplacement, p.MaxDisplacement)
	r.Position.Y = clamp(r.Position.Y, -p.MaxDisplacement, p.MaxDisplacement)
	r.Velocity.X = clamp(r.Velocity.X, -p.MaxDisplacement, p.MaxDisplacement)
	r.Velocity.Y = clamp(r.Velocity.Y, -p.MaxDisplacement, p.MaxDisplacement)

	if math.Abs(r.Position.X) < p.PosThreshold && math.Abs(r.Velocity.X) < p.VelThreshold {
		r.Position.X = 0
		r.Velocity.X = 0
	}
	if math.Abs(r.Position.Y) < p.PosThreshold && math.Abs(r.Velocity.Y) < p.VelThreshold {
		r.Position.Y = 0
		r.Velocity.Y = 0
	}
}
