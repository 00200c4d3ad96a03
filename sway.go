package wobble

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SwayPattern names an automatic force waveform. The knead patterns reuse
// the engine's mirrored pattern ids, so alternating regions move in
// opposition under them.
type SwayPattern string

const (
	SwayHorizontal SwayPattern = "horizontal"
	SwayVertical   SwayPattern = "vertical"
	SwayCircular   SwayPattern = "circular"
	SwayBounce     SwayPattern = "bounce"
	SwayKneadLeft  SwayPattern = SwayPattern(PatternKneadLeft)
	SwayKneadRight SwayPattern = SwayPattern(PatternKneadRight)
	SwayBreeze     SwayPattern = "breeze"
)

// Sway envelope ramp duration in seconds (one step = 1/60 s, matching the
// simulation's nominal frame rate).
const (
	swayRampIn  = 0.5
	swayRampOut = 0.8
	swayStepDT  = 1.0 / 60.0
)

// Sway generates time-parameterized force patterns to feed Simulator.Step.
// Strength ramps smoothly on Start/Stop so patterns never kick in with a
// visible jolt.
type Sway struct {
	// Strength is the force amplitude at full envelope.
	Strength float64
	// Speed advances the waveform phase per step, in radians.
	Speed float64

	pattern  SwayPattern
	t        float64
	env      float32
	envelope *gween.Tween
	noise    *perlin.Perlin
}

// NewSway creates a sway generator with the given noise seed (used only by
// the breeze pattern). The generator starts inactive; call Start.
func NewSway(seed int64) *Sway {
	return &Sway{
		Strength: 1,
		Speed:    0.05,
		pattern:  SwayHorizontal,
		noise:    perlin.NewPerlin(2, 2, 3, seed),
	}
}

// SetPattern switches the waveform. The phase is kept so switching mid-sway
// stays continuous.
func (s *Sway) SetPattern(p SwayPattern) {
	s.pattern = p
}

// Pattern returns the current waveform.
func (s *Sway) Pattern() SwayPattern {
	return s.pattern
}

// Start ramps the envelope up from its current value.
func (s *Sway) Start() {
	s.envelope = gween.New(s.env, 1, swayRampIn, ease.OutQuad)
}

// Stop ramps the envelope down; the pattern keeps emitting shrinking forces
// until the ramp finishes, then Next returns zero forces.
func (s *Sway) Stop() {
	s.envelope = gween.New(s.env, 0, swayRampOut, ease.InQuad)
}

// Active reports whether the generator is currently emitting forces.
func (s *Sway) Active() bool {
	return s.env > 0 || s.envelope != nil
}

// Next advances the waveform by one step and returns the force to apply
// plus the pattern id to pass through to Step.
func (s *Sway) Next() (Vec2, string) {
	if s.envelope != nil {
		v, done := s.envelope.Update(swayStepDT)
		s.env = v
		if done {
			s.envelope = nil
		}
	}
	if s.env <= 0 {
		return Vec2{}, string(s.pattern)
	}

	s.t += s.Speed
	amp := s.Strength * float64(s.env)

	var f Vec2
	switch s.pattern {
	case SwayHorizontal:
		f = Vec2{math.Sin(s.t) * amp, 0}
	case SwayVertical:
		f = Vec2{0, math.Sin(s.t) * amp}
	case SwayCircular:
		f = Vec2{math.Cos(s.t) * amp, math.Sin(s.t) * amp}
	case SwayBounce:
		f = Vec2{0, -math.Abs(math.Sin(s.t)) * amp}
	case SwayKneadLeft:
		f = Vec2{math.Sin(s.t) * amp, 0}
	case SwayKneadRight:
		f = Vec2{-math.Sin(s.t) * amp, 0}
	case SwayBreeze:
		// Perlin drift: mostly horizontal with a light vertical component.
		f = Vec2{
			s.noise.Noise1D(s.t*0.3) * amp,
			s.noise.Noise1D(s.t*0.3+100) * amp * 0.3,
		}
	}
	return f, string(s.pattern)
}
