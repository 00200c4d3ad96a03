package wobble

import "math"

// Press easing rates and the depth below which a releasing press is
// discarded. Pressing eases quickly toward full depth; release rebounds
// more slowly.
const (
	pressSpeed   = 0.15
	releaseSpeed = 0.08
	pressEpsilon = 0.001
)

// PressPoint is one tracked pointer/touch interaction producing a localized
// indentation. Position is normalized over the displayed image rectangle.
type PressPoint struct {
	X, Y        float64
	Depth       float64
	targetDepth float64
	releasing   bool
}

// Releasing reports whether the point has received its end event and is
// easing back to zero depth.
func (p *PressPoint) Releasing() bool {
	return p.releasing
}

// pressSet tracks concurrently active presses keyed by an opaque pointer id
// (mouse = 0, touch = per-finger id). Counts are small; a map keeps
// insertion and removal O(1) per frame.
type pressSet struct {
	points map[int]*PressPoint
}

func newPressSet() *pressSet {
	return &pressSet{points: make(map[int]*PressPoint)}
}

// Start begins a press at the given normalized position. Starting an id
// that is already down restarts it in place at its current depth.
func (s *pressSet) Start(id int, nx, ny float64) {
	if p, ok := s.points[id]; ok {
		p.X, p.Y = nx, ny
		p.targetDepth = 1
		p.releasing = false
		return
	}
	s.points[id] = &PressPoint{X: nx, Y: ny, targetDepth: 1}
}

// Move updates the position of an active press. Unknown ids are no-ops.
func (s *pressSet) Move(id int, nx, ny float64) {
	if p, ok := s.points[id]; ok {
		p.X, p.Y = nx, ny
	}
}

// End transitions a press to releasing, first injecting the release recoil
// into the engine. Unknown ids are no-ops; ending with zero elapsed steps
// is safe (depth 0 produces a zero recoil).
func (s *pressSet) End(id int, engine *Engine) {
	p, ok := s.points[id]
	if !ok {
		return
	}
	engine.releaseImpulse(p.X, p.Y, p.Depth)
	p.targetDepth = 0
	p.releasing = true
}

// Update eases every press depth toward its target and discards points that
// have released fully. Called once per simulation step.
func (s *pressSet) Update() {
	for id, p := range s.points {
		rate := pressSpeed
		if p.releasing {
			rate = releaseSpeed
		}
		p.Depth += (p.targetDepth - p.Depth) * rate
		if p.releasing && math.Abs(p.Depth) < pressEpsilon {
			delete(s.points, id)
		}
	}
}

// Reset drops all active presses.
func (s *pressSet) Reset() {
	clear(s.points)
}

// Len returns the number of tracked presses.
func (s *pressSet) Len() int {
	return len(s.points)
}

// Get returns the press for id, or nil.
func (s *pressSet) Get(id int) *PressPoint {
	return s.points[id]
}
