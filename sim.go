package wobble

import (
	"math/rand/v2"
	"sync"
)

// eventKind discriminates queued input events.
type eventKind uint8

const (
	evForce eventKind = iota
	evForceAt
	evImpulse
	evPressStart
	evPressMove
	evPressEnd
)

// inputEvent is a single externally delivered input, applied at the start of
// the next Step. Mirrors the direct Simulator methods.
type inputEvent struct {
	kind    eventKind
	force   Vec2
	x, y    float64
	id      int
	pattern string
}

// Simulator ties the physics engine, press tracking, vertex grid, and
// displacement aggregation into the single frame-driven facade the renderer
// and input layers talk to.
//
// All state is owned by the simulation step: call the direct methods only
// from the goroutine that calls Step. Other goroutines (an accelerometer
// poller, an event callback) must use the Enqueue* methods; queued events
// are drained at the start of the next Step, preserving the single-writer
// discipline.
type Simulator struct {
	params  Params
	engine  *Engine
	presses *pressSet
	grid    *Grid
	aspect  float64
	samples []DisplacementSample

	mu    sync.Mutex
	queue []inputEvent
}

// NewSimulator creates a simulator with the given tuning for a square image.
// rng seeds the randomized per-region constants; nil uses the global
// generator. Call SetAspect once the image dimensions are known.
func NewSimulator(params Params, rng *rand.Rand) *Simulator {
	params = params.sanitized(DefaultParams())
	s := &Simulator{
		params:  params,
		engine:  NewEngine(params, rng),
		presses: newPressSet(),
		aspect:  1,
	}
	s.rebuildGrid()
	return s
}

// Step advances the simulation by one logical frame: drains queued input,
// integrates every region against the (sensitivity-scaled) force, eases
// press depths, and recomputes the per-vertex displacement array.
//
// There is no explicit time step: the tuning assumes one Step per display
// refresh at a nominal 60 Hz. Driving Step at a different rate changes the
// visible response; the simulation deliberately does not decouple from the
// frame rate.
func (s *Simulator) Step(force Vec2, patternID string) {
	for _, ev := range s.drainQueue() {
		switch ev.kind {
		case evForce:
			force = force.Add(ev.force)
			if ev.pattern != "" {
				patternID = ev.pattern
			}
		case evForceAt:
			s.ApplyForceAtPosition(ev.force, ev.x, ev.y)
		case evImpulse:
			s.engine.ApplyImpulse(ev.force)
		case evPressStart:
			s.presses.Start(ev.id, ev.x, ev.y)
		case evPressMove:
			s.presses.Move(ev.id, ev.x, ev.y)
		case evPressEnd:
			s.presses.End(ev.id, s.engine)
		}
	}

	s.engine.Step(force.Scale(s.params.Sensitivity), patternID)
	s.presses.Update()
	s.computeDisplacements()
}

// ApplyForceAtPosition applies a pointer-relative force: every region
// receives the (sensitivity-scaled) force weighted by its influence at the
// normalized position.
func (s *Simulator) ApplyForceAtPosition(force Vec2, nx, ny float64) {
	s.engine.ApplyForceAtPosition(force.Scale(s.params.Sensitivity), nx, ny)
}

// ApplyImpulse kicks every region's velocity; see Engine.ApplyImpulse.
func (s *Simulator) ApplyImpulse(impulse Vec2) {
	s.engine.ApplyImpulse(impulse)
}

// StartPress begins a press interaction at a normalized position. id 0 is
// conventionally the mouse; touches use their per-finger ids.
func (s *Simulator) StartPress(id int, nx, ny float64) {
	s.presses.Start(id, nx, ny)
}

// UpdatePressPosition moves an active press. Unknown ids are no-ops.
func (s *Simulator) UpdatePressPosition(id int, nx, ny float64) {
	s.presses.Move(id, nx, ny)
}

// EndPress releases a press, injecting its recoil into nearby regions.
// Unknown ids are no-ops.
func (s *Simulator) EndPress(id int) {
	s.presses.End(id, s.engine)
}

// Reset zeroes all physics state, drops active presses and queued input,
// and recomputes the (all-zero) displacement array. Regions and tuning are
// kept.
func (s *Simulator) Reset() {
	s.mu.Lock()
	s.queue = s.queue[:0]
	s.mu.Unlock()
	s.engine.Reset()
	s.presses.Reset()
	s.computeDisplacements()
}

// Displacements returns the per-vertex samples computed by the last Step,
// row-major by gy then gx, length (SizeX()+1) * (SizeY()+1). The slice is
// reused across steps; callers must not retain it.
func (s *Simulator) Displacements() []DisplacementSample {
	if len(s.samples) == 0 {
		s.computeDisplacements()
	}
	return s.samples
}

// Grid returns the current vertex grid.
func (s *Simulator) Grid() *Grid {
	return s.grid
}

// Engine returns the region physics engine.
func (s *Simulator) Engine() *Engine {
	return s.engine
}

// Regions returns the live region list.
func (s *Simulator) Regions() []*Region {
	return s.engine.Regions()
}

// AddRegion appends a jiggle region.
func (s *Simulator) AddRegion(el Ellipse) *Region {
	return s.engine.AddRegion(el)
}

// RemoveRegion deletes the region at index i.
func (s *Simulator) RemoveRegion(i int) {
	s.engine.RemoveRegion(i)
}

// SetRegions replaces the region list (reconstruction from persisted state).
func (s *Simulator) SetRegions(ellipses []Ellipse) {
	s.engine.SetRegions(ellipses)
}

// Params returns the current tuning.
func (s *Simulator) Params() Params {
	return s.params
}

// SetParams applies a tuning snapshot. Zero fields keep their current
// values; Mass <= 0 is rejected in favor of the current mass; GridDensity
// is clamped to its legal range. A density change rebuilds the grid and
// invalidates prior displacement state.
func (s *Simulator) SetParams(p Params) {
	prev := s.params
	s.params = p.sanitized(prev)
	s.engine.SetParams(s.params)
	if s.params.GridDensity != prev.GridDensity {
		s.rebuildGrid()
	}
}

// SetGridDensity changes the number of cells along the shorter image
// dimension and rebuilds the grid.
func (s *Simulator) SetGridDensity(density int) {
	p := s.params
	p.GridDensity = clampInt(density, MinGridDensity, MaxGridDensity)
	s.SetParams(p)
}

// SetAspect sets the image aspect ratio (width/height) and rebuilds the
// grid. Values <= 0 are treated as square.
func (s *Simulator) SetAspect(aspect float64) {
	if aspect <= 0 {
		aspect = 1
	}
	if aspect == s.aspect {
		return
	}
	s.aspect = aspect
	s.rebuildGrid()
}

func (s *Simulator) rebuildGrid() {
	s.grid = NewGrid(s.params.GridDensity, s.aspect)
	s.samples = s.samples[:0]
	s.computeDisplacements()
}

// --- Cross-goroutine input handoff ---

// EnqueueForce adds a force (and optional pattern id) to the next Step's
// input. Safe to call from any goroutine.
func (s *Simulator) EnqueueForce(force Vec2, patternID string) {
	s.enqueue(inputEvent{kind: evForce, force: force, pattern: patternID})
}

// EnqueueForceAt queues a pointer-relative force for the next Step.
func (s *Simulator) EnqueueForceAt(force Vec2, nx, ny float64) {
	s.enqueue(inputEvent{kind: evForceAt, force: force, x: nx, y: ny})
}

// EnqueueImpulse queues a velocity kick for the next Step.
func (s *Simulator) EnqueueImpulse(impulse Vec2) {
	s.enqueue(inputEvent{kind: evImpulse, force: impulse})
}

// EnqueuePressStart queues a press-start event for the next Step.
func (s *Simulator) EnqueuePressStart(id int, nx, ny float64) {
	s.enqueue(inputEvent{kind: evPressStart, id: id, x: nx, y: ny})
}

// EnqueuePressMove queues a press-move event for the next Step.
func (s *Simulator) EnqueuePressMove(id int, nx, ny float64) {
	s.enqueue(inputEvent{kind: evPressMove, id: id, x: nx, y: ny})
}

// EnqueuePressEnd queues a press-end event for the next Step.
func (s *Simulator) EnqueuePressEnd(id int) {
	s.enqueue(inputEvent{kind: evPressEnd, id: id})
}

func (s *Simulator) enqueue(ev inputEvent) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()
}

func (s *Simulator) drainQueue() []inputEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil
	}
	drained := make([]inputEvent, len(s.queue))
	copy(drained, s.queue)
	s.queue = s.queue[:0]
	return drained
}
