package wobble

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a motion script.
type scriptStep struct {
	Action  string  `json:"action"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	ForceX  float64 `json:"forceX,omitempty"`
	ForceY  float64 `json:"forceY,omitempty"`
	ID      int     `json:"id,omitempty"`
	Pattern string  `json:"pattern,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// motionScript is the top-level JSON structure for a motion script.
type motionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences scripted motion input across frames: forces,
// impulses, and press interactions described as JSON steps. Call Step once
// per frame in place of (or before) direct input.
//
// Supported actions: "force" (forceX/forceY, optional pattern, optional
// frames to repeat), "forceAt" (force at normalized x/y), "impulse",
// "press" (id at x/y), "move" (id to x/y), "release" (id), "wait" (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	repeat    *scriptStep // active multi-frame force
	repeatN   int
	done      bool
}

// LoadScript parses a JSON motion script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script motionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse motion script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse motion script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step executes at most one script action against the simulator and returns
// the force and pattern id to pass to Simulator.Step this frame. Multi-frame
// force steps keep returning their force until their frame count drains.
func (r *ScriptRunner) Step(sim *Simulator) (force Vec2, patternID string) {
	if r.done {
		return Vec2{}, ""
	}

	if r.repeat != nil {
		st := r.repeat
		r.repeatN--
		if r.repeatN <= 0 {
			r.repeat = nil
		}
		return Vec2{st.ForceX, st.ForceY}, st.Pattern
	}
	if r.waitCount > 0 {
		r.waitCount--
		return Vec2{}, ""
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return Vec2{}, ""
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "force":
		if st.Frames > 1 {
			r.repeat = &st
			r.repeatN = st.Frames - 1 // this frame counts as one
		}
		force = Vec2{st.ForceX, st.ForceY}
		patternID = st.Pattern
	case "forceAt":
		sim.ApplyForceAtPosition(Vec2{st.ForceX, st.ForceY}, st.X, st.Y)
	case "impulse":
		sim.ApplyImpulse(Vec2{st.ForceX, st.ForceY})
	case "press":
		sim.StartPress(st.ID, st.X, st.Y)
	case "move":
		sim.UpdatePressPosition(st.ID, st.X, st.Y)
	case "release":
		sim.EndPress(st.ID)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.repeat == nil {
		r.done = true
	}
	return force, patternID
}
