package wobble

import (
	"math/rand/v2"
	"testing"
)

func scriptSim(t *testing.T) *Simulator {
	t.Helper()
	p := DefaultParams()
	p.GridDensity = 5
	s := NewSimulator(p, rand.New(rand.NewPCG(21, 5)))
	s.AddRegion(centerRegion)
	return s
}

func TestLoadScriptErrors(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": [`)); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("empty script accepted")
	}
	if _, err := LoadScript([]byte(`{}`)); err == nil {
		t.Error("script without steps accepted")
	}
}

func TestScriptForceRepeatsForFrames(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "force", "forceX": 1.5, "forceY": -0.5, "frames": 3, "pattern": "kneadLeft"},
		{"action": "force", "forceX": 9}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	sim := scriptSim(t)

	for i := 0; i < 3; i++ {
		f, id := r.Step(sim)
		if f.X != 1.5 || f.Y != -0.5 {
			t.Fatalf("frame %d force = %v, want {1.5 -0.5}", i, f)
		}
		if id != "kneadLeft" {
			t.Fatalf("frame %d pattern = %q", i, id)
		}
		if r.Done() {
			t.Fatalf("done after frame %d of a 3-frame force", i)
		}
	}

	f, id := r.Step(sim)
	if f.X != 9 || id != "" {
		t.Fatalf("fourth frame = %v %q, want the next step's force", f, id)
	}
	if !r.Done() {
		t.Error("not done after the last step")
	}
}

func TestScriptWaitConsumesFrames(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "force", "forceX": 2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	sim := scriptSim(t)

	for i := 0; i < 3; i++ {
		f, _ := r.Step(sim)
		if f.X != 0 || f.Y != 0 {
			t.Fatalf("wait frame %d emitted force %v", i, f)
		}
	}
	if f, _ := r.Step(sim); f.X != 2 {
		t.Fatalf("post-wait force = %v, want 2", f.X)
	}
}

func TestScriptPressLifecycle(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "press", "id": 1, "x": 0.3, "y": 0.3},
		{"action": "move", "id": 1, "x": 0.35, "y": 0.3},
		{"action": "release", "id": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	sim := scriptSim(t)

	r.Step(sim)
	pp := sim.presses.Get(1)
	if pp == nil {
		t.Fatal("press step did not start a press point")
	}
	r.Step(sim)
	if pp.X != 0.35 {
		t.Errorf("move step left X at %v, want 0.35", pp.X)
	}
	r.Step(sim)
	if !pp.Releasing() {
		t.Error("release step did not mark the press releasing")
	}
	if !r.Done() {
		t.Error("runner not done after final step")
	}
}

func TestScriptForceAtAndImpulseHitEngine(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "forceAt", "forceX": 3, "x": 0.3, "y": 0.3},
		{"action": "impulse", "forceX": 0, "forceY": -4}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	sim := scriptSim(t)
	reg := sim.Regions()[0]

	r.Step(sim)
	if reg.Velocity.X == 0 {
		t.Error("forceAt step did not move the region")
	}
	vy := reg.Velocity.Y
	r.Step(sim)
	if reg.Velocity.Y == vy {
		t.Error("impulse step did not change vertical velocity")
	}
}

func TestScriptDoneStaysIdle(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [{"action": "force", "forceX": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	sim := scriptSim(t)
	r.Step(sim)
	for i := 0; i < 5; i++ {
		f, id := r.Step(sim)
		if f.X != 0 || f.Y != 0 || id != "" {
			t.Fatalf("finished runner emitted %v %q", f, id)
		}
	}
}

func TestScriptUnknownActionSkipped(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "explode"},
		{"action": "force", "forceX": 7}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	sim := scriptSim(t)
	if f, _ := r.Step(sim); f.X != 0 {
		t.Fatalf("unknown action produced force %v", f)
	}
	if f, _ := r.Step(sim); f.X != 7 {
		t.Fatalf("force after unknown action = %v, want 7", f.X)
	}
}
