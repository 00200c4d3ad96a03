package wobble

import (
	"encoding/json"
	"fmt"
	"io"
)

// Snapshot is everything a storage layer needs to reconstruct a simulator:
// the region list, the physics tuning, the grid density, and the sway
// strength. The simulation's transient state (positions, velocities,
// presses, force history) is deliberately not persisted.
type Snapshot struct {
	Regions      []Ellipse `json:"regions"`
	Params       Params    `json:"params"`
	SwayStrength float64   `json:"swayStrength"`
}

// TakeSnapshot captures the simulator's persistent state. swayStrength is
// passed in because the sway generator lives beside, not inside, the
// simulator.
func TakeSnapshot(sim *Simulator, swayStrength float64) Snapshot {
	regions := sim.Regions()
	ellipses := make([]Ellipse, len(regions))
	for i, r := range regions {
		ellipses[i] = r.Ellipse
	}
	return Snapshot{
		Regions:      ellipses,
		Params:       sim.Params(),
		SwayStrength: swayStrength,
	}
}

// Apply restores the snapshot into the simulator: tuning first (this may
// rebuild the grid), then the region list, then a reset so the restored
// state starts at rest.
func (s Snapshot) Apply(sim *Simulator) {
	sim.SetParams(s.Params)
	sim.SetRegions(s.Regions)
	sim.Reset()
}

// Save writes the snapshot as JSON.
func (s Snapshot) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a JSON snapshot.
func LoadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return s, nil
}
