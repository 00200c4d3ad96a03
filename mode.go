package wobble

// Mode is the app-level editing state. It gates which UI affordances are
// active; the simulation core ignores it.
type Mode uint8

const (
	// ModeUpload: no image loaded yet.
	ModeUpload Mode = iota
	// ModeSelect: image loaded, user is marking regions.
	ModeSelect
	// ModeConfirm: at least one region marked, ready to animate.
	ModeConfirm
	// ModeAnimate: simulation running.
	ModeAnimate
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeUpload:
		return "upload"
	case ModeSelect:
		return "select"
	case ModeConfirm:
		return "confirm"
	case ModeAnimate:
		return "animate"
	default:
		return "unknown"
	}
}

// ImageLoaded transitions upload to select. Loading a new image from any
// later mode returns to select.
func (m Mode) ImageLoaded() Mode {
	return ModeSelect
}

// RegionsChanged moves between select and confirm based on whether any
// regions exist. It does not interrupt a running animation.
func (m Mode) RegionsChanged(count int) Mode {
	if m == ModeUpload || m == ModeAnimate {
		return m
	}
	if count > 0 {
		return ModeConfirm
	}
	return ModeSelect
}

// Start transitions confirm to animate; other modes are unchanged.
func (m Mode) Start() Mode {
	if m == ModeConfirm {
		return ModeAnimate
	}
	return m
}

// Reset returns to select (keeping the loaded image) from any mode past
// upload.
func (m Mode) Reset() Mode {
	if m == ModeUpload {
		return m
	}
	return ModeSelect
}
