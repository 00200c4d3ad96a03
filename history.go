package wobble

// forceEntry is one recorded input force along with the pattern id that
// produced it (empty for direct input).
type forceEntry struct {
	X, Y    float64
	Pattern string
}

// historyCap is the number of past forces retained for delayed lookup.
const historyCap = 8

// forceHistory is a fixed-capacity FIFO of the most recent applied forces,
// newest first. A plain array with an explicit head index; At(0) is the
// force pushed most recently.
type forceHistory struct {
	entries [historyCap]forceEntry
	head    int // index of the newest entry
	length  int
}

// Push records a new force, evicting the oldest once the buffer is full.
func (h *forceHistory) Push(e forceEntry) {
	h.head--
	if h.head < 0 {
		h.head = historyCap - 1
	}
	h.entries[h.head] = e
	if h.length < historyCap {
		h.length++
	}
}

// At returns the i-th newest entry. i must be in [0, Len()).
func (h *forceHistory) At(i int) forceEntry {
	return h.entries[(h.head+i)%historyCap]
}

// Delayed returns the entry lagged by the given number of steps, clamped to
// the oldest available entry. Returns a zero entry while empty.
func (h *forceHistory) Delayed(lag int) forceEntry {
	if h.length == 0 {
		return forceEntry{}
	}
	if lag >= h.length {
		lag = h.length - 1
	}
	return h.At(lag)
}

// Len returns the number of recorded entries.
func (h *forceHistory) Len() int {
	return h.length
}

// Clear forgets all recorded forces.
func (h *forceHistory) Clear() {
	h.head = 0
	h.length = 0
}
