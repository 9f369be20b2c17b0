// Package ring provides modular index arithmetic for fixed-size circular
// buffers.
//
// A Ring knows only the slot count; it has no storage. Append, read, and
// navigation all share the same wrap-increment and arc-membership logic so
// the off-by-one handling lives in exactly one place.
package ring

// Ring performs index arithmetic modulo a fixed slot count.
type Ring struct {
	slots int
}

// New creates a Ring over the given number of slots.
// slots must be positive.
func New(slots int) Ring {
	if slots <= 0 {
		panic("ring: non-positive slot count")
	}
	return Ring{slots: slots}
}

// Slots returns the slot count.
func (r Ring) Slots() int {
	return r.slots
}

// Next returns the index one step forward, wrapping at the end.
func (r Ring) Next(i int) int {
	i++
	if i >= r.slots {
		i = 0
	}
	return i
}

// Prev returns the index one step backward, wrapping at zero.
func (r Ring) Prev(i int) int {
	i--
	if i < 0 {
		i = r.slots - 1
	}
	return i
}

// Add returns the index n steps forward of i, wrapping as needed.
// n must be in [0, slots].
func (r Ring) Add(i, n int) int {
	i += n
	if i >= r.slots {
		i -= r.slots
	}
	return i
}

// InArc reports whether index i lies on the arc of the given length
// starting at start and walking forward with wraparound.
//
// A zero-length arc contains nothing. The test is distance-based rather
// than a pair of comparisons because the arc may span the wrap point.
func (r Ring) InArc(i, start, length int) bool {
	if length <= 0 || i < 0 || i >= r.slots {
		return false
	}
	d := i - start
	if d < 0 {
		d += r.slots
	}
	return d < length
}
