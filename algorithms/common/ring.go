package common

// Ring is a fixed-capacity ring buffer of float64 readings. Once full,
// each push evicts the oldest value. Used for the rolling per-session
// histories kept by the smoother and the liveness monitor.
type Ring struct {
	buffer   []float64
	writePos int
	count    int
}

// NewRing creates a ring buffer with the given capacity
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{
		buffer: make([]float64, capacity),
	}
}

// Push appends a value, evicting the oldest value when full
func (r *Ring) Push(v float64) {
	r.buffer[r.writePos] = v
	r.writePos = (r.writePos + 1) % len(r.buffer)
	if r.count < len(r.buffer) {
		r.count++
	}
}

// Values returns the buffered readings ordered oldest to newest.
// The returned slice is freshly allocated.
func (r *Ring) Values() []float64 {
	out := make([]float64, r.count)
	start := r.writePos - r.count
	for i := 0; i < r.count; i++ {
		out[i] = r.buffer[(start+i+len(r.buffer))%len(r.buffer)]
	}
	return out
}

// Last returns the most recent value, or 0 if the ring is empty
func (r *Ring) Last() float64 {
	if r.count == 0 {
		return 0.0
	}
	return r.buffer[(r.writePos-1+len(r.buffer))%len(r.buffer)]
}

// Len returns the number of buffered values
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the ring capacity
func (r *Ring) Cap() int {
	return len(r.buffer)
}

// Clear empties the ring
func (r *Ring) Clear() {
	r.writePos = 0
	r.count = 0
}
