package detect

import "time"

// RateLimiter enforces a minimum interval between processed frames for one
// session. Bursts of near-duplicate frames would otherwise inflate rolling
// statistics and hand the replay guard trivially identical results.
type RateLimiter struct {
	minInterval  time.Duration
	lastAccepted time.Time
	hasAccepted  bool
}

// NewRateLimiter creates a limiter with the given minimum interval
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{minInterval: minInterval}
}

// ShouldProcess reports whether a frame arriving at now may be processed,
// and on acceptance marks now as the last accepted time
func (r *RateLimiter) ShouldProcess(now time.Time) bool {
	if r.hasAccepted && now.Sub(r.lastAccepted) < r.minInterval {
		return false
	}
	r.lastAccepted = now
	r.hasAccepted = true
	return true
}

// Reset forgets the last accepted time
func (r *RateLimiter) Reset() {
	r.hasAccepted = false
}
