package detect

import "time"

// Clock abstracts wall-clock reads so retention windows and rate limits can
// be driven deterministically in tests
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock
func SystemClock() Clock { return systemClock{} }
