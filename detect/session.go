package detect

import (
	"time"

	"github.com/vozlabs/tonegate/algorithms/pitch"
)

// session holds the per-session state owned by the detect layer: the
// temporal smoother, the frame rate limiter, and the last returned result
// (replayed back to callers on rate-limited frames).
type session struct {
	smoother   *pitch.Smoother
	limiter    *RateLimiter
	lastResult *Result
}

// SessionStore keys detector-side session state by the caller-supplied
// session id. Sessions are created on first use and live until Evict;
// lifecycle is owned by the caller, the store never expires entries itself.
type SessionStore struct {
	sessions         map[string]*session
	smoothingHistory int
	rateLimit        time.Duration
}

// NewSessionStore creates an empty session store
func NewSessionStore(smoothingHistory int, rateLimit time.Duration) *SessionStore {
	return &SessionStore{
		sessions:         make(map[string]*session),
		smoothingHistory: smoothingHistory,
		rateLimit:        rateLimit,
	}
}

// Get returns the session for id, creating it on first use
func (s *SessionStore) Get(id string) *session {
	state, ok := s.sessions[id]
	if !ok {
		state = &session{
			smoother: pitch.NewSmoother(s.smoothingHistory),
			limiter:  NewRateLimiter(s.rateLimit),
		}
		s.sessions[id] = state
	}
	return state
}

// Evict discards the session state for id
func (s *SessionStore) Evict(id string) {
	delete(s.sessions, id)
}

// ActiveSessions returns the number of sessions currently held
func (s *SessionStore) ActiveSessions() int {
	return len(s.sessions)
}
