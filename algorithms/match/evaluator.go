// Package match decides whether a sung frequency hits a target tone.
// Matching is octave-aware: a tone sung one octave above or below the
// target is accepted at reduced confidence, since singers routinely
// transpose a reference tone into their own comfortable register.
package match

import (
	"math"
)

// Params contains parameters for match evaluation
type Params struct {
	MinFrequency float64 `json:"min_frequency"` // Frequencies below never match
	Tolerance    float64 `json:"tolerance"`     // Fractional deviation allowed (0.1 = ±10%)

	// OctavePenalty caps octave-match confidence below the best possible
	// direct match
	OctavePenalty float64 `json:"octave_penalty"`

	// ConfidenceExponent < 1 flattens the confidence curve near the
	// tolerance boundary, making near-misses score higher
	ConfidenceExponent float64 `json:"confidence_exponent"`
}

// DefaultParams returns the canonical evaluation parameters
func DefaultParams() Params {
	return Params{
		MinFrequency:       85.0,
		Tolerance:          0.1,
		OctavePenalty:      0.8,
		ConfidenceExponent: 0.7,
	}
}

// Evaluator compares estimated frequencies against challenge targets.
// It is stateless; one instance may serve any number of sessions.
type Evaluator struct {
	params Params
}

// NewEvaluator creates an evaluator with default parameters
func NewEvaluator() *Evaluator {
	return NewEvaluatorWithParams(DefaultParams())
}

// NewEvaluatorWithParams creates an evaluator with custom parameters
func NewEvaluatorWithParams(params Params) *Evaluator {
	return &Evaluator{params: params}
}

// IsMatch reports whether user is within tolerance of target, its octave
// up, or its octave down
func (e *Evaluator) IsMatch(user, target float64) bool {
	return e.IsMatchWithTolerance(user, target, e.params.Tolerance)
}

// IsMatchWithTolerance is IsMatch with a per-call tolerance override
func (e *Evaluator) IsMatchWithTolerance(user, target, tolerance float64) bool {
	if user < e.params.MinFrequency || target <= 0 {
		return false
	}

	return withinTolerance(user, target, tolerance) ||
		withinTolerance(user, target*2, tolerance) ||
		withinTolerance(user, target/2, tolerance)
}

// Confidence scores a match in [0, 1]. A perfect direct hit scores exactly
// 1; confidence decays monotonically with distance inside the tolerance
// band and is exactly 0 outside it. Octave matches are scored on the same
// curve but capped by the octave penalty, so an octave match never beats
// the best possible direct match.
func (e *Evaluator) Confidence(user, target float64) float64 {
	if user < e.params.MinFrequency || target <= 0 {
		return 0.0
	}

	best := e.bandConfidence(user, target)

	if octave := e.bandConfidence(user, target*2) * e.params.OctavePenalty; octave > best {
		best = octave
	}
	if octave := e.bandConfidence(user, target/2) * e.params.OctavePenalty; octave > best {
		best = octave
	}

	return best
}

// bandConfidence scores user against a single reference frequency
func (e *Evaluator) bandConfidence(user, reference float64) float64 {
	allowed := e.params.Tolerance * reference
	if allowed <= 0 {
		return 0.0
	}

	distance := math.Abs(user - reference)
	if distance > allowed {
		return 0.0
	}
	if distance == 0 {
		return 1.0
	}

	return math.Pow(1.0-distance/allowed, e.params.ConfidenceExponent)
}

func withinTolerance(user, reference, tolerance float64) bool {
	if reference <= 0 {
		return false
	}
	return math.Abs(user-reference) <= tolerance*reference
}

// GetParams returns the current parameters
func (e *Evaluator) GetParams() Params {
	return e.params
}
