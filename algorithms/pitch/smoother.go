package pitch

import (
	"math"

	"github.com/vozlabs/tonegate/algorithms/common"
)

// smoothingQuantum is the grid the smoothed frequency is snapped to. 3 Hz is
// below the just-noticeable difference for the covered voice range and
// suppresses flicker in downstream displays.
const smoothingQuantum = 3.0

// Smoother applies temporal smoothing to a stream of per-frame frequency
// readings for one session. It keeps the last N non-zero readings and
// returns a recency-weighted average quantized to the nearest 3 Hz, so a
// single outlier frame cannot produce a large instantaneous jump.
//
// One Smoother serves one session; the detector keys them by session id.
type Smoother struct {
	history *common.Ring
}

// NewSmoother creates a smoother holding up to historyLen non-zero readings
func NewSmoother(historyLen int) *Smoother {
	if historyLen < 1 {
		historyLen = 1
	}
	return &Smoother{
		history: common.NewRing(historyLen),
	}
}

// Smooth folds a new reading into the history and returns the smoothed
// frequency. Zero (unvoiced) readings pass through without touching the
// history, so brief dropouts do not dilute the average.
func (s *Smoother) Smooth(frequency float64) float64 {
	if frequency <= 0 {
		return 0.0
	}

	s.history.Push(frequency)
	values := s.history.Values()

	// Linearly increasing weight toward the most recent reading
	weights := make([]float64, len(values))
	for i := range weights {
		weights[i] = float64(i + 1)
	}

	smoothed := common.WeightedMean(values, weights)
	return math.Round(smoothed/smoothingQuantum) * smoothingQuantum
}

// Reset clears the smoothing history
func (s *Smoother) Reset() {
	s.history.Clear()
}
