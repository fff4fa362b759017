package effect

import (
	"math"
	"sync/atomic"
	"time"
)

// Speed is a process-wide animation speed multiplier. A rate of 2 plays
// animations twice as fast; the zero value means 1.
type Speed struct {
	bits atomic.Uint64
}

// DefaultSpeed is shared by every view that is not given its own Speed.
var DefaultSpeed = &Speed{}

// Set changes the multiplier. Non-positive rates are ignored.
func (s *Speed) Set(rate float64) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return
	}
	s.bits.Store(math.Float64bits(rate))
}

// Get returns the current multiplier.
func (s *Speed) Get() float64 {
	b := s.bits.Load()
	if b == 0 {
		return 1
	}
	return math.Float64frombits(b)
}

// Scale divides a base animation duration by the multiplier.
func (s *Speed) Scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) / s.Get())
}
