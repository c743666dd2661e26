package status

import (
	"math"
	"sync/atomic"
)

// Gauge holds the latest float sample and the highest sample since creation
// Peak starts at 0; lane gauges (speed multiplier, timers) are never negative
type Gauge struct {
	cur  atomic.Uint64
	peak atomic.Uint64
}

// Set records a sample
func (g *Gauge) Set(v float64) {
	g.cur.Store(math.Float64bits(v))
	for {
		old := g.peak.Load()
		if !(v > math.Float64frombits(old)) {
			return
		}
		if g.peak.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// Value returns the latest sample
func (g *Gauge) Value() float64 {
	return math.Float64frombits(g.cur.Load())
}

// Peak returns the highest sample seen
func (g *Gauge) Peak() float64 {
	return math.Float64frombits(g.peak.Load())
}
