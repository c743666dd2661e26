// Package status publishes lane and player metrics for the HUD and logs.
package status

import (
	"strconv"
	"sync/atomic"
)

// Registry groups the metric families of one run
// The tick loop writes through cached pointers; readers may run on other goroutines
type Registry struct {
	Flags    *Family[atomic.Bool]
	Counters *Family[atomic.Int64]
	Gauges   *Family[Gauge]
	Labels   *Family[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Flags:    &Family[atomic.Bool]{},
		Counters: &Family[atomic.Int64]{},
		Gauges:   &Family[Gauge]{},
		Labels:   &Family[Label]{},
	}
}

// Len returns the number of named metrics across all families
func (r *Registry) Len() int {
	return r.Flags.Len() + r.Counters.Len() + r.Gauges.Len() + r.Labels.Len()
}

// Snapshot renders every metric as text keyed by name
// Gauges add a "<name>.peak" entry; not meant for the tick path
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.Len()+r.Gauges.Len())
	r.Flags.Each(func(name string, v *atomic.Bool) {
		out[name] = strconv.FormatBool(v.Load())
	})
	r.Counters.Each(func(name string, v *atomic.Int64) {
		out[name] = strconv.FormatInt(v.Load(), 10)
	})
	r.Gauges.Each(func(name string, g *Gauge) {
		out[name] = strconv.FormatFloat(g.Value(), 'f', 2, 64)
		out[name+".peak"] = strconv.FormatFloat(g.Peak(), 'f', 2, 64)
	})
	r.Labels.Each(func(name string, l *Label) {
		out[name] = l.Value()
	})
	return out
}
