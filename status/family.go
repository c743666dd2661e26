package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Family is a named set of metrics of one kind
// The zero value is ready to use; Get is lock-free once a name exists
type Family[T any] struct {
	byName sync.Map // string -> *T
	size   atomic.Int32
}

// Get returns the metric for name, allocating it on first use
// Callers cache the pointer and write to it directly
func (f *Family[T]) Get(name string) *T {
	if v, ok := f.byName.Load(name); ok {
		return v.(*T)
	}
	v, loaded := f.byName.LoadOrStore(name, new(T))
	if !loaded {
		f.size.Add(1)
	}
	return v.(*T)
}

// Len returns the number of named metrics
func (f *Family[T]) Len() int {
	return int(f.size.Load())
}

// Each visits every metric in name order
func (f *Family[T]) Each(fn func(name string, m *T)) {
	names := make([]string, 0, f.Len())
	f.byName.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	slices.Sort(names)

	for _, name := range names {
		if v, ok := f.byName.Load(name); ok {
			fn(name, v.(*T))
		}
	}
}
