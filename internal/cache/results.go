package cache

import (
	"time"

	"briefforge/internal/cache/memory"
)

// Results is the process-local result cache shared by every entry point.
// Values keep their concrete envelope type; Load asserts it back.
type Results struct {
	store *memory.Store[string, any]
}

func NewResults(ttl time.Duration, opts ...memory.Option) *Results {
	return &Results{store: memory.NewStore[string, any](ttl, opts...)}
}

// Load returns the value cached under key when it holds a T.
func Load[T any](r *Results, key string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	v, ok := r.store.Get(key)
	if !ok {
		return zero, false
	}
	out, ok := v.(T)
	if !ok {
		return zero, false
	}
	return out, true
}

func Store[T any](r *Results, key string, v T) {
	if r == nil {
		return
	}
	r.store.Set(key, v)
}

func (r *Results) StartSweeper(interval time.Duration, onSweep func(removed int)) {
	if r == nil {
		return
	}
	r.store.StartJanitor(interval, onSweep)
}

func (r *Results) Sweep() int {
	if r == nil {
		return 0
	}
	return r.store.Sweep()
}

func (r *Results) Stats() memory.Stats {
	if r == nil {
		return memory.Stats{}
	}
	return r.store.Stats()
}

// Close stops the sweeper and drops every entry.
func (r *Results) Close() {
	if r == nil {
		return
	}
	r.store.Stop()
	r.store.Clear()
}
