package memory

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"
)

type entry[K comparable, V any] struct {
	key        K
	value      V
	insertedAt time.Time
	expiresAt  time.Time
}

// Stats is a point-in-time view of a Store.
type Stats struct {
	Keys   int
	Hits   int64
	Misses int64
}

// Store is a threadsafe key/value cache with a fixed per-entry TTL.
// Entries leave the store only by expiring, by Delete or by Clear, unless a
// positive maxEntries bound is configured, in which case the least recently
// written entry is dropped first.
type Store[K comparable, V any] struct {
	mu         sync.Mutex
	ll         *list.List
	items      map[K]*list.Element
	maxEntries int
	ttl        time.Duration
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Option configures a Store.
type Option func(*options)

type options struct {
	maxEntries int
	now        func() time.Time
}

// WithMaxEntries bounds the store; zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewStore[K comparable, V any](ttl time.Duration, opts ...Option) *Store[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if o.maxEntries < 0 {
		o.maxEntries = 0
	}
	return &Store[K, V]{
		ll:         list.New(),
		items:      make(map[K]*list.Element),
		maxEntries: o.maxEntries,
		ttl:        ttl,
		now:        o.now,
	}
}

// Get returns the live value for key and counts a hit or a miss.
func (s *Store[K, V]) Get(key K) (V, bool) {
	var zero V
	if s == nil {
		return zero, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ele, ok := s.items[key]
	if !ok {
		s.misses.Add(1)
		return zero, false
	}
	ent := ele.Value.(*entry[K, V])
	if s.now().After(ent.expiresAt) {
		s.removeElement(ele)
		s.misses.Add(1)
		return zero, false
	}
	s.hits.Add(1)
	return ent.value, true
}

// Set writes value under key, replacing any existing entry and restarting
// its TTL.
func (s *Store[K, V]) Set(key K, value V) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if ele, ok := s.items[key]; ok {
		ent := ele.Value.(*entry[K, V])
		ent.value = value
		ent.insertedAt = now
		ent.expiresAt = now.Add(s.ttl)
		s.ll.MoveToFront(ele)
		return
	}

	ent := &entry[K, V]{
		key:        key,
		value:      value,
		insertedAt: now,
		expiresAt:  now.Add(s.ttl),
	}
	s.items[key] = s.ll.PushFront(ent)
	s.evictLocked()
}

func (s *Store[K, V]) Delete(key K) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ele, ok := s.items[key]; ok {
		s.removeElement(ele)
	}
}

func (s *Store[K, V]) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ll = list.New()
	s.items = make(map[K]*list.Element)
}

// Len counts stored entries, including expired ones not yet swept.
func (s *Store[K, V]) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

// Sweep drops every expired entry and reports how many were removed.
func (s *Store[K, V]) Sweep() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for ele := s.ll.Back(); ele != nil; {
		prev := ele.Prev()
		if now.After(ele.Value.(*entry[K, V]).expiresAt) {
			s.removeElement(ele)
			removed++
		}
		ele = prev
	}
	return removed
}

func (s *Store[K, V]) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{Keys: s.Len(), Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// StartJanitor runs Sweep every interval until Stop is called. onSweep, when
// non-nil, receives the number of entries removed by each pass.
func (s *Store[K, V]) StartJanitor(interval time.Duration, onSweep func(removed int)) {
	if s == nil || interval <= 0 {
		return
	}
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				n := s.Sweep()
				if onSweep != nil {
					onSweep(n)
				}
			}
		}
	}()
}

// Stop ends the janitor started by StartJanitor and waits for it to exit.
// It is safe to call more than once.
func (s *Store[K, V]) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.mu.Unlock()
	if stop == nil {
		return
	}
	s.stopOnce.Do(func() { close(stop) })
	<-done
}

func (s *Store[K, V]) evictLocked() {
	if s.maxEntries <= 0 {
		return
	}
	for s.ll.Len() > s.maxEntries {
		s.removeElement(s.ll.Back())
	}
}

func (s *Store[K, V]) removeElement(ele *list.Element) {
	if ele == nil {
		return
	}
	s.ll.Remove(ele)
	delete(s.items, ele.Value.(*entry[K, V]).key)
}
