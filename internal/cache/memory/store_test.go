package memory

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestStore_GetSetAndExpiry(t *testing.T) {
	clock := newClock()
	s := NewStore[string, string](time.Hour, WithClock(clock.Now))

	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected miss on empty store")
	}
	s.Set("a", "one")
	v, ok := s.Get("a")
	if !ok || v != "one" {
		t.Fatalf("expected hit with one, got %q %v", v, ok)
	}

	clock.Advance(59 * time.Minute)
	if _, ok := s.Get("a"); !ok {
		t.Fatalf("entry expired before ttl")
	}
	clock.Advance(2 * time.Minute)
	if _, ok := s.Get("a"); ok {
		t.Fatalf("entry survived past ttl")
	}
	if s.Len() != 0 {
		t.Fatalf("expired entry should be dropped on read, len=%d", s.Len())
	}

	st := s.Stats()
	if st.Hits != 2 || st.Misses != 2 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestStore_SetReplacesAndRestartsTTL(t *testing.T) {
	clock := newClock()
	s := NewStore[string, int](time.Hour, WithClock(clock.Now))

	s.Set("k", 1)
	clock.Advance(50 * time.Minute)
	s.Set("k", 2)
	clock.Advance(50 * time.Minute)

	v, ok := s.Get("k")
	if !ok || v != 2 {
		t.Fatalf("expected replaced value 2, got %d %v", v, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("expected one entry per key, got %d", s.Len())
	}
}

func TestStore_Sweep(t *testing.T) {
	clock := newClock()
	s := NewStore[string, int](time.Hour, WithClock(clock.Now))

	s.Set("old1", 1)
	s.Set("old2", 2)
	clock.Advance(30 * time.Minute)
	s.Set("fresh", 3)
	clock.Advance(31 * time.Minute)

	if n := s.Sweep(); n != 2 {
		t.Fatalf("expected 2 swept, got %d", n)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 remaining, got %d", s.Len())
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Fatalf("fresh entry should survive sweep")
	}
}

func TestStore_MaxEntries(t *testing.T) {
	s := NewStore[int, int](time.Hour, WithMaxEntries(2))
	s.Set(1, 1)
	s.Set(2, 2)
	s.Set(3, 3)
	if s.Len() != 2 {
		t.Fatalf("expected bound of 2, got %d", s.Len())
	}
	if _, ok := s.Get(1); ok {
		t.Fatalf("oldest entry should be evicted")
	}
}

func TestStore_JanitorSweepsAndStops(t *testing.T) {
	clock := newClock()
	s := NewStore[string, int](time.Minute, WithClock(clock.Now))
	s.Set("a", 1)
	clock.Advance(2 * time.Minute)

	swept := make(chan int, 16)
	s.StartJanitor(5*time.Millisecond, func(n int) {
		select {
		case swept <- n:
		default:
		}
	})
	defer s.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case n := <-swept:
			if n == 1 {
				if s.Len() != 0 {
					t.Fatalf("janitor reported a sweep but entry remains")
				}
				s.Stop()
				s.Stop()
				return
			}
		case <-deadline:
			t.Fatalf("janitor did not sweep in time")
		}
	}
}

func TestStore_NilSafe(t *testing.T) {
	var s *Store[string, int]
	s.Set("a", 1)
	if _, ok := s.Get("a"); ok {
		t.Fatalf("nil store should miss")
	}
	if s.Len() != 0 || s.Sweep() != 0 {
		t.Fatalf("nil store should be empty")
	}
	s.Stop()
}
