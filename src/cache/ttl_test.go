package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestSetThenGet(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[string](10, time.Minute, clock.Now)

	c.Set("thumb:1", "payload")
	got, ok := c.Get("thumb:1")
	if !ok {
		t.Fatal("expected thumb:1 to be present")
	}
	if got != "payload" {
		t.Errorf("got %q, want %q", got, "payload")
	}
	if _, ok := c.Get("thumb:2"); ok {
		t.Error("thumb:2 was never set")
	}
}

func TestGetAfterTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](10, time.Minute, clock.Now)

	c.Set("k", 1)
	clock.Advance(time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry exactly ttl old must still be served")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry older than ttl must be absent")
	}
	if n := c.Len(); n != 0 {
		t.Errorf("Len() = %d after expiry, want 0", n)
	}
}

func TestGetDoesNotRefresh(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](10, time.Minute, clock.Now)

	c.Set("k", 1)
	clock.Advance(40 * time.Second)
	c.Get("k")
	clock.Advance(40 * time.Second)
	if c.Contains("k") {
		t.Error("Get must not extend the lifetime of an entry")
	}
}

func TestEvictsOldestInserted(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](3, time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
		clock.Advance(time.Second)
	}

	if n := c.Len(); n != 3 {
		t.Fatalf("Len() = %d, want 3", n)
	}
	for _, key := range []string{"k0", "k1"} {
		if c.Contains(key) {
			t.Errorf("%s should have been evicted", key)
		}
	}
	for _, key := range []string{"k2", "k3", "k4"} {
		if !c.Contains(key) {
			t.Errorf("%s should have been retained", key)
		}
	}
}

func TestEvictionIgnoresAccess(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](2, time.Hour, clock.Now)

	c.Set("a", 1)
	clock.Advance(time.Second)
	c.Set("b", 2)
	clock.Advance(time.Second)
	c.Get("a")
	c.Set("c", 3)

	if c.Contains("a") {
		t.Error("a was inserted first and must be evicted even though it was read")
	}
	if !c.Contains("b") || !c.Contains("c") {
		t.Error("b and c should be present")
	}
}

func TestOverwriteRefreshesInsertion(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](2, time.Minute, clock.Now)

	c.Set("a", 1)
	clock.Advance(time.Second)
	c.Set("b", 2)
	clock.Advance(time.Second)
	c.Set("a", 10)
	c.Set("c", 3)

	if c.Contains("b") {
		t.Error("b became the oldest insertion after a was overwritten")
	}
	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v; want 10, true", v, ok)
	}
}

func TestSetSweepsExpiredBeforeEvicting(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](2, time.Minute, clock.Now)

	c.Set("old", 1)
	clock.Advance(30 * time.Second)
	c.Set("fresh", 2)
	clock.Advance(45 * time.Second)
	c.Set("new", 3)

	if !c.Contains("fresh") || !c.Contains("new") {
		t.Error("expired entry should make room without evicting a live one")
	}
	if c.Contains("old") {
		t.Error("old expired")
	}
}

func TestClear(t *testing.T) {
	c := New[int](10, time.Minute)
	keys := []string{"a", "b", "c"}
	for i, k := range keys {
		c.Set(k, i)
	}

	c.Clear()

	if n := c.Len(); n != 0 {
		t.Errorf("Len() = %d after Clear, want 0", n)
	}
	for _, k := range keys {
		if c.Contains(k) {
			t.Errorf("%s present after Clear", k)
		}
	}
}

func TestStats(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](1, time.Minute, clock.Now)

	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Set("b", 2)

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", s.Hits, s.Misses)
	}
	if s.Evictions != 1 {
		t.Errorf("evictions = %d, want 1", s.Evictions)
	}
	if s.Size != 1 || s.MaxSize != 1 {
		t.Errorf("size = %d/%d, want 1/1", s.Size, s.MaxSize)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%120)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if n := c.Len(); n > 50 {
		t.Errorf("Len() = %d exceeds max size 50", n)
	}
}
