package dedupe

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

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestGuard_SeenAndRemember(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := NewGuard(10*time.Minute, 100, WithClock(clock.Now))

	key := Fingerprint("booking", "asha@example.com", "2026-01-02")

	if g.Seen(key) {
		t.Fatal("new key reported as seen")
	}

	g.Remember(key)
	if !g.Seen(key) {
		t.Fatal("remembered key not seen")
	}

	// still visible from the previous generation after one rotation
	clock.Advance(11 * time.Minute)
	if !g.Seen(key) {
		t.Error("key should survive one rotation")
	}

	// gone after the previous generation is dropped too
	clock.Advance(11 * time.Minute)
	if g.Seen(key) {
		t.Error("key should expire after two windows")
	}
}

func TestGuard_LongIdleDropsEverything(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := NewGuard(time.Minute, 100, WithClock(clock.Now))

	g.Remember("a")
	clock.Advance(5 * time.Minute)

	if g.Seen("a") {
		t.Error("key should not survive a long idle period")
	}
}

func TestGuard_Stats(t *testing.T) {
	g := NewGuard(time.Hour, 100)
	g.Remember("a")
	g.Remember("a")
	g.Remember("b")

	stats := g.Stats()
	if stats["current_fingerprints"] != 2 {
		t.Errorf("expected 2 fingerprints, got %v", stats["current_fingerprints"])
	}
	if stats["previous_fingerprints"] != 0 {
		t.Errorf("expected 0 previous fingerprints, got %v", stats["previous_fingerprints"])
	}
}

func TestGuard_ConcurrentAccess(t *testing.T) {
	g := NewGuard(time.Hour, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%10)
			g.Remember(key)
			if !g.Seen(key) {
				t.Errorf("expected %s to be seen", key)
			}
		}(i)
	}
	wg.Wait()
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("contact", " Asha@Example.com ", "Hello")
	b := Fingerprint("contact", "asha@example.com", "hello")
	if a != b {
		t.Error("fingerprint should ignore case and surrounding space")
	}

	// part boundaries matter
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Error("fingerprint should separate parts")
	}
}

func TestGuard_FalsePositiveNeverRejects(t *testing.T) {
	// a one-key filter at 99% error saturates after a single insert
	g := NewGuard(time.Hour, 1, WithFalsePositiveRate(0.99))
	g.Remember("asha")

	if !g.current.filter.TestString("other-0") {
		t.Fatal("expected the filter to report a false positive")
	}

	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("other-%d", i)
		if g.Seen(key) {
			t.Fatalf("%s reported as seen without being remembered", key)
		}
		if !g.Reserve(key) {
			t.Fatalf("%s could not be reserved", key)
		}
		g.Release(key)
	}

	if !g.Seen("asha") {
		t.Error("remembered key not seen")
	}
}

func TestGuard_FullGenerationRotates(t *testing.T) {
	g := NewGuard(time.Hour, 2)
	g.Remember("a")
	g.Remember("b")
	g.Remember("c")

	stats := g.Stats()
	if stats["current_fingerprints"] != 1 || stats["previous_fingerprints"] != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
	if stats["rotations"] != 1 {
		t.Errorf("expected 1 rotation, got %v", stats["rotations"])
	}
	for _, key := range []string{"a", "b", "c"} {
		if !g.Seen(key) {
			t.Errorf("expected %s to be seen", key)
		}
	}
}

func TestGuard_Reserve(t *testing.T) {
	g := NewGuard(time.Hour, 100)

	if !g.Reserve("a") {
		t.Fatal("first reservation refused")
	}
	if g.Reserve("a") {
		t.Fatal("second reservation of an in-flight key accepted")
	}

	// a released key can be claimed again
	g.Release("a")
	if !g.Reserve("a") {
		t.Fatal("reservation after release refused")
	}

	g.Remember("a")
	if g.Reserve("a") {
		t.Error("remembered key reserved again")
	}
	if g.Stats()["in_flight"] != 0 {
		t.Errorf("expected no in-flight keys, got %v", g.Stats()["in_flight"])
	}
}

func TestGuard_ConcurrentReserve(t *testing.T) {
	g := NewGuard(time.Hour, 100)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Reserve("same") {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != 1 {
		t.Errorf("expected exactly 1 reservation, got %d", granted)
	}
}
