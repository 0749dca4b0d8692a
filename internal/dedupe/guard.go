// Package dedupe detects repeated form submissions within a time window.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
)

// Guard remembers submission fingerprints in two rotating generations.
// A fingerprint stays visible for at least one window and at most two.
// Each generation holds at most capacity fingerprints; a full generation
// rotates early.
type Guard struct {
	mu        sync.Mutex
	current   *generation
	previous  *generation
	pending   map[string]struct{}
	window    time.Duration
	capacity  uint
	falseRate float64
	now       func() time.Time
	rotations int
}

// generation is one window's worth of fingerprints. The bloom filter answers
// most misses; a hit is confirmed against keys so a false positive never
// rejects a first submission.
type generation struct {
	filter  *bloom.BloomFilter
	keys    map[string]struct{}
	started time.Time
}

func (gen *generation) has(key string) bool {
	if !gen.filter.TestString(key) {
		return false
	}
	_, ok := gen.keys[key]
	return ok
}

// Option configures a Guard
type Option func(*Guard)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithFalsePositiveRate sets the target false positive rate of each filter.
// A higher rate means smaller filters and more exact lookups; it never
// changes which keys are reported as seen.
func WithFalsePositiveRate(rate float64) Option {
	return func(g *Guard) { g.falseRate = rate }
}

// NewGuard creates a guard sized for capacity fingerprints per window
func NewGuard(window time.Duration, capacity uint, opts ...Option) *Guard {
	g := &Guard{
		window:    window,
		capacity:  capacity,
		pending:   make(map[string]struct{}),
		falseRate: 0.001,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.capacity == 0 {
		g.capacity = 10000
	}

	g.current = g.newGeneration()
	return g
}

func (g *Guard) newGeneration() *generation {
	return &generation{
		filter:  bloom.NewWithEstimates(g.capacity, g.falseRate),
		keys:    make(map[string]struct{}),
		started: g.now(),
	}
}

// rotate drops the oldest generation once the current one is a full window old.
// Callers must hold g.mu.
func (g *Guard) rotate() {
	if g.window <= 0 {
		return
	}

	elapsed := g.now().Sub(g.current.started)
	switch {
	case elapsed >= 2*g.window:
		g.previous = nil
		g.current = g.newGeneration()
		g.rotations++
	case elapsed >= g.window:
		g.previous = g.current
		g.current = g.newGeneration()
		g.rotations++
	}
}

// Seen reports whether key was remembered within the window
func (g *Guard) Seen(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rotate()
	return g.seen(key)
}

// seen checks both generations. Callers must hold g.mu.
func (g *Guard) seen(key string) bool {
	if g.current.has(key) {
		return true
	}
	return g.previous != nil && g.previous.has(key)
}

// Reserve claims key for an in-flight submission. It returns false when key
// was remembered within the window or is already reserved. A reservation
// ends with Remember on success or Release on failure.
func (g *Guard) Reserve(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rotate()

	if _, inFlight := g.pending[key]; inFlight || g.seen(key) {
		return false
	}
	g.pending[key] = struct{}{}
	return true
}

// Release drops a reservation without remembering key
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.pending, key)
}

// Remember records key in the current window and ends any reservation on it
func (g *Guard) Remember(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.pending, key)
	g.rotate()

	if _, exists := g.current.keys[key]; exists {
		return
	}
	if uint(len(g.current.keys)) >= g.capacity {
		g.previous = g.current
		g.current = g.newGeneration()
		g.rotations++
	}

	g.current.filter.AddString(key)
	g.current.keys[key] = struct{}{}
}

// Stats returns counters describing the guard's state
func (g *Guard) Stats() map[string]interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()

	stats := make(map[string]interface{})
	stats["window_seconds"] = g.window.Seconds()
	stats["current_fingerprints"] = len(g.current.keys)
	previous := 0
	if g.previous != nil {
		previous = len(g.previous.keys)
	}
	stats["previous_fingerprints"] = previous
	stats["rotations"] = g.rotations
	stats["in_flight"] = len(g.pending)

	return stats
}

// Fingerprint hashes normalized parts into a stable key.
// Parts are trimmed and lower-cased so cosmetic edits still collide.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
