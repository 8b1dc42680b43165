// Package rng provides the randomness abstraction shared by the producer,
// changer catalog, and solver: a coin flip and a bounded integer draw, both
// swappable so tests can supply deterministic sequences.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness contract every changer and the producer depend
// on. Nothing in genforge reaches for the package-level math/rand funcs
// directly, so tests can inject a fully deterministic Source.
type Source interface {
	// Coin reports true or false, roughly 50/50 unless the caller weights it.
	Coin() bool
	// CoinP reports true with probability p (0 <= p <= 1).
	CoinP(p float64) bool
	// IntN returns a value in [0, n). Panics if n <= 0.
	IntN(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// Default is a math/rand-backed Source, safe for concurrent use by multiple
// goroutines (each call takes its own lock on an internal *rand.Rand).
type Default struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewDefault builds a Source seeded from the current time. Each solver
// worker goroutine owns one instance; it is not shared across workers.
func NewDefault() *Default {
	return &Default{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewDefaultSeeded builds a Source from an explicit seed, for reproducible
// runs.
func NewDefaultSeeded(seed int64) *Default {
	return &Default{r: rand.New(rand.NewSource(seed))}
}

func (d *Default) Coin() bool { return d.CoinP(0.5) }

func (d *Default) CoinP(p float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Float64() < p
}

func (d *Default) IntN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Intn(n)
}

func (d *Default) Float64() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Float64()
}
