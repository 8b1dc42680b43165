// Package api is genforge's optional HTTP control plane: trigger a run,
// poll its status, and stream its live progress over chi routing with a
// JSON response shape, backed by an in-memory, TTL-garbage-collected run
// table rather than a database, since populations are never persisted
// across runs.
package api

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cumbiambero/genforge/internal/events"
	"github.com/cumbiambero/genforge/internal/solver"
)

// runTTL is how long a Done run's entry survives after being read before
// the store garbage-collects it.
const runTTL = 10 * time.Minute

// run wraps one in-flight or completed solve for the store.
type run struct {
	solver    *solver.Solver
	bus       *events.Bus
	createdAt time.Time
	readAt    time.Time
	wasRead   bool
}

// store holds every run this process knows about, keyed by RunID.
type store struct {
	mu   sync.Mutex
	runs map[string]*run
	log  zerolog.Logger
}

func newStore(log zerolog.Logger) *store {
	return &store{
		runs: make(map[string]*run),
		log:  log.With().Str("component", "api_store").Logger(),
	}
}

func (s *store) put(r *run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.solver.RunID()] = r
}

// get marks the run as read (for TTL purposes) and returns it.
func (s *store) get(runID string) (*run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[runID]
	if ok {
		r.wasRead = true
		r.readAt = time.Now()
	}
	return r, ok
}

// gc drops any Done run that has either been read once and gone past
// runTTL, or that has sat unread for 2*runTTL regardless.
func (s *store) gc() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, r := range s.runs {
		if r.solver.State() != solver.StateDone {
			continue
		}
		if r.wasRead && now.Sub(r.readAt) > runTTL {
			delete(s.runs, id)
		} else if !r.wasRead && now.Sub(r.createdAt) > 2*runTTL {
			delete(s.runs, id)
		}
	}
}

// runGC loops gc on an interval until stop is closed.
func (s *store) runGC(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.gc()
		case <-stop:
			return
		}
	}
}
