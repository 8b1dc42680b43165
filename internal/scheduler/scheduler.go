// Package scheduler re-runs a solve on a cron schedule against refreshed
// CSV inputs, replacing a fixed "N months have passed" interval check
// with an injected github.com/robfig/cron/v3 schedule expression.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RunFunc performs one scheduled re-discovery; it owns loading the
// latest CSV inputs and starting a solver.Solver, since those details
// are the caller's (cmd/genforge's) concern, not the scheduler's.
type RunFunc func()

// Scheduler wraps a cron.Cron, tracking when a run last fired so status
// reporting can answer "when did this last run".
type Scheduler struct {
	cron    *cron.Cron
	log     zerolog.Logger
	lastRun time.Time
}

// New builds a Scheduler that invokes run on every firing of spec (a
// standard five-field cron expression). run is wrapped so a panicking
// run never kills the whole process — the same guard
// internal/solver/worker.go applies per mutation.
func New(spec string, run RunFunc, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}

	_, err := s.cron.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Interface("panic", r).Msg("scheduled run panicked")
			}
		}()
		s.log.Info().Msg("running scheduled discovery")
		run()
		s.lastRun = time.Now()
		s.log.Info().Time("at", s.lastRun).Msg("scheduled discovery completed")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins firing on the configured schedule. Non-blocking.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for any in-flight run to finish, then stops future firings.
func (s *Scheduler) Stop() { <-s.cron.Stop().Done() }

// LastRun reports when the scheduled job last completed successfully
// (zero value if it has never run).
func (s *Scheduler) LastRun() time.Time { return s.lastRun }
