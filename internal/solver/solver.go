package solver

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cumbiambero/genforge/internal/changer"
	"github.com/cumbiambero/genforge/internal/events"
)

// Solver runs the worker-pool evolutionary search over a fixed data set.
// One Solver instance corresponds to one run; it is not reusable once
// Start has been called.
type Solver struct {
	cfg       Config
	variables []string
	inputs    [][]float64
	expected  [][]float64

	pool *orderedSet
	hof  *orderedSet

	state    runState
	deadline time.Time

	bus   *events.Bus
	runID string
	log   zerolog.Logger

	wg         sync.WaitGroup
	doneOnce   sync.Once
	doneMu     sync.Mutex
	doneReason string

	catalog        []changer.Changer
	creativeSubset []changer.Changer
}

// New builds a Solver for the given variables and row data. bus may be nil
// (no progress events published).
func New(cfg Config, variables []string, inputs, expected [][]float64, bus *events.Bus, log zerolog.Logger) *Solver {
	cfg = cfg.resolved()
	id := uuid.NewString()
	return &Solver{
		cfg:       cfg,
		variables: variables,
		inputs:    inputs,
		expected:  expected,
		pool:      newOrderedSet(cfg.PoolCap),
		hof:       newOrderedSet(cfg.HallOfFameCap),
		bus:       bus,
		runID:     id,
		log:       log.With().Str("run_id", id).Logger(),
		catalog:   changer.Catalog(),
		creativeSubset: []changer.Changer{
			changer.Purger{},
			changer.NonlinearityInjector{},
			changer.StructureMutator{},
			changer.FunctionTransformer{},
			changer.NumberInserter{},
		},
	}
}

// RunID identifies this run for logs, the HTTP API, and scheduler history.
func (s *Solver) RunID() string { return s.runID }

// State reports the current lifecycle state.
func (s *Solver) State() State { return s.state.get() }

// DoneReason reports why the run finished, once it has (empty otherwise).
func (s *Solver) DoneReason() string {
	s.doneMu.Lock()
	defer s.doneMu.Unlock()
	return s.doneReason
}

// Pool returns a fitness-ascending snapshot of the solutions pool.
func (s *Solver) Pool() []Solution { return s.pool.snapshot() }

// HallOfFame returns a fitness-ascending snapshot of the hall-of-fame.
func (s *Solver) HallOfFame() []Solution { return s.hof.snapshot() }

// Shrink implements the REPL's "shrink" command: prune the pool to its
// better half.
func (s *Solver) Shrink() {
	s.pool.keepTopN(maxInt(1, s.pool.size()/2))
}

// Start seeds the pool and launches one worker goroutine per configured
// thread. It returns immediately; call Wait to block until every worker
// exits.
func (s *Solver) Start() {
	if s.state.get() != StateReady {
		return
	}
	s.state.set(StateRunning)
	if s.cfg.TimeBudget > 0 {
		s.deadline = time.Now().Add(s.cfg.TimeBudget)
	}

	s.initPool()

	for i := 0; i < s.cfg.Threads; i++ {
		s.wg.Add(1)
		go func(workerIndex int) {
			defer s.wg.Done()
			s.workerLoop(workerIndex)
		}(i)
	}
}

// Wait blocks until every worker goroutine has exited.
func (s *Solver) Wait() { s.wg.Wait() }

// Stop requests cooperative termination: every worker observes Done at its
// next iteration boundary and exits.
func (s *Solver) Stop() {
	s.finish("stop_requested")
}

// finish transitions to Done and publishes the TypeDone event exactly
// once, regardless of how many callers or goroutines race to call it.
func (s *Solver) finish(reason string) {
	s.state.finish()
	s.doneOnce.Do(func() {
		s.doneMu.Lock()
		s.doneReason = reason
		s.doneMu.Unlock()
		if s.bus != nil {
			s.bus.Emit(events.TypeDone, s.runID, map[string]any{"reason": reason})
		}
		s.log.Info().Str("reason", reason).Msg("solver done")
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
