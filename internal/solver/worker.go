package solver

import (
	"time"

	"github.com/cumbiambero/genforge/internal/changer"
	"github.com/cumbiambero/genforge/internal/errs"
	"github.com/cumbiambero/genforge/internal/events"
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/producer"
	"github.com/cumbiambero/genforge/internal/rng"
)

// errMutationPanic demotes a changer panic to the same MutationError
// treatment an ordinary changer error gets: skip the iteration, never
// propagate.
var errMutationPanic = errs.Mutationf("changer panicked")

// workerLoop is one thread's independent copy of the solver's 8-step
// loop. It runs until Done is observed, the deadline or iteration cap is
// exceeded, or a termination hook fires.
func (s *Solver) workerLoop(workerIndex int) {
	src := s.newRNG(workerIndex)
	localBest := -1.0
	stagnation := 0

	for iteration := 0; iteration < s.cfg.IterationCap; iteration++ {
		if s.state.isDone() {
			return
		}
		if !s.deadline.IsZero() && time.Now().After(s.deadline) {
			s.finish("deadline")
			return
		}

		size := s.pool.size()
		if size == 0 {
			continue // PoolInvariant: empty read, retry next iteration
		}

		best, ok := s.pool.best()
		if !ok {
			continue
		}
		offset := 1
		if src.Coin() {
			offset = size / 2
		}
		existing, ok := s.pool.at(offset)
		if !ok {
			existing = best
		}

		candidate, tag, err := s.applyChanger(best.Formula, existing.Formula, src)
		if err != nil {
			continue // MutationError: skip the iteration
		}

		sol := s.scoreAndInsert(candidate, tag)

		if sol.Fitness > localBest {
			localBest = sol.Fitness
			stagnation = 0
			if s.bus != nil {
				s.bus.Emit(events.TypeNewBest, s.runID, map[string]any{
					"formula": candidate.String(), "fitness": sol.Fitness, "changer": string(tag),
				})
			}
		} else {
			stagnation++
		}

		if stagnation == s.cfg.StagnationMildThreshold {
			s.mildIntervention(src)
		}
		if stagnation == 2*s.cfg.StagnationMildThreshold {
			s.aggressiveIntervention(src)
			stagnation = 0
		}

		if s.checkTermination() {
			return
		}

		if iteration%50 == 0 && s.bus != nil {
			b, _ := s.pool.best()
			s.bus.Emit(events.TypeTick, s.runID, map[string]any{
				"iteration": iteration, "bestFitness": b.Fitness, "poolSize": s.pool.size(),
			})
		}
	}

	s.finish("iteration_cap")
}

// checkTermination implements the termination hooks and the
// "hall-of-fame filled" state-machine transition.
func (s *Solver) checkTermination() bool {
	if best, ok := s.pool.best(); ok && best.Fitness >= s.cfg.Target {
		s.finish("target_reached")
		return true
	}
	if s.hof.size() >= s.cfg.HallOfFameCap {
		s.finish("hall_of_fame_filled")
		return true
	}
	if s.pool.any(func(sol Solution) bool { return isPerfectMatch(sol.Formula, s.inputs, s.expected) }) {
		s.finish("perfect_match")
		return true
	}
	return false
}

// applyChanger implements step 2-4 of the worker loop: pick a changer (or
// decide to merge), pick which snapshot to mutate, and apply it, demoting
// any panic to a MutationError that the caller skips.
func (s *Solver) applyChanger(best, existing *formula.Formula, src rng.Source) (result *formula.Formula, tag changer.Tag, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errMutationPanic
		}
	}()

	snapshot := s.pool.snapshot()
	chosen, ok := pickChanger(snapshot, s.catalog, src)

	if !ok {
		result, err = changer.Merger{}.Cross(best, existing, src)
		return result, changer.TagMerger, err
	}

	target := best
	if src.Coin() {
		target = existing
	}
	result, err = chosen.Change(target, src)
	return result, chosen.Tag(), err
}

// pickChanger: with p=½ pick uniformly at
// random from the catalog; otherwise match a randomly chosen existing
// solution's lastChangerTag. A single-solution pool always signals "use
// Merger" (ok=false), as does failing to find a catalog entry for a
// sampled tag (e.g. a solution whose lastChangerTag is itself TagMerger).
func pickChanger(pool []Solution, catalog []changer.Changer, src rng.Source) (changer.Changer, bool) {
	if len(pool) <= 1 {
		return nil, false
	}
	if src.Coin() {
		return catalog[src.IntN(len(catalog))], true
	}
	picked := pool[src.IntN(len(pool))]
	for _, c := range catalog {
		if c.Tag() == picked.LastChangerTag {
			return c, true
		}
	}
	return nil, false
}

// mildIntervention: keep only the best
// solution, then inject K fresh random formulas.
func (s *Solver) mildIntervention(src rng.Source) {
	s.pool.keepBestOnly()
	for i := 0; i < s.cfg.MildRefillCount; i++ {
		f := producer.New(producer.DefaultConfig(), s.variables, src)
		s.scoreAndInsert(f, "")
	}
	if s.bus != nil {
		s.bus.Emit(events.TypeStagnation, s.runID, map[string]any{"level": "mild"})
	}
}

// aggressiveIntervention: keep the top 3
// solutions, then regenerate variants using a curated "creative" changer
// subset applied to each survivor.
func (s *Solver) aggressiveIntervention(src rng.Source) {
	s.pool.keepTopN(s.cfg.AggressiveKeepTop)
	for _, sol := range s.pool.snapshot() {
		for _, c := range s.creativeSubset {
			variant, err := c.Change(sol.Formula, src)
			if err != nil {
				continue
			}
			s.scoreAndInsert(variant, c.Tag())
		}
	}
	if s.bus != nil {
		s.bus.Emit(events.TypeStagnation, s.runID, map[string]any{"level": "aggressive"})
	}
}
