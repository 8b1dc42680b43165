package solver

import (
	"time"

	"github.com/cumbiambero/genforge/internal/changer"
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/producer"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// initPool seeds the initial population: ~InitialRandomCount
// random formulas, plus a small set of heuristic seeds built from the
// first variable, all scored and inserted (the ordered set's insert
// already truncates to the pool cap).
func (s *Solver) initPool() {
	src := s.newRNG(-1)

	for i := 0; i < s.cfg.InitialRandomCount; i++ {
		f := producer.New(producer.DefaultConfig(), s.variables, src)
		s.scoreAndInsert(f, "")
	}

	for _, f := range heuristicSeeds(s.variables) {
		s.scoreAndInsert(f, "")
	}
}

// heuristicSeeds builds "v0², π·v0², 2·π·v0" seeds from the
// first declared variable, to accelerate common physical-formula targets
// like circle area or circumference.
func heuristicSeeds(variables []string) []*formula.Formula {
	if len(variables) == 0 {
		return nil
	}
	v0 := variables[0]

	square := tree.NewBinary(tree.BPow, tree.NewVariable(v0), tree.NewNumber(2))
	piSquare := tree.NewBinary(tree.BMul, tree.NewConstant(tree.ConstPi), tree.NewBinary(tree.BPow, tree.NewVariable(v0), tree.NewNumber(2)))
	twoPiV := tree.NewBinary(tree.BMul, tree.NewBinary(tree.BMul, tree.NewNumber(2), tree.NewConstant(tree.ConstPi)), tree.NewVariable(v0))

	return []*formula.Formula{
		formula.New(square, variables),
		formula.New(piSquare, variables),
		formula.New(twoPiV, variables),
	}
}

// scoreAndInsert evaluates f under the configured Evaluator (errors demote
// to fitness 0) and inserts it into the pool, promoting to
// the hall-of-fame if it qualifies. tag records which changer (if any)
// produced f; the empty tag marks a seed formula.
func (s *Solver) scoreAndInsert(f *formula.Formula, tag changer.Tag) Solution {
	score, err := s.cfg.Evaluator.Evaluate(f, s.inputs, s.expected)
	if err != nil {
		score = 0
	}

	sol := Solution{Formula: f, LastChangerTag: tag, Fitness: score}
	s.pool.insert(sol)

	if s.qualifiesForHallOfFame(sol) {
		s.hof.insert(sol)
	}
	return sol
}

// newRNG builds a worker's private RNG source. workerIndex -1 means the
// init-time source. Deterministic when cfg.RNGSeed is non-zero, otherwise
// time-seeded per caller so concurrent workers don't share a stream.
func (s *Solver) newRNG(workerIndex int) rng.Source {
	if s.cfg.RNGSeed != 0 {
		return rng.NewDefaultSeeded(s.cfg.RNGSeed + int64(workerIndex))
	}
	return rng.NewDefaultSeeded(time.Now().UnixNano() + int64(workerIndex)*997)
}
