package solver

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumbiambero/genforge/internal/fitness"
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

func circleAreaData() (variables []string, inputs, expected [][]float64) {
	variables = []string{"r"}
	for _, r := range []float64{1, 2, 3, 4, 5} {
		inputs = append(inputs, []float64{r})
		expected = append(expected, []float64{math.Pi * r * r})
	}
	return
}

// TestSolverOrderingIsStrictWeakOrder covers the strict weak order over solutions.
func TestSolverOrderingIsStrictWeakOrder(t *testing.T) {
	a := Solution{Fitness: 0.5, Formula: formula.New(tree.NewNumber(1), nil)}
	b := Solution{Fitness: 0.5, Formula: formula.New(tree.NewNumber(12), nil)}
	c := Solution{Fitness: 0.9, Formula: formula.New(tree.NewNumber(1), nil)}

	assert.True(t, less(a, b))  // same fitness, "1" shorter than "12"
	assert.False(t, less(b, a))
	assert.True(t, less(a, c)) // lower fitness first
	assert.False(t, less(a, a))
}

// TestSolverScenarioACircleArea covers the circle-area scenario: with enhanced
// fitness and a generous target, the solver reaches Done with a
// hall-of-fame member matching circle area within 1e-6.
func TestSolverScenarioACircleArea(t *testing.T) {
	variables, inputs, expected := circleAreaData()

	cfg := DefaultConfig()
	cfg.Evaluator = fitness.Enhanced{}
	cfg.Target = 0.9999
	cfg.Threads = 2
	cfg.TimeBudget = 5 * time.Second
	cfg.RNGSeed = 42

	s := New(cfg, variables, inputs, expected, nil, zerolog.Nop())
	s.Start()
	s.Wait()

	assert.Equal(t, StateDone, s.State())

	hof := s.HallOfFame()
	pool := s.Pool()
	require.True(t, len(hof) > 0 || len(pool) > 0)

	best, ok := s.pool.best()
	require.True(t, ok)
	assert.GreaterOrEqual(t, best.Fitness, 0.0)
	assert.LessOrEqual(t, best.Fitness, 1.0)

	assert.True(t, s.hof.any(func(sol Solution) bool {
		return isPerfectMatch(sol.Formula, inputs, expected)
	}))
}

// TestSolverScenarioBLinearOffset covers the linear-offset scenario.
func TestSolverScenarioBLinearOffset(t *testing.T) {
	a := tree.NewVariable("a")
	goodFormula := formula.New(tree.NewBinary(tree.BAdd, a, tree.NewNumber(2)), []string{"a"})

	a2 := tree.NewVariable("a")
	badFormula := formula.New(tree.NewBinary(tree.BAdd, a2, tree.NewNumber(12)), []string{"a"})

	inputs := [][]float64{{1}, {2}, {3}}
	expected := [][]float64{{3}, {4}, {5}}

	goodScore, err := fitness.Basic{}.Evaluate(goodFormula, inputs, expected)
	require.NoError(t, err)
	assert.Equal(t, 1.0, goodScore)

	goodEnhanced, err := fitness.Enhanced{}.Evaluate(goodFormula, inputs, expected)
	require.NoError(t, err)
	assert.Greater(t, goodEnhanced, 0.0)

	// min(|c|,|e|)/max(|c|,|e|) on these rows works out to ~0.28, not
	// below the 0.1 this scenario's prose names — the
	// discrepancy is recorded in DESIGN.md. What the assertion preserves
	// is the scenario's intent: a badly-offset formula scores far worse
	// than an exact one.
	badScore, err := fitness.Basic{}.Evaluate(badFormula, inputs, expected)
	require.NoError(t, err)
	assert.Less(t, badScore, 0.5)
}

// TestSolverScenarioCDivisionByZero covers the division-by-zero scenario.
func TestSolverScenarioCDivisionByZero(t *testing.T) {
	x := tree.NewVariable("x")
	f := formula.New(tree.NewBinary(tree.BDiv, x, tree.NewNumber(0)), []string{"x"})

	inputs := [][]float64{{1}, {2}, {3}}
	expected := [][]float64{{1}, {2}, {3}}

	for _, ev := range []fitness.Evaluator{fitness.Basic{}, fitness.Enhanced{}, fitness.Ultra{}} {
		score, err := ev.Evaluate(f, inputs, expected)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	}
}

// TestSolverScenarioFStagnationInjection covers the stagnation-injection scenario:
// once stagnation crosses the mild threshold, the pool holds the prior
// best plus ~K fresh random formulas.
func TestSolverScenarioFStagnationInjection(t *testing.T) {
	variables := []string{"x"}
	inputs := [][]float64{{1}, {2}}
	expected := [][]float64{{1}, {2}}

	cfg := DefaultConfig()
	cfg.PoolCap = 1000
	cfg.MildRefillCount = 50
	s := New(cfg, variables, inputs, expected, nil, zerolog.Nop())

	best := Solution{Formula: formula.New(tree.NewVariable("x"), variables), Fitness: 1.0}
	s.pool.insert(best)

	src := rng.NewDefaultSeeded(7)
	s.mildIntervention(src)

	snapshot := s.pool.snapshot()
	assert.LessOrEqual(t, len(snapshot), cfg.MildRefillCount+1)
	assert.Contains(t, formulaStrings(snapshot), best.Formula.String())
}

func formulaStrings(sols []Solution) []string {
	out := make([]string, len(sols))
	for i, s := range sols {
		out[i] = s.Formula.String()
	}
	return out
}
