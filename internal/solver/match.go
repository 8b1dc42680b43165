package solver

import (
	"math"

	"github.com/cumbiambero/genforge/internal/formula"
)

// qualifiesForHallOfFame implements the hall-of-fame entry
// condition: fitness ≥ ALMOST_PERFECT, fitness ≥ the configured target, or
// a verified perfect match (every row within EPS). The perfect-match check
// is only run once the cheaper fitness comparisons fail.
func (s *Solver) qualifiesForHallOfFame(sol Solution) bool {
	if sol.Fitness >= almostPerfect || sol.Fitness >= s.cfg.Target {
		return true
	}
	return isPerfectMatch(sol.Formula, s.inputs, s.expected)
}

// isPerfectMatch reports whether every row evaluates within perfectMatchEPS
// of its expected (column-0) value.
func isPerfectMatch(f *formula.Formula, inputs, expected [][]float64) bool {
	if len(inputs) == 0 || len(inputs) != len(expected) {
		return false
	}
	for i, row := range inputs {
		if len(expected[i]) == 0 {
			return false
		}
		result, err := f.Evaluate(row)
		if err != nil {
			return false
		}
		if math.IsNaN(result) || math.IsInf(result, 0) || result == formula.NonFiniteSentinel {
			return false
		}
		diff := result - expected[i][0]
		if diff < 0 {
			diff = -diff
		}
		if diff >= perfectMatchEPS {
			return false
		}
	}
	return true
}
