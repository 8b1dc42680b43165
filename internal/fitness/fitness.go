// Package fitness implements three evaluators: a
// row-by-row partial-credit metric (Basic), a weighted multi-term blend
// (Enhanced), and a relative/absolute-error variant tuned for near-exact
// fits (Ultra). All three accept (formula, inputRows, expectedRows) and
// return a real in [0, 1].
package fitness

import (
	"math"

	"github.com/cumbiambero/genforge/internal/errs"
	"github.com/cumbiambero/genforge/internal/formula"
)

// scoreCap is the ceiling every evaluator clamps an inexact result to — only a
// fully exact fit is allowed to return the literal 1.0.
const scoreCap = 0.999999

// eps is the exactness threshold used for Basic.
const eps = 1e-6

// Evaluator scores a formula against a data set, returning a value in
// [0, 1].
type Evaluator interface {
	Evaluate(f *formula.Formula, inputs, expected [][]float64) (float64, error)
}

// evaluateRows runs f over every input row and reports the column-0
// expected value alongside it. The Basic evaluator's resolved decision
// (see DESIGN.md) is that expected rows are read from column 0 only;
// additional columns are accepted but ignored.
func evaluateRows(f *formula.Formula, inputs, expected [][]float64) ([]float64, []float64, error) {
	if len(inputs) != len(expected) {
		return nil, nil, errs.Domainf("input has %d rows, expected has %d", len(inputs), len(expected))
	}
	results := make([]float64, len(inputs))
	targets := make([]float64, len(inputs))
	for i := range inputs {
		if len(expected[i]) == 0 {
			return nil, nil, errs.Domainf("expected row %d has no columns", i)
		}
		result, err := f.Evaluate(inputs[i])
		if err != nil {
			return nil, nil, err
		}
		results[i] = result
		targets[i] = expected[i][0]
	}
	return results, targets, nil
}

func isNonFinite(v float64) bool {
	return v == formula.NonFiniteSentinel || math.IsNaN(v) || math.IsInf(v, 0)
}

// partial implements the partial-credit metric with its two
// boundary cases for near-zero magnitudes.
func partial(c, e float64) float64 {
	a, b := math.Abs(c), math.Abs(e)
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	if hi < eps {
		if lo < 1 {
			return 0.5
		}
		return 1 / lo
	}
	if lo < eps {
		if hi < 1 {
			return 0.5
		}
		return 1 / hi
	}
	return lo / hi
}

func clampCap(v float64, allExact bool) float64 {
	if allExact {
		return 1.0
	}
	if v > scoreCap {
		return scoreCap
	}
	return v
}
