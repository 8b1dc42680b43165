package fitness

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cumbiambero/genforge/internal/formula"
)

// monotonicityEpsilon is the dead-zone width below which two adjacent
// values are treated as "flat" rather than trending up or down.
const monotonicityEpsilon = 1e-9

// Enhanced blends accuracy with complexity, output-range consistency, and
// monotonicity-matching against the expected series.
type Enhanced struct{}

func (Enhanced) Evaluate(f *formula.Formula, inputs, expected [][]float64) (float64, error) {
	accuracy, err := Basic{}.Evaluate(f, inputs, expected)
	if err != nil {
		return 0, err
	}

	results, targets, err := evaluateRows(f, inputs, expected)
	if err != nil {
		return 0, err
	}

	complexity := complexityPenalty(f)
	rangeTerm := rangeConsistency(results, targets)
	monotonicity := monotonicityBonus(results, targets)

	score := 0.70*accuracy + 0.10*(1-complexity) + 0.10*rangeTerm + 0.10*monotonicity
	return clampCap(score, false), nil
}

func complexityPenalty(f *formula.Formula) float64 {
	lengthPenalty := float64(len(f.String())) / 200
	if lengthPenalty > 1 {
		lengthPenalty = 1
	}
	opsPenalty := float64(f.OpCount()) / 20
	if opsPenalty > 1 {
		opsPenalty = 1
	}
	return (lengthPenalty + opsPenalty) / 2
}

func rangeConsistency(results, targets []float64) float64 {
	if len(results) == 0 {
		return 0
	}
	outputRange := spread(results)
	expectedRange := spread(targets)

	if expectedRange == 0 {
		if outputRange == 0 {
			return 1
		}
		return 0
	}

	diff := outputRange - expectedRange
	if diff < 0 {
		diff = -diff
	}
	v := 1 - diff/expectedRange
	if v < 0 {
		return 0
	}
	return v
}

func spread(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values) - floats.Min(values)
}

func monotonicityBonus(results, targets []float64) float64 {
	if len(results) < 2 {
		return 1
	}
	matches := 0
	pairs := len(results) - 1
	for i := 0; i < pairs; i++ {
		if trendSign(results[i], results[i+1]) == trendSign(targets[i], targets[i+1]) {
			matches++
		}
	}
	return float64(matches) / float64(pairs)
}

func trendSign(a, b float64) int {
	diff := b - a
	if diff < 0 {
		diff = -diff
	}
	if diff < monotonicityEpsilon {
		return 0
	}
	if b > a {
		return 1
	}
	return -1
}
