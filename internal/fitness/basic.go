package fitness

import "github.com/cumbiambero/genforge/internal/formula"

// Basic scores a formula by partial credit: an exact match (within eps)
// earns full credit, otherwise a row earns the magnitude-ratio partial
// score. Any non-finite row result zeroes the whole score.
type Basic struct{}

func (Basic) Evaluate(f *formula.Formula, inputs, expected [][]float64) (float64, error) {
	results, targets, err := evaluateRows(f, inputs, expected)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	allExact := true
	sum := 0.0
	for i, result := range results {
		if isNonFinite(result) {
			return 0, nil
		}
		diff := result - targets[i]
		if diff < 0 {
			diff = -diff
		}
		if diff < eps {
			sum += 1.0
			continue
		}
		allExact = false
		sum += partial(result, targets[i])
	}

	return clampCap(sum/float64(len(results)), allExact), nil
}
