package fitness

import "github.com/cumbiambero/genforge/internal/formula"

// exactThreshold is the per-row error below which Ultra considers every
// row an exact hit and returns the literal 1.0, bypassing the blend.
const exactThreshold = 1e-10

// Ultra weights mirror Enhanced's shape but gentler (5% rather than 10%
// per secondary term) and with accuracy measured by relative/absolute
// error rather than Basic's magnitude-ratio partial credit, plus a
// near-perfect-row bonus term.
const (
	ultraAccuracyWeight     = 0.75
	ultraComplexityWeight   = 0.05
	ultraRangeWeight        = 0.05
	ultraMonotonicityWeight = 0.05
	ultraNearPerfectWeight  = 0.10
)

// Ultra scores near-exact fits with finer resolution than Basic/Enhanced:
// per-row error is relative for large-magnitude expected values and
// absolute otherwise, and a "near-perfect count" bonus rewards rows whose
// error already sits within 1% of the expected magnitude.
type Ultra struct{}

func (Ultra) Evaluate(f *formula.Formula, inputs, expected [][]float64) (float64, error) {
	results, targets, err := evaluateRows(f, inputs, expected)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	allExact := true
	accSum := 0.0
	nearPerfect := 0
	for i, result := range results {
		if isNonFinite(result) {
			return 0, nil
		}
		diff := result - targets[i]
		if diff < 0 {
			diff = -diff
		}
		if diff >= exactThreshold {
			allExact = false
		}

		accSum += rowAccuracy(result, targets[i])
		if diff < nearPerfectThreshold(targets[i]) {
			nearPerfect++
		}
	}

	if allExact {
		return 1.0, nil
	}

	accuracy := accSum / float64(len(results))
	complexity := complexityPenalty(f)
	rangeTerm := rangeConsistency(results, targets)
	monotonicity := monotonicityBonus(results, targets)
	nearPerfectBonus := float64(nearPerfect) / float64(len(results))

	score := ultraAccuracyWeight*accuracy +
		ultraComplexityWeight*(1-complexity) +
		ultraRangeWeight*rangeTerm +
		ultraMonotonicityWeight*monotonicity +
		ultraNearPerfectWeight*nearPerfectBonus

	return clampCap(score, false), nil
}

func rowAccuracy(result, expected float64) float64 {
	diff := result - expected
	if diff < 0 {
		diff = -diff
	}
	var errTerm float64
	if abs(expected) > 1 {
		errTerm = diff / abs(expected)
	} else {
		errTerm = diff
	}
	v := 1 - errTerm
	if v < 0 {
		return 0
	}
	return v
}

func nearPerfectThreshold(expected float64) float64 {
	t := 0.01 * abs(expected)
	if t < 0.01 {
		return 0.01
	}
	return t
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
