package changer

import (
	"math"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// targetedAnchors are the domain-specific "successful" constants
// TargetedTuner snaps toward.
var targetedAnchors = []float64{1, -1, 10, -10}

const targetedDelta = 0.1

// TargetedTuner snaps a numeric leaf to the nearest anchor in {1, -1, 10,
// -10} plus a small random delta, independently with p=½.
type TargetedTuner struct{}

func (TargetedTuner) Tag() Tag { return TagTargetedTuner }

func (TargetedTuner) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			anchor := snapTo(n.Value, targetedAnchors)
			n.SetValue(anchor + (src.Float64()*2-1)*targetedDelta)
		}
	}
	return clone, nil
}

// PatternOptimizer pulls each selected numeric leaf toward the formula's
// own mean leaf magnitude, with a small random delta — reinforcing
// whatever numeric pattern the rest of the formula already favors.
type PatternOptimizer struct{}

func (PatternOptimizer) Tag() Tag { return TagPatternOptimizer }

func (PatternOptimizer) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	numbers := clone.GetNumbers()
	if len(numbers) == 0 {
		return clone, nil
	}

	mean := meanMagnitude(numbers)
	for _, n := range numbers {
		if src.Coin() {
			sign := 1.0
			if n.Value < 0 {
				sign = -1.0
			}
			n.SetValue(sign*mean + (src.Float64()*2-1)*targetedDelta)
		}
	}
	return clone, nil
}

func meanMagnitude(numbers []*tree.Node) float64 {
	sum := 0.0
	for _, n := range numbers {
		sum += math.Abs(n.Value)
	}
	return sum / float64(len(numbers))
}
