package changer

import (
	"math"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// powersOfTwo is Filter's snap set.
var powersOfTwo = []float64{0.0625, 0.125, 0.25, 0.5, 1, 2, 4, 8, 16, 32}

// commonExponents is Exponential's snap set — the exponents most useful in
// a power-law fit.
var commonExponents = []float64{-2, -1, -0.5, 0.5, 1, 1.5, 2, 3}

// physicsRatios is PowerRelationship's snap set: common audio/physics
// ratios (octave, perfect fifth/fourth, golden ratio, speed-of-light-scale
// exponent 3).
var physicsRatios = []float64{2.0, 1.5, 1.3333333333333333, 1.618033988749895, 3.0}

func snapTo(v float64, catalog []float64) float64 {
	best := catalog[0]
	bestDist := math.Abs(v - best)
	for _, c := range catalog[1:] {
		if d := math.Abs(v - c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func snapNumbers(clone *formula.Formula, src rng.Source, catalog []float64) *formula.Formula {
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(snapTo(n.Value, catalog))
		}
	}
	return clone
}

// Filter snaps numeric leaves to the nearest power of two.
type Filter struct{}

func (Filter) Tag() Tag { return TagFilter }

func (Filter) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	return snapNumbers(f.Clone(), src, powersOfTwo), nil
}

// Exponential snaps exponent-position numeric leaves (the right child of a
// BPow node) to a common exponent.
type Exponential struct{}

func (Exponential) Tag() Tag { return TagExponential }

func (Exponential) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetBinaryOperators() {
		if n.Binary == tree.BPow && n.Right.Kind == tree.KindNumber && src.Coin() {
			n.Right.SetValue(snapTo(n.Right.Value, commonExponents))
		}
	}
	return clone, nil
}

// PowerRelationship snaps numeric leaves to a common audio/physics ratio.
type PowerRelationship struct{}

func (PowerRelationship) Tag() Tag { return TagPowerRelationship }

func (PowerRelationship) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	return snapNumbers(f.Clone(), src, physicsRatios), nil
}
