package changer

import (
	"math"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// canonicalOutliers is the snap set used for pinning outlier numeric
// leaves: 0, ±1, ±2, ½.
var canonicalOutliers = []float64{0, 1, -1, 2, -2, 0.5}

const outlierThreshold = 10.0

// FunctionTransformer pins outlier numeric leaves (magnitude beyond
// outlierThreshold, or vanishingly small) to the nearest canonical value.
type FunctionTransformer struct{}

func (FunctionTransformer) Tag() Tag { return TagFunctionTransformer }

func (FunctionTransformer) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if !src.Coin() {
			continue
		}
		if math.Abs(n.Value) > outlierThreshold || (n.Value != 0 && math.Abs(n.Value) < 0.01) {
			n.SetValue(nearestCanonical(n.Value))
		}
	}
	return clone, nil
}

func nearestCanonical(v float64) float64 {
	best := canonicalOutliers[0]
	bestDist := math.Abs(v - best)
	for _, c := range canonicalOutliers[1:] {
		if d := math.Abs(v - c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// VariableSwapper swaps variable identities between the two children of a
// binary node, when both children are bare variables, independently with
// p=½ per node.
type VariableSwapper struct{}

func (VariableSwapper) Tag() Tag { return TagVariableSwapper }

func (VariableSwapper) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetBinaryOperators() {
		if n.Left.Kind == tree.KindVariable && n.Right.Kind == tree.KindVariable && src.Coin() {
			n.Left.Name, n.Right.Name = n.Right.Name, n.Left.Name
		}
	}
	// renaming existing Variable nodes in place stales the binding-table
	// index built at Clone time, so the result is rebuilt into a fresh
	// Formula rather than returned directly.
	return formula.New(clone.Root().Inner, clone.Variables()), nil
}

// StructureMutator performs a combined child-swap across two distinct
// binary nodes: a right child from one trades places with a right child
// from another, reshaping the tree beyond what Flipper's single-node
// left/right swap reaches.
type StructureMutator struct{}

func (StructureMutator) Tag() Tag { return TagStructureMutator }

func (StructureMutator) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	ops := clone.GetBinaryOperators()
	if len(ops) < 2 {
		return clone, nil
	}
	i := src.IntN(len(ops))
	j := src.IntN(len(ops))
	if i == j {
		j = (j + 1) % len(ops)
	}
	ops[i].Right, ops[j].Right = ops[j].Right, ops[i].Right
	return clone, nil
}
