package changer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

const precisionTweak = 0.05 // ±5%

// PrecisionTuner applies a fine percentage tweak to each numeric leaf,
// independently with p=½.
type PrecisionTuner struct{}

func (PrecisionTuner) Tag() Tag { return TagPrecisionTuner }

func (PrecisionTuner) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			delta := (src.Float64()*2 - 1) * precisionTweak
			n.SetValue(n.Value * (1 + delta))
		}
	}
	return clone, nil
}

const (
	rangeLow  = 0.1
	rangeHigh = 100.0
)

// RangeOptimizer rescales out-of-range numeric leaves (by a power of ten)
// to bring their magnitude back into [0.1, 100], independently with p=½.
type RangeOptimizer struct{}

func (RangeOptimizer) Tag() Tag { return TagRangeOptimizer }

func (RangeOptimizer) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(rescaleIntoRange(n.Value))
		}
	}
	return clone, nil
}

func rescaleIntoRange(v float64) float64 {
	if v == 0 {
		return 0
	}
	sign := 1.0
	if v < 0 {
		sign = -1.0
		v = -v
	}
	for v > rangeHigh {
		v /= 10
	}
	for v < rangeLow {
		v *= 10
	}
	return sign * v
}

// nonlinearKinds is the bounded set NonlinearityInjector wraps a node in —
// each already domain-safe per internal/tree's evaluation policy.
var nonlinearKinds = []tree.UnaryKind{
	tree.UTanh, tree.USigmoid, tree.USoftSat, tree.UAbs, tree.USquare, tree.ULn, tree.UExp,
}

// NonlinearityInjector wraps a randomly chosen node in a bounded
// nonlinearity (tanh, sigmoid, soft-saturation, |·|, x², safe log/exp).
type NonlinearityInjector struct{}

func (NonlinearityInjector) Tag() Tag { return TagNonlinearityInjector }

func (NonlinearityInjector) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	root := clone.Root().Inner
	nodes := tree.Collect(root)
	target := nodes[src.IntN(len(nodes))]

	kind := nonlinearKinds[src.IntN(len(nonlinearKinds))]
	wrapped := tree.NewUnary(kind, cloneStandalone(target))

	if target == root {
		root = wrapped
	} else {
		root = replaceNodeInPlace(root, target, wrapped)
	}

	// the injected node's operand is a fresh clone, not the original tree's
	// node, so the binding-table index built at Clone time is stale — the
	// result is rebuilt into a new Formula rather than returned directly.
	return formula.New(root, clone.Variables()), nil
}

// cloneStandalone detaches target from its current tree before it becomes
// the operand of the newly injected unary node.
func cloneStandalone(target *tree.Node) *tree.Node {
	return target.Clone()
}
