package changer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// dropProbability is the small chance Simplifier additionally drops a
// binary node entirely, applied only once the simplified string grows
// past dropLengthThreshold characters.
const (
	dropProbability    = 0.05
	dropLengthThreshold = 60
)

// Simplifier applies the constant-folding/identity-elimination table to
// the root, and may additionally collapse a binary node into one of its
// children with small probability once the resulting string grows long.
type Simplifier struct{}

func (Simplifier) Tag() Tag { return TagSimplifier }

func (Simplifier) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	simplified := f.Root().Inner.Simplify()

	if len(simplified.String()) > dropLengthThreshold && src.Float64() < dropProbability {
		simplified = dropRandomBinary(simplified, src)
	}

	return formula.New(simplified, f.Variables()), nil
}

func dropRandomBinary(root *tree.Node, src rng.Source) *tree.Node {
	binaries := binaryNodes(root)
	if len(binaries) == 0 {
		return root
	}
	target := binaries[src.IntN(len(binaries))]

	var replacement *tree.Node
	if src.Coin() {
		replacement = target.Left
	} else {
		replacement = target.Right
	}
	return replaceNodeInPlace(root, target, replacement)
}

func binaryNodes(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	tree.Walk(n, func(node *tree.Node) {
		if node.Kind == tree.KindBinary {
			out = append(out, node)
		}
	})
	return out
}

// replaceNodeInPlace rewrites root so that every edge pointing at target
// instead points at replacement. If target is the root itself, replacement
// is returned directly.
func replaceNodeInPlace(root, target, replacement *tree.Node) *tree.Node {
	if root == target {
		return replacement
	}
	switch root.Kind {
	case tree.KindUnary:
		if root.Child == target {
			root.Child = replacement
		} else {
			replaceNodeInPlace(root.Child, target, replacement)
		}
	case tree.KindBinary:
		if root.Left == target {
			root.Left = replacement
		} else if root.Right == target {
			root.Right = replacement
		} else {
			replaceNodeInPlace(root.Left, target, replacement)
			replaceNodeInPlace(root.Right, target, replacement)
		}
	case tree.KindWrapper:
		if root.Inner == target {
			root.Inner = replacement
		} else {
			replaceNodeInPlace(root.Inner, target, replacement)
		}
	}
	return root
}
