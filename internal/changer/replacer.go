package changer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// OperationReplacer walks the tree; at each operation node, independently
// with p=½ it replaces the node's kind with a freshly drawn kind of the
// same arity (children untouched), and independently with p=½ it recurses
// into the (possibly just-replaced) subtree.
type OperationReplacer struct{}

func (OperationReplacer) Tag() Tag { return TagOperationReplacer }

func (OperationReplacer) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	replaceOps(clone.Root().Inner, src)
	return clone, nil
}

func replaceOps(n *tree.Node, src rng.Source) {
	if n == nil {
		return
	}
	switch n.Kind {
	case tree.KindUnary:
		if src.Coin() {
			n.Unary = tree.AllUnaryKinds[src.IntN(len(tree.AllUnaryKinds))]
		}
		if src.Coin() {
			replaceOps(n.Child, src)
		}
	case tree.KindBinary:
		if src.Coin() {
			n.Binary = tree.AllBinaryKinds[src.IntN(len(tree.AllBinaryKinds))]
		}
		if src.Coin() {
			replaceOps(n.Left, src)
			replaceOps(n.Right, src)
		}
	case tree.KindWrapper:
		replaceOps(n.Inner, src)
	}
}
