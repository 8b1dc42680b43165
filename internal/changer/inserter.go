package changer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// NumberInserter replaces the root with binary(root, leaf), where leaf is
// drawn from a small weighted catalog: a small integer, a decimal in
// (0.1, 1.0], or one of the two named constants.
type NumberInserter struct{}

func (NumberInserter) Tag() Tag { return TagNumberInserter }

func (NumberInserter) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	leaf := randomLeaf(src)
	op := tree.AllBinaryKinds[src.IntN(len(tree.AllBinaryKinds))]
	replacement := tree.NewBinary(op, clone.Root().Inner, leaf)
	return clone.WithRoot(replacement), nil
}

// randomLeaf draws a small integer (weight 0.4), a decimal in (0.1, 1.0]
// (weight 0.4), π (weight 0.1), or e (weight 0.1).
func randomLeaf(src rng.Source) *tree.Node {
	roll := src.Float64()
	switch {
	case roll < 0.4:
		return tree.NewNumber(float64(1 + src.IntN(9)))
	case roll < 0.8:
		return tree.NewNumber(1.0 - src.Float64()*0.9)
	case roll < 0.9:
		return tree.NewConstant(tree.ConstPi)
	default:
		return tree.NewConstant(tree.ConstE)
	}
}
