package changer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
)

// Flipper independently, with p=½, swaps the left and right children of
// each binary node.
type Flipper struct{}

func (Flipper) Tag() Tag { return TagFlipper }

func (Flipper) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetBinaryOperators() {
		if src.Coin() {
			n.Left, n.Right = n.Right, n.Left
		}
	}
	return clone, nil
}
