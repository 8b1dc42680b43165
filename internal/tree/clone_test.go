package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneProducesIndependentTree(t *testing.T) {
	x := NewVariable("x")
	original := NewBinary(BAdd, x, NewNumber(1))

	clone := original.Clone()
	clone.Left.Value = 99
	clone.Right.Value = 42

	assert.Equal(t, 0.0, original.Left.Value)
	assert.Equal(t, 1.0, original.Right.Value)
	assert.Equal(t, 99.0, clone.Left.Value)
	assert.Equal(t, 42.0, clone.Right.Value)
}

func TestCloneSharesConstants(t *testing.T) {
	c := NewConstant(ConstPi)
	n := NewUnary(USin, c)
	clone := n.Clone()

	assert.Same(t, c, clone.Child)
}

func TestCloneNilIsSafe(t *testing.T) {
	var n *Node
	assert.Nil(t, n.Clone())
}

func TestCloneMatchesOriginalEvaluation(t *testing.T) {
	x := NewVariable("x")
	x.Value = 3
	n := NewBinary(BMul, x, NewUnary(USquare, NewNumber(2)))

	clone := n.Clone()
	assert.Equal(t, n.Evaluate(), clone.Evaluate())
}
