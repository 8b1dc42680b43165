package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeVariableNamesCollectsDistinctNames(t *testing.T) {
	x := NewVariable("x")
	y := NewVariable("y")
	x2 := NewVariable("x")
	n := NewBinary(BAdd, NewBinary(BMul, x, y), x2)

	names := FreeVariableNames(n)
	assert.Len(t, names, 2)
	assert.Contains(t, names, "x")
	assert.Contains(t, names, "y")
}

func TestCollectReturnsEveryNodePreOrder(t *testing.T) {
	x := NewVariable("x")
	n := NewBinary(BAdd, x, NewNumber(1))

	nodes := Collect(n)
	assert.Len(t, nodes, 3)
	assert.Same(t, n, nodes[0])
	assert.Same(t, x, nodes[1])
}

func TestWalkIsNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Walk(nil, func(*Node) {})
	})
}
