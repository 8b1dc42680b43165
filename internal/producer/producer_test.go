package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

func TestNewWithOneVariableProducesUnaryRoot(t *testing.T) {
	src := rng.NewSequence([]bool{true}, []int{0})
	f := New(DefaultConfig(), []string{"x"}, src)

	root := f.Root()
	require.Equal(t, tree.KindUnary, root.Inner.Kind)
	assert.Equal(t, "x", root.Inner.Child.Name)
}

func TestNewWithTwoVariablesProducesBinaryRoot(t *testing.T) {
	src := rng.NewSequence([]bool{true}, []int{0})
	f := New(DefaultConfig(), []string{"x", "y"}, src)

	root := f.Root()
	require.Equal(t, tree.KindBinary, root.Inner.Kind)
	assert.Equal(t, "x", root.Inner.Left.Name)
	assert.Equal(t, "y", root.Inner.Right.Name)
}

func TestNewWithOddVariableCountLeavesLastUnpaired(t *testing.T) {
	src := rng.NewSequence([]bool{true}, []int{0})
	f := New(DefaultConfig(), []string{"a", "b", "c"}, src)

	names := make(map[string]struct{})
	for _, n := range collectVariableNames(f.Root()) {
		names[n] = struct{}{}
	}
	assert.Contains(t, names, "a")
	assert.Contains(t, names, "b")
	assert.Contains(t, names, "c")

	// a and b pair up; c stays a bare leaf on the right of the fold.
	assert.Equal(t, "c", f.Root().Inner.Right.Name)
}

func TestNewEvaluatesToFiniteResult(t *testing.T) {
	src := rng.NewDefaultSeeded(7)
	f := New(DefaultConfig(), []string{"x", "y", "z"}, src)

	_, err := f.Evaluate([]float64{1, 2, 3})
	require.NoError(t, err) // finite or clamped sentinel, never an error
}

func TestConfigRestrictsEligibleKinds(t *testing.T) {
	cfg := Config{Unary: []tree.UnaryKind{tree.USin}, Binary: []tree.BinaryKind{tree.BAdd}}
	src := rng.NewSequence([]bool{true}, []int{5}) // IntN(1) always reduces to 0 regardless
	f := New(cfg, []string{"x", "y", "z", "w"}, src)

	tree.Walk(f.Root(), func(n *tree.Node) {
		if n.Kind == tree.KindUnary {
			assert.Equal(t, tree.USin, n.Unary)
		}
		if n.Kind == tree.KindBinary {
			assert.Equal(t, tree.BAdd, n.Binary)
		}
	})
}

func collectVariableNames(n *tree.Node) []string {
	var names []string
	tree.Walk(n, func(node *tree.Node) {
		if node.Kind == tree.KindVariable {
			names = append(names, node.Name)
		}
	})
	return names
}
