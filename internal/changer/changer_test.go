package changer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

func sampleFormula() *formula.Formula {
	x := tree.NewVariable("x")
	y := tree.NewVariable("y")
	root := tree.NewBinary(tree.BAdd, tree.NewBinary(tree.BMul, x, tree.NewNumber(3)), y)
	return formula.New(root, []string{"x", "y"})
}

func TestCatalogHasOneEntryPerDistinctTag(t *testing.T) {
	catalog := Catalog()
	seen := make(map[Tag]bool)
	for _, c := range catalog {
		assert.False(t, seen[c.Tag()], "duplicate tag %s", c.Tag())
		seen[c.Tag()] = true
	}
	assert.Len(t, catalog, 23)
}

func TestEveryChangerLeavesInputUnchanged(t *testing.T) {
	for _, c := range Catalog() {
		original := sampleFormula()
		before := original.String()

		src := rng.NewDefaultSeeded(1)
		_, err := c.Change(original, src)
		require.NoError(t, err, "changer %s", c.Tag())

		assert.Equal(t, before, original.String(), "changer %s mutated its input", c.Tag())
	}
}

func TestEveryChangerProducesAValidFormula(t *testing.T) {
	for _, c := range Catalog() {
		original := sampleFormula()
		src := rng.NewDefaultSeeded(42)

		result, err := c.Change(original, src)
		require.NoError(t, err, "changer %s", c.Tag())
		require.NotNil(t, result, "changer %s", c.Tag())

		_, evalErr := result.Evaluate(make([]float64, len(result.Variables())))
		assert.NoError(t, evalErr, "changer %s produced an unevaluable formula", c.Tag())
	}
}

func TestFlipperDeterministicSwap(t *testing.T) {
	f := sampleFormula()
	src := rng.NewSequence([]bool{true}, nil)

	result, err := Flipper{}.Change(f, src)
	require.NoError(t, err)

	// with every coin true, every binary node's children swap: (x*3)+y
	// becomes y+(3*x).
	assert.Equal(t, "(y + (3 * x))", result.String())
}

func TestMergerCombinesSubtreesFromBothParents(t *testing.T) {
	a := sampleFormula()
	b := sampleFormula()
	src := rng.NewSequence([]bool{true}, []int{0})

	result, err := Merger{}.Cross(a, b, src)
	require.NoError(t, err)
	require.NotNil(t, result)

	_, evalErr := result.Evaluate(make([]float64, len(result.Variables())))
	assert.NoError(t, evalErr)
}

func TestPurgerReplacesTreeEntirely(t *testing.T) {
	f := sampleFormula()
	src := rng.NewDefaultSeeded(3)

	result, err := Purger{}.Change(f, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, result.Variables())
}

func TestAdaptiveMutatorIntensityTracksStagnationAndProgress(t *testing.T) {
	m := NewAdaptiveMutator()
	base := m.Intensity()

	m.ReportStagnation()
	assert.Greater(t, m.Intensity(), base)

	m.ReportProgress()
	assert.Less(t, m.Intensity(), m.Intensity()+1) // sanity: still a valid float

	raised := m.Intensity()
	m.ReportProgress()
	assert.LessOrEqual(t, m.Intensity(), raised)
}

func TestSimplifierFoldsConstants(t *testing.T) {
	x := tree.NewVariable("x")
	root := tree.NewBinary(tree.BAdd, tree.NewNumber(0), x)
	f := formula.New(root, []string{"x"})

	result, err := Simplifier{}.Change(f, rng.NewDefaultSeeded(1))
	require.NoError(t, err)
	assert.Equal(t, "x", result.String())
}
