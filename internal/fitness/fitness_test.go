package fitness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/tree"
)

func circleArea() *formula.Formula {
	r := tree.NewVariable("r")
	root := tree.NewBinary(tree.BMul, tree.NewConstant(tree.ConstPi), tree.NewBinary(tree.BPow, r, tree.NewNumber(2)))
	return formula.New(root, []string{"r"})
}

func TestBasicExactMatchReturnsOne(t *testing.T) {
	f := circleArea()
	inputs := [][]float64{{1}, {2}, {3}}
	expected := [][]float64{{math.Pi * 1}, {math.Pi * 4}, {math.Pi * 9}}

	score, err := Basic{}.Evaluate(f, inputs, expected)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestBasicPartialCreditForInexactMatch(t *testing.T) {
	x := tree.NewVariable("x")
	f := formula.New(x, []string{"x"})

	inputs := [][]float64{{10}}
	expected := [][]float64{{5}}

	score, err := Basic{}.Evaluate(f, inputs, expected)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9) // min(5,10)/max(5,10) = 0.5
}

func TestBasicZeroesOnNonFiniteRow(t *testing.T) {
	x := tree.NewVariable("x")
	root := tree.NewBinary(tree.BDiv, tree.NewNumber(1), x)
	f := formula.New(root, []string{"x"})

	inputs := [][]float64{{0}}
	expected := [][]float64{{1}}

	score, err := Basic{}.Evaluate(f, inputs, expected)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestBasicRejectsMismatchedRowCounts(t *testing.T) {
	f := circleArea()
	_, err := Basic{}.Evaluate(f, [][]float64{{1}, {2}}, [][]float64{{1}})
	assert.Error(t, err)
}

func TestBasicNeverReturnsExactOneUnlessEveryRowIsExact(t *testing.T) {
	x := tree.NewVariable("x")
	f := formula.New(x, []string{"x"})

	inputs := [][]float64{{1}, {2}}
	expected := [][]float64{{1}, {2.5}} // one exact row, one inexact row
	score, err := Basic{}.Evaluate(f, inputs, expected)
	require.NoError(t, err)
	assert.Less(t, score, 1.0)
}

func TestEnhancedStaysWithinUnitRange(t *testing.T) {
	f := circleArea()
	inputs := [][]float64{{1}, {2}, {3}, {4}}
	expected := [][]float64{{math.Pi}, {math.Pi * 4}, {math.Pi * 9}, {math.Pi * 16}}

	score, err := Enhanced{}.Evaluate(f, inputs, expected)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestUltraReturnsExactOneWhenEveryRowWithinTightTolerance(t *testing.T) {
	f := circleArea()
	inputs := [][]float64{{1}, {2}}
	expected := [][]float64{{math.Pi}, {math.Pi * 4}}

	score, err := Ultra{}.Evaluate(f, inputs, expected)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestUltraCapsNearMissBelowOne(t *testing.T) {
	x := tree.NewVariable("x")
	f := formula.New(x, []string{"x"})

	inputs := [][]float64{{10}}
	expected := [][]float64{{9}}

	score, err := Ultra{}.Evaluate(f, inputs, expected)
	require.NoError(t, err)
	assert.Less(t, score, 1.0)
}

func TestMonotonicityBonusPerfectMatch(t *testing.T) {
	results := []float64{1, 2, 3, 4}
	targets := []float64{10, 20, 30, 40}
	assert.Equal(t, 1.0, monotonicityBonus(results, targets))
}

func TestRangeConsistencyPerfectMatch(t *testing.T) {
	results := []float64{0, 5}
	targets := []float64{100, 105}
	assert.InDelta(t, 1.0, rangeConsistency(results, targets), 1e-9)
}
