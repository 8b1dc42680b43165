package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateLeaf(t *testing.T) {
	n := NewNumber(4.5)
	assert.Equal(t, 4.5, n.Evaluate())

	c := NewConstant(ConstPi)
	assert.InDelta(t, 3.14159265, c.Evaluate(), 1e-6)

	v := NewVariable("x")
	v.Value = 2.0
	assert.Equal(t, 2.0, v.Evaluate())
}

func TestEvaluateBinaryArithmetic(t *testing.T) {
	x := NewVariable("x")
	x.Value = 3
	n := NewBinary(BAdd, x, NewNumber(2))
	assert.Equal(t, 5.0, n.Evaluate())

	n = NewBinary(BMul, NewNumber(3), NewNumber(4))
	assert.Equal(t, 12.0, n.Evaluate())
}

func TestEvaluateDivisionByNearZero(t *testing.T) {
	n := NewBinary(BDiv, NewNumber(1), NewNumber(1e-12))
	require.True(t, math.IsNaN(n.Evaluate()))
}

func TestEvaluateDivisionNormal(t *testing.T) {
	n := NewBinary(BDiv, NewNumber(10), NewNumber(4))
	assert.Equal(t, 2.5, n.Evaluate())
}

func TestEvaluatePowerNaNPropagates(t *testing.T) {
	n := NewBinary(BPow, NewNumber(math.NaN()), NewNumber(2))
	assert.True(t, math.IsNaN(n.Evaluate()))
}

func TestEvaluateTrigInverseOutOfDomainYieldsZero(t *testing.T) {
	asin := NewUnary(UAsin, NewNumber(2.0))
	assert.Equal(t, 0.0, asin.Evaluate())

	acos := NewUnary(UAcos, NewNumber(-2.0))
	assert.Equal(t, 0.0, acos.Evaluate())

	// atan has no domain restriction.
	atan := NewUnary(UAtan, NewNumber(1000.0))
	assert.InDelta(t, math.Atan(1000.0), atan.Evaluate(), 1e-9)
}

func TestEvaluateSqrtOfNegativePropagatesNaN(t *testing.T) {
	n := NewUnary(USqrt, NewNumber(-4))
	assert.True(t, math.IsNaN(n.Evaluate()))
}

func TestEvaluateLnOfNonPositivePropagatesNaNOrInf(t *testing.T) {
	negative := NewUnary(ULn, NewNumber(-1))
	assert.True(t, math.IsNaN(negative.Evaluate()))

	zero := NewUnary(ULn, NewNumber(0))
	assert.True(t, math.IsInf(zero.Evaluate(), -1))
}

func TestEvaluateCircleAreaFormula(t *testing.T) {
	// pi * r^2, matching the circle-area scenario.
	r := NewVariable("r")
	formula := NewBinary(BMul, NewConstant(ConstPi), NewBinary(BPow, r, NewNumber(2)))

	for _, radius := range []float64{1, 2, 3, 4, 5} {
		r.Value = radius
		expected := math.Pi * radius * radius
		assert.InDelta(t, expected, formula.Evaluate(), 1e-6)
	}
}

func TestEvaluateWrapperIsTransparent(t *testing.T) {
	inner := NewNumber(7)
	w := NewWrapper(inner)
	assert.Equal(t, 7.0, w.Evaluate())
}
