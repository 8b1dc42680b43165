package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/tree"
)

func sol(fitness float64, value float64) Solution {
	return Solution{Formula: formula.New(tree.NewNumber(value), nil), Fitness: fitness}
}

func TestOrderedSetInsertKeepsAscendingOrder(t *testing.T) {
	o := newOrderedSet(0)
	o.insert(sol(0.5, 1))
	o.insert(sol(0.1, 2))
	o.insert(sol(0.9, 3))

	snap := o.snapshot()
	for i := 1; i < len(snap); i++ {
		assert.LessOrEqual(t, snap[i-1].Fitness, snap[i].Fitness)
	}
	best, ok := o.best()
	assert.True(t, ok)
	assert.Equal(t, 0.9, best.Fitness)
}

func TestOrderedSetTruncatesFromLowEndOnOverflow(t *testing.T) {
	o := newOrderedSet(2)
	o.insert(sol(0.1, 1))
	o.insert(sol(0.5, 2))
	o.insert(sol(0.9, 3))

	assert.Equal(t, 2, o.size())
	snap := o.snapshot()
	assert.Equal(t, 0.5, snap[0].Fitness)
	assert.Equal(t, 0.9, snap[1].Fitness)
}

func TestOrderedSetKeepBestOnlyAndKeepTopN(t *testing.T) {
	o := newOrderedSet(0)
	o.insert(sol(0.1, 1))
	o.insert(sol(0.5, 2))
	o.insert(sol(0.9, 3))

	o.keepTopN(2)
	assert.Equal(t, 2, o.size())

	o.keepBestOnly()
	assert.Equal(t, 1, o.size())
	best, _ := o.best()
	assert.Equal(t, 0.9, best.Fitness)
}

func TestPickChangerUsesMergerForSingleSolutionPool(t *testing.T) {
	only := []Solution{sol(0.5, 1)}
	_, ok := pickChanger(only, nil, nil)
	assert.False(t, ok)
}
