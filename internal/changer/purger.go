package changer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/producer"
	"github.com/cumbiambero/genforge/internal/rng"
)

// Purger discards the existing tree entirely and replaces the root with a
// fresh tree from the Operation Producer over the same variables — the
// producer's output is seed material here, not a mutation of the input.
type Purger struct{}

func (Purger) Tag() Tag { return TagPurger }

func (Purger) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	return producer.New(producer.DefaultConfig(), f.Variables(), src), nil
}
