package changer

import (
	"math"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
)

// IncByOne adds 1 to each non-constant numeric leaf, independently with
// p=½.
type IncByOne struct{}

func (IncByOne) Tag() Tag { return TagIncByOne }

func (IncByOne) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(n.Value + 1)
		}
	}
	return clone, nil
}

// RedByOne subtracts 1 from each non-constant numeric leaf, independently
// with p=½.
type RedByOne struct{}

func (RedByOne) Tag() Tag { return TagRedByOne }

func (RedByOne) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(n.Value - 1)
		}
	}
	return clone, nil
}

// IncByDoubling multiplies each non-constant numeric leaf by 2,
// independently with p=½.
type IncByDoubling struct{}

func (IncByDoubling) Tag() Tag { return TagIncByDoubling }

func (IncByDoubling) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(n.Value * 2)
		}
	}
	return clone, nil
}

// RedByHalving divides each non-constant numeric leaf by 2, independently
// with p=½.
type RedByHalving struct{}

func (RedByHalving) Tag() Tag { return TagRedByHalving }

func (RedByHalving) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(n.Value / 2)
		}
	}
	return clone, nil
}

// IncByFragment nudges each non-constant numeric leaf up by the smallest
// representable step at its current magnitude (math.Nextafter toward
// +Inf), independently with p=½. A zero leaf is replaced by the smallest
// positive float64 rather than stepping toward +Inf from zero's own ulp.
type IncByFragment struct{}

func (IncByFragment) Tag() Tag { return TagIncByFragment }

func (IncByFragment) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(fragmentStep(n.Value, true))
		}
	}
	return clone, nil
}

// RedByFragment nudges each non-constant numeric leaf down by the smallest
// representable step, independently with p=½.
type RedByFragment struct{}

func (RedByFragment) Tag() Tag { return TagRedByFragment }

func (RedByFragment) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if src.Coin() {
			n.SetValue(fragmentStep(n.Value, false))
		}
	}
	return clone, nil
}

func fragmentStep(v float64, up bool) float64 {
	if v == 0 {
		return math.SmallestNonzeroFloat64
	}
	if up {
		return math.Nextafter(v, math.Inf(1))
	}
	return math.Nextafter(v, math.Inf(-1))
}
