package changer

import (
	"math"
	"sync"

	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
)

// dramaticValues is the snap set AdaptiveMutator draws from at high
// intensity.
var dramaticValues = []float64{0, 1, 2, 0.5, 10, -10}

const (
	minIntensity      = 0.05
	maxIntensity      = 1.0
	highIntensity     = 0.7
	midIntensity      = 0.3
	coolingFactor     = 0.95
	stagnationRaise   = 0.15
	progressRelief    = 0.9
)

// AdaptiveMutator is stateful across calls: the solver reports stagnation
// or progress via ReportStagnation/ReportProgress, and the mutator's
// intensity tracks that signal between [0.05, 1.0]. Intensity rises with
// stagnation and cools multiplicatively on every mutation it performs.
type AdaptiveMutator struct {
	mu        sync.Mutex
	intensity float64
}

// NewAdaptiveMutator starts at the lowest intensity.
func NewAdaptiveMutator() *AdaptiveMutator {
	return &AdaptiveMutator{intensity: minIntensity}
}

func (m *AdaptiveMutator) Tag() Tag { return TagAdaptiveMutator }

// ReportStagnation raises intensity, called by the solver when a thread's
// stagnation counter advances.
func (m *AdaptiveMutator) ReportStagnation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intensity = math.Min(maxIntensity, m.intensity+stagnationRaise)
}

// ReportProgress cools intensity, called by the solver when a mutation
// improves the pool.
func (m *AdaptiveMutator) ReportProgress() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intensity = math.Max(minIntensity, m.intensity*progressRelief)
}

// Intensity returns the current intensity, for logging/tests.
func (m *AdaptiveMutator) Intensity() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intensity
}

func (m *AdaptiveMutator) Change(f *formula.Formula, src rng.Source) (*formula.Formula, error) {
	m.mu.Lock()
	intensity := m.intensity
	m.intensity = math.Max(minIntensity, m.intensity*coolingFactor)
	m.mu.Unlock()

	clone := f.Clone()
	for _, n := range clone.GetNumbers() {
		if !src.Coin() {
			continue
		}
		switch {
		case intensity >= highIntensity:
			n.SetValue(dramaticReplacement(n.Value, src))
		case intensity >= midIntensity:
			n.SetValue(n.Value*scaleFactor(src) + deltaFactor(src))
		default:
			n.SetValue(n.Value * (1 + (src.Float64()*0.2 - 0.1)))
		}
	}
	return clone, nil
}

func dramaticReplacement(v float64, src rng.Source) float64 {
	switch src.IntN(3) {
	case 0:
		return -v // sign flip
	case 1:
		exponent := float64(1 + src.IntN(3))
		if src.Coin() {
			return v * math.Pow(10, exponent)
		}
		return v / math.Pow(10, exponent)
	default:
		return dramaticValues[src.IntN(len(dramaticValues))]
	}
}

func scaleFactor(src rng.Source) float64 {
	return 0.5 + src.Float64()*1.5 // [0.5, 2.0)
}

func deltaFactor(src rng.Source) float64 {
	return src.Float64()*2 - 1 // [-1, 1)
}
