package solver

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/cumbiambero/genforge/internal/fitness"
)

// almostPerfect is the ALMOST_PERFECT hall-of-fame fitness threshold.
const almostPerfect = 0.9999999999

// perfectMatchEPS is the per-row tolerance used to judge a formula a
// verified exact fit against the expected values.
const perfectMatchEPS = 1e-6

// Config holds every solver knob. Zero-value fields are filled in from
// DefaultConfig by New.
type Config struct {
	Evaluator fitness.Evaluator

	// Target is the fitness a pool member must reach for Done ("target
	// reached") and for hall-of-fame entry.
	Target float64

	// TimeBudget is the wall-clock deadline from Start; 0 means no limit.
	TimeBudget time.Duration

	// Threads is the worker count; 0 means max(1, logical_cpus-1).
	Threads int

	// IterationCap is the per-thread hard cap on worker-loop iterations;
	// 0 means use DefaultConfig's cap.
	IterationCap int

	// PoolCap bounds the `solutions` ordered set.
	PoolCap int

	// InitialRandomCount is how many random seed formulas Init inserts.
	InitialRandomCount int

	// HallOfFameCap bounds the hall-of-fame ordered set (3 by default).
	HallOfFameCap int

	// StagnationMildThreshold is the per-thread iteration count since the
	// last observed best-fitness improvement that triggers mild
	// intervention; 2x that triggers aggressive intervention.
	StagnationMildThreshold int

	// MildRefillCount is K, the number of fresh random formulas a mild
	// intervention injects (~500 by default).
	MildRefillCount int

	// AggressiveKeepTop is how many top solutions an aggressive
	// intervention preserves (3 by default).
	AggressiveKeepTop int

	// RNGSeed seeds every worker's RNG deterministically when non-zero;
	// zero means time-seeded (the production default).
	RNGSeed int64
}

// DefaultConfig returns the solver's literal defaults (`--fitness
// enhanced`, target ≈ ALMOST_PERFECT, auto threads, no time limit).
func DefaultConfig() Config {
	return Config{
		Evaluator:               fitness.Enhanced{},
		Target:                  almostPerfect,
		TimeBudget:              0,
		Threads:                 0,
		IterationCap:            200_000,
		PoolCap:                 30,
		InitialRandomCount:      20,
		HallOfFameCap:           3,
		StagnationMildThreshold: 200,
		MildRefillCount:         500,
		AggressiveKeepTop:       3,
		RNGSeed:                 0,
	}
}

// resolved fills in zero-valued fields from DefaultConfig and resolves
// Threads to a concrete worker count.
func (c Config) resolved() Config {
	d := DefaultConfig()
	if c.Evaluator == nil {
		c.Evaluator = d.Evaluator
	}
	if c.Target == 0 {
		c.Target = d.Target
	}
	if c.IterationCap == 0 {
		c.IterationCap = d.IterationCap
	}
	if c.PoolCap == 0 {
		c.PoolCap = d.PoolCap
	}
	if c.InitialRandomCount == 0 {
		c.InitialRandomCount = d.InitialRandomCount
	}
	if c.HallOfFameCap == 0 {
		c.HallOfFameCap = d.HallOfFameCap
	}
	if c.StagnationMildThreshold == 0 {
		c.StagnationMildThreshold = d.StagnationMildThreshold
	}
	if c.MildRefillCount == 0 {
		c.MildRefillCount = d.MildRefillCount
	}
	if c.AggressiveKeepTop == 0 {
		c.AggressiveKeepTop = d.AggressiveKeepTop
	}
	if c.Threads == 0 {
		c.Threads = autoThreadCount()
	}
	return c
}

// autoThreadCount resolves the auto thread count to max(1, logical_cpus-1)
// using gopsutil's logical-core count rather than bare runtime.NumCPU().
func autoThreadCount() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts < 1 {
		return 1
	}
	if counts-1 < 1 {
		return 1
	}
	return counts - 1
}
