// Package events provides the solver's progress pub/sub: the REPL, the
// fixed-width report printer, and the optional HTTP stream all subscribe
// to the same Bus instead of polling solver state directly.
package events

import "time"

// Type discriminates the kinds of progress event a run emits.
type Type string

const (
	// TypeTick fires roughly once per worker iteration batch; Data carries
	// "iteration", "bestFitness", "poolSize".
	TypeTick Type = "tick"
	// TypeNewBest fires whenever a solution improves on the prior best;
	// Data carries "formula", "fitness", "changer".
	TypeNewBest Type = "new_best"
	// TypeStagnation fires when a worker triggers a mild or aggressive
	// intervention; Data carries "level" ("mild" or "aggressive").
	TypeStagnation Type = "stagnation"
	// TypeDone fires exactly once, when currentState transitions to Done;
	// Data carries "reason" (one of the solver's termination causes).
	TypeDone Type = "done"
)

// Event is a single published occurrence, timestamped at emission.
type Event struct {
	Type      Type
	Timestamp time.Time
	RunID     string
	Data      map[string]any
}
