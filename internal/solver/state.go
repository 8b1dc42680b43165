package solver

import "sync/atomic"

// State is the solver's three-value lifecycle.
type State int32

const (
	StateReady State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// runState wraps an atomic int32 so currentState transitions are lock-free
// and guarantee that any thread may move Running→Done, no thread may
// move backward.
type runState struct {
	v int32
}

func (r *runState) get() State {
	return State(atomic.LoadInt32(&r.v))
}

func (r *runState) set(s State) {
	atomic.StoreInt32(&r.v, int32(s))
}

// finish transitions to Done unconditionally; safe to call from multiple
// goroutines simultaneously or repeatedly (a no-op once already Done).
func (r *runState) finish() {
	atomic.StoreInt32(&r.v, int32(StateDone))
}

func (r *runState) isDone() bool {
	return r.get() == StateDone
}
