package scheduler

import "time"

// State is the execution state of a single task within a run.
type State string

const (
	Pending   State = "PENDING"
	Running   State = "RUNNING"
	Succeeded State = "SUCCEEDED"
	Failed    State = "FAILED"
	Skipped   State = "SKIPPED"
)

// Terminal reports whether the state is final. A task in a terminal state
// is never revisited.
func (s State) Terminal() bool {
	switch s {
	case Succeeded, Failed, Skipped:
		return true
	default:
		return false
	}
}

// Record is the per-task execution record. It is owned exclusively by the
// coordinator loop during a run and read-only afterwards.
type Record struct {
	State State
	// StartOffset and FinishOffset are wall-clock offsets from run start,
	// populated on the transitions into Running and into a terminal state.
	StartOffset  time.Duration
	FinishOffset time.Duration
	// Output is the captured command output, or a synthesized explanation
	// for timeouts, launch errors, and skips.
	Output string
}

// Outcome is the immutable result a worker hands back to the coordinator.
type Outcome struct {
	Success bool
	Output  string
	Elapsed time.Duration
}

// Result summarizes a completed run.
type Result struct {
	Records map[string]*Record
	Elapsed time.Duration
}

// Failed reports whether any task ended in the Failed state.
func (r *Result) Failed() bool {
	for _, rec := range r.Records {
		if rec.State == Failed {
			return true
		}
	}
	return false
}
