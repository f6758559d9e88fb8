// Package scheduler drives a validated task graph to completion: it
// launches ready tasks concurrently, observes completions, and cascades
// failures to dependents that have not started.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisiswright/WhiteFiberCC/internal/ctxlog"
	"github.com/chrisiswright/WhiteFiberCC/internal/taskgraph"
)

// Executor runs a single task's external command. The call blocks from the
// worker's perspective, honors the task's timeout internally, and never
// returns an unhandled fault: every failure mode collapses into a
// non-success Outcome with a message.
type Executor interface {
	Run(ctx context.Context, task taskgraph.Task) Outcome
}

// Reporter receives execution events as they happen. Implementations own
// the presentation; the scheduler only says what occurred. Events are
// emitted from the coordinator goroutine only, so implementations need no
// locking of their own.
type Reporter interface {
	TaskStarted(name string, offset time.Duration)
	TaskFinished(name string, offset time.Duration, success bool, output string)
	TaskSkipped(name string, offset time.Duration, reason string)
}

// nopReporter is used when the caller does not care about events.
type nopReporter struct{}

func (nopReporter) TaskStarted(string, time.Duration)                {}
func (nopReporter) TaskFinished(string, time.Duration, bool, string) {}
func (nopReporter) TaskSkipped(string, time.Duration, string)        {}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithReporter attaches an event sink to the run.
func WithReporter(r Reporter) Option {
	return func(s *Scheduler) { s.reporter = r }
}

// WithWorkerLimit bounds how many tasks may execute at once. Zero or a
// negative value means unbounded concurrency, the plan model's default.
func WithWorkerLimit(n int) Option {
	return func(s *Scheduler) { s.workers = n }
}

// Scheduler executes one graph. The coordinator goroutine inside Run is the
// only writer of record state; workers communicate completions over a
// channel and never touch the graph or the records.
type Scheduler struct {
	graph    *taskgraph.Graph
	executor Executor
	reporter Reporter
	workers  int
}

// New creates a Scheduler for an already-validated graph.
func New(g *taskgraph.Graph, executor Executor, opts ...Option) *Scheduler {
	s := &Scheduler{
		graph:    g,
		executor: executor,
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// completion pairs a finished task with its outcome.
type completion struct {
	name    string
	outcome Outcome
}

// Run drives the graph until every task is terminal and returns the final
// records. Per-task failures are contained: they skip downstream dependents
// but never abort the run. The returned error is non-nil only when the
// context is canceled mid-run; in-flight commands are then torn down by
// their own contexts.
func (s *Scheduler) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	records := make(map[string]*Record, s.graph.Len())
	for _, name := range s.graph.Names() {
		records[name] = &Record{State: Pending}
	}

	start := time.Now()
	remaining := s.graph.Len()
	// Buffered to the graph size so workers can always deliver a
	// completion even after the coordinator has returned.
	done := make(chan completion, s.graph.Len())

	var slots chan struct{}
	if s.workers > 0 {
		slots = make(chan struct{}, s.workers)
	}

	// skipDependents force-marks every still-Pending direct dependent of a
	// non-successful task as Skipped. A skip is itself terminal, so the
	// recursion carries the cascade through the whole downstream cone,
	// whether the trigger failed outright or was skipped in turn. A
	// Running dependent is left alone: in-flight work always completes.
	var skipDependents func(name string, trigger State)
	skipDependents = func(name string, trigger State) {
		for _, dependent := range s.graph.Dependents(name) {
			rec := records[dependent]
			if rec.State != Pending {
				continue
			}
			rec.State = Skipped
			rec.FinishOffset = time.Since(start)
			if trigger == Failed {
				rec.Output = fmt.Sprintf("skipped due to failure in %s", name)
			} else {
				rec.Output = fmt.Sprintf("skipped due to skipped dependency %s", name)
			}
			remaining--
			logger.Warn("Skipping task due to upstream failure.", "task", dependent, "dependency", name)
			s.reporter.TaskSkipped(dependent, rec.FinishOffset, rec.Output)
			skipDependents(dependent, Skipped)
		}
	}

	// dispatch submits every Pending task whose dependencies are all
	// terminal. It re-runs after every completion because completions
	// change readiness. Eligibility checks terminal-state membership, not
	// success: dependents of failures never reach dispatch because the
	// cascade removes them from Pending first.
	dispatch := func() {
		for _, t := range s.graph.Tasks() {
			rec := records[t.Name]
			if rec.State != Pending {
				continue
			}
			ready := true
			for _, dep := range t.DependsOn {
				if !records[dep].State.Terminal() {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}

			rec.State = Running
			rec.StartOffset = time.Since(start)
			logger.Debug("Dispatching task.", "task", t.Name, "offset", rec.StartOffset)
			s.reporter.TaskStarted(t.Name, rec.StartOffset)

			task := *t
			go func() {
				if slots != nil {
					slots <- struct{}{}
					defer func() { <-slots }()
				}
				done <- completion{name: task.Name, outcome: s.executor.Run(ctx, task)}
			}()
		}
	}

	dispatch()

	for remaining > 0 {
		select {
		case c := <-done:
			rec := records[c.name]
			rec.FinishOffset = time.Since(start)
			rec.Output = c.outcome.Output
			if c.outcome.Success {
				rec.State = Succeeded
			} else {
				rec.State = Failed
				logger.Error("Task failed.", "task", c.name, "output", c.outcome.Output)
			}
			remaining--
			s.reporter.TaskFinished(c.name, rec.FinishOffset, c.outcome.Success, c.outcome.Output)

			if rec.State == Failed {
				skipDependents(c.name, Failed)
			}
			dispatch()

		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Result{Records: records, Elapsed: time.Since(start)}, nil
}
