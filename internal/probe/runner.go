package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/chrisiswright/WhiteFiberCC/internal/ctxlog"
	"github.com/chrisiswright/WhiteFiberCC/internal/scheduler"
	"github.com/chrisiswright/WhiteFiberCC/internal/taskgraph"
)

// DefaultGrace is the slack added to a task's declared duration before its
// command is considered timed out.
const DefaultGrace = 10 * time.Second

// Runner executes probe commands through the shell. It implements
// scheduler.Executor.
type Runner struct {
	// Grace is added to each task's declared duration to form its timeout.
	Grace time.Duration
	// Build overrides the command builder. Nil means BuildCommand. Tests
	// use this to run plain shell commands instead of network tools.
	Build func(taskgraph.Task) (string, error)
}

// NewRunner creates a Runner with the given grace buffer; a non-positive
// grace falls back to DefaultGrace.
func NewRunner(grace time.Duration) *Runner {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Runner{Grace: grace}
}

// Run builds and executes the task's command, bounded by the task's
// duration plus the grace buffer. All failure modes collapse into a
// non-success outcome: timeout, launch error, non-zero exit, and the
// resolve-specific empty result.
func (r *Runner) Run(ctx context.Context, t taskgraph.Task) scheduler.Outcome {
	logger := ctxlog.FromContext(ctx)

	build := r.Build
	if build == nil {
		build = BuildCommand
	}
	cmdLine, err := build(t)
	if err != nil {
		return scheduler.Outcome{Success: false, Output: fmt.Sprintf("task %s error: %v", t.Name, err)}
	}

	timeout := time.Duration(t.Duration)*time.Second + r.Grace
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debug("Running probe command.", "task", t.Name, "command", cmdLine, "timeout", timeout)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, "sh", "-c", cmdLine)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return scheduler.Outcome{Success: false, Output: fmt.Sprintf("task %s timed out", t.Name), Elapsed: elapsed}
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = fmt.Sprintf("task %s error: %v", t.Name, err)
		}
		return scheduler.Outcome{Success: false, Output: msg, Elapsed: elapsed}
	}

	out := stdout.String()
	// A resolver can exit zero with nothing to say; for this probe kind an
	// empty answer is a failure, not a success.
	if t.Kind == KindResolve && strings.TrimSpace(out) == "" {
		return scheduler.Outcome{Success: false, Output: "no DNS records found", Elapsed: elapsed}
	}

	return scheduler.Outcome{Success: true, Output: out, Elapsed: elapsed}
}
