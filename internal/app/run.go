package app

import (
	"context"
	"fmt"

	"github.com/chrisiswright/WhiteFiberCC/internal/ctxlog"
	"github.com/chrisiswright/WhiteFiberCC/internal/report"
	"github.com/chrisiswright/WhiteFiberCC/internal/scheduler"
)

// Validate loads and validates the plan and reports the expected makespan,
// without running anything.
func (a *App) Validate(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	_, expected, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	fmt.Fprintf(a.outW, "Plan valid. Expected total runtime: %d seconds\n", expected)
	return nil
}

// Run validates the plan and then executes it, printing progress and the
// final summary. Per-task failures are reported but do not make Run fail;
// only a broken plan or a canceled context does.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	graph, expected, err := a.load(ctx)
	if err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	if graph.Len() == 0 {
		a.logger.Warn("Plan has no tasks, nothing to run.")
		return nil
	}

	if a.config.HealthcheckPort > 0 {
		stop := a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer stop()
	}

	console := report.NewConsole(a.outW)
	sched := scheduler.New(graph, a.executor,
		scheduler.WithReporter(console),
		scheduler.WithWorkerLimit(a.config.WorkerLimit),
	)

	a.logger.Info("Starting concurrent execution.", "tasks", graph.Len(), "expected_seconds", expected)
	result, err := sched.Run(ctx)
	if err != nil {
		return fmt.Errorf("execution aborted: %w", err)
	}
	a.logger.Info("Execution finished.", "elapsed", result.Elapsed)

	console.Summary(result, graph.Names(), expected)
	return nil
}
