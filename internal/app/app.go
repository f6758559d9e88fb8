// Package app is the composition root: it wires the plan loader, graph
// validation, critical-path analysis, and the scheduler behind the two
// user-facing modes, validate and run.
package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/chrisiswright/WhiteFiberCC/internal/plan"
	"github.com/chrisiswright/WhiteFiberCC/internal/probe"
	"github.com/chrisiswright/WhiteFiberCC/internal/scheduler"
	"github.com/chrisiswright/WhiteFiberCC/internal/taskgraph"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   *plan.Loader
	executor scheduler.Executor
}

// Option overrides a default collaborator, primarily for tests.
type Option func(*App)

// WithExecutor replaces the probe runner with a custom executor.
func WithExecutor(e scheduler.Executor) Option {
	return func(a *App) { a.executor = e }
}

// New constructs an App. Console output (reports, summaries) goes to outW;
// structured logs go to logW with their own isolated logger.
func New(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	a := &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		config: cfg,
		loader: plan.NewLoader(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.executor == nil {
		a.executor = probe.NewRunner(time.Duration(cfg.GraceSeconds) * time.Second)
	}
	a.logger.Debug("App constructed.", "plan_path", cfg.PlanPath)
	return a
}

// load parses the plan, builds and validates the graph, and computes the
// expected makespan. Both modes start here; validation failures abort
// before anything executes.
func (a *App) load(ctx context.Context) (*taskgraph.Graph, int, error) {
	tasks, err := a.loader.Load(ctx, a.config.PlanPath)
	if err != nil {
		return nil, 0, err
	}

	graph, err := taskgraph.New(tasks)
	if err != nil {
		return nil, 0, err
	}
	if err := taskgraph.Validate(graph); err != nil {
		return nil, 0, err
	}

	expected := taskgraph.ExpectedMakespan(graph)
	a.logger.Debug("Plan validated.", "tasks", graph.Len(), "expected_seconds", expected)
	return graph, expected, nil
}
