package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisiswright/WhiteFiberCC/internal/scheduler"
	"github.com/chrisiswright/WhiteFiberCC/internal/taskgraph"
)

// scriptedExecutor resolves each task from a fixed verdict table.
type scriptedExecutor struct {
	fail map[string]bool
}

func (e *scriptedExecutor) Run(_ context.Context, task taskgraph.Task) scheduler.Outcome {
	if e.fail[task.Name] {
		return scheduler.Outcome{Success: false, Output: "probe failed"}
	}
	return scheduler.Outcome{Success: true, Output: "ok"}
}

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validPlan = `
task "resolve" "dns" {
  duration   = 1
  parameters = { fqdn = "example.com" }
}

task "traceroute" "route" {
  duration   = 1
  depends_on = ["dns"]
  parameters = { endpoint = "example.com", count = 3 }
}

task "iperf3" "bw" {
  duration   = 1
  depends_on = ["dns"]
  parameters = { endpoint = "example.com", port = 5201, duration = 1 }
}
`

func newTestApp(t *testing.T, planPath string, outW *bytes.Buffer, opts ...Option) *App {
	t.Helper()
	cfg, err := NewConfig(Config{PlanPath: planPath, LogLevel: "error"})
	require.NoError(t, err)
	return New(outW, &bytes.Buffer{}, cfg, opts...)
}

func TestValidateModeReportsMakespan(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, writePlan(t, validPlan), &out)

	require.NoError(t, a.Validate(context.Background()))
	assert.Contains(t, out.String(), "Plan valid. Expected total runtime: 2 seconds")
}

func TestValidateModeRejectsCycle(t *testing.T) {
	plan := `
task "resolve" "a" {
  duration   = 1
  depends_on = ["b"]
  parameters = { fqdn = "a.com" }
}
task "resolve" "b" {
  duration   = 1
  depends_on = ["a"]
  parameters = { fqdn = "b.com" }
}
`
	var out bytes.Buffer
	a := newTestApp(t, writePlan(t, plan), &out)

	err := a.Validate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, taskgraph.ErrCycle)
	assert.Contains(t, err.Error(), "invalid plan")
}

func TestValidateModeRejectsUnknownDependency(t *testing.T) {
	plan := `
task "resolve" "a" {
  duration   = 1
  depends_on = ["ghost"]
  parameters = { fqdn = "a.com" }
}
`
	var out bytes.Buffer
	a := newTestApp(t, writePlan(t, plan), &out)

	err := a.Validate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, taskgraph.ErrUnknownDependency)
}

func TestRunModeAllSucceed(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, writePlan(t, validPlan), &out,
		WithExecutor(&scriptedExecutor{}))

	require.NoError(t, a.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Starting dns")
	assert.Contains(t, output, "Task Outputs:")
	assert.Contains(t, output, "Task route")
	assert.Contains(t, output, "Actual runtime:")
	assert.Contains(t, output, "Difference from expected:")
}

func TestRunModeFailureCascades(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, writePlan(t, validPlan), &out,
		WithExecutor(&scriptedExecutor{fail: map[string]bool{"dns": true}}))

	require.NoError(t, a.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "dns: probe failed")
	assert.Contains(t, output, "skipped due to failure in dns")
}

func TestRunModeInvalidPlanRunsNothing(t *testing.T) {
	plan := `
task "resolve" "a" {
  duration   = 1
  depends_on = ["ghost"]
  parameters = { fqdn = "a.com" }
}
`
	var out bytes.Buffer
	exec := &scriptedExecutor{}
	a := newTestApp(t, writePlan(t, plan), &out, WithExecutor(exec))

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.NotContains(t, out.String(), "Starting")
}
