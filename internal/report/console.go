// Package report renders scheduler events and the end-of-run summary for
// humans. The scheduler emits events; this package owns their presentation.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chrisiswright/WhiteFiberCC/internal/scheduler"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headStyle = lipgloss.NewStyle().Bold(true)
)

// Console writes a line per scheduler event plus a final summary. The
// scheduler calls it from a single goroutine, so no locking is needed.
type Console struct {
	w io.Writer
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// TaskStarted implements scheduler.Reporter.
func (c *Console) TaskStarted(name string, offset time.Duration) {
	fmt.Fprintf(c.w, "Starting %s at %.1fs...\n", name, offset.Seconds())
}

// TaskFinished implements scheduler.Reporter.
func (c *Console) TaskFinished(name string, offset time.Duration, success bool, output string) {
	fmt.Fprintf(c.w, "Finished %s at %.1fs\n", name, offset.Seconds())
	if !success {
		fmt.Fprintf(c.w, "%s %s: %s\n", failStyle.Render("Error in"), name, output)
	}
}

// TaskSkipped implements scheduler.Reporter.
func (c *Console) TaskSkipped(name string, offset time.Duration, reason string) {
	fmt.Fprintf(c.w, "%s %s: %s\n", skipStyle.Render("Skipped"), name, reason)
}

// Summary prints the per-task outcomes in plan order, the total elapsed
// time, and the delta against the expected makespan.
func (c *Console) Summary(result *scheduler.Result, names []string, expectedSeconds int) {
	fmt.Fprintf(c.w, "\n%s\n", headStyle.Render("Task Outputs:"))
	for _, name := range names {
		rec, ok := result.Records[name]
		if !ok {
			continue
		}
		fmt.Fprintf(c.w, "Task %s [%s]: %s\n", name, stateLabel(rec.State), rec.Output)
	}

	actual := result.Elapsed.Seconds()
	fmt.Fprintf(c.w, "Actual runtime: %.1f seconds\n", actual)
	fmt.Fprintf(c.w, "Difference from expected: %.1f seconds\n", actual-float64(expectedSeconds))
}

func stateLabel(s scheduler.State) string {
	switch s {
	case scheduler.Succeeded:
		return okStyle.Render(string(s))
	case scheduler.Failed:
		return failStyle.Render(string(s))
	case scheduler.Skipped:
		return skipStyle.Render(string(s))
	default:
		return string(s)
	}
}
