// Package taskgraph holds the probe plan's dependency graph: task
// definitions, structural validation, and critical-path analysis.
package taskgraph

import "fmt"

// Task is a single named unit of diagnostic work. It is immutable once the
// graph is built.
type Task struct {
	// Name uniquely identifies the task across the whole plan.
	Name string
	// Duration is the declared expected run length in seconds. It also
	// bounds execution: a probe is given Duration plus a grace buffer
	// before it is considered timed out.
	Duration int
	// DependsOn lists tasks that must reach a terminal state before this
	// task may start.
	DependsOn []string
	// Kind and Parameters describe the external command to run. The graph
	// never interprets them; they are passed through to the probe layer.
	Kind       string
	Parameters map[string]string
}

// Graph is an immutable index over a plan's tasks. It is safe for
// concurrent reads once constructed.
type Graph struct {
	byName     map[string]*Task
	order      []string
	dependents map[string][]string
}

// New builds a Graph from tasks in their given (input) order.
// It rejects empty and duplicate names; dependency existence and
// acyclicity are checked separately by Validate.
func New(tasks []Task) (*Graph, error) {
	g := &Graph{
		byName:     make(map[string]*Task, len(tasks)),
		order:      make([]string, 0, len(tasks)),
		dependents: make(map[string][]string),
	}

	for i := range tasks {
		t := tasks[i]
		if t.Name == "" {
			return nil, &GraphError{Kind: ErrInvalidGraph, Msg: "task name is required"}
		}
		if _, exists := g.byName[t.Name]; exists {
			return nil, &GraphError{Kind: ErrInvalidGraph, Msg: fmt.Sprintf("duplicate task name %q", t.Name)}
		}
		t.DependsOn = dedupe(t.DependsOn)
		g.byName[t.Name] = &t
		g.order = append(g.order, t.Name)
	}

	// Reverse edges for failure propagation. Unknown names are kept as
	// keys here too; Validate reports them before anything consumes this.
	for _, name := range g.order {
		for _, dep := range g.byName[name].DependsOn {
			g.dependents[dep] = append(g.dependents[dep], name)
		}
	}

	return g, nil
}

// Task returns the task with the given name.
func (g *Graph) Task(name string) (*Task, bool) {
	t, ok := g.byName[name]
	return t, ok
}

// Names returns all task names in input order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Tasks returns all tasks in input order.
func (g *Graph) Tasks() []*Task {
	out := make([]*Task, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.byName[name])
	}
	return out
}

// Dependents returns the names of tasks that directly depend on the given
// task, in input order.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// dedupe removes repeated and empty dependency names, preserving order.
func dedupe(deps []string) []string {
	if len(deps) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(deps))
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
