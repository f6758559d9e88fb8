package taskgraph

// Schedule holds the result of the critical-path forward pass: per-task
// earliest start and finish offsets in seconds, and the makespan (the
// completion time of the whole plan under unlimited parallelism).
type Schedule struct {
	Start    map[string]int
	Finish   map[string]int
	Makespan int
}

// Plan computes earliest start/finish times for every task and the overall
// expected makespan. The graph must already have passed Validate; Plan
// assumes acyclicity and dependency existence.
//
// Forward pass in topological order: a task's earliest start is the maximum
// earliest finish among its dependencies (zero for roots), and its earliest
// finish is that plus its duration. The makespan is the maximum earliest
// finish, or zero for an empty graph.
func Plan(g *Graph) *Schedule {
	s := &Schedule{
		Start:  make(map[string]int, g.Len()),
		Finish: make(map[string]int, g.Len()),
	}

	for _, name := range topoOrder(g) {
		t := g.byName[name]
		start := 0
		for _, dep := range t.DependsOn {
			if finish := s.Finish[dep]; finish > start {
				start = finish
			}
		}
		s.Start[name] = start
		s.Finish[name] = start + t.Duration
		if s.Finish[name] > s.Makespan {
			s.Makespan = s.Finish[name]
		}
	}

	return s
}

// ExpectedMakespan returns the critical-path completion time in seconds.
// This is a lower bound on actual runtime, not a prediction: real execution
// has the same unlimited parallelism but pays wall-clock overhead on top.
func ExpectedMakespan(g *Graph) int {
	return Plan(g).Makespan
}

// topoOrder returns task names in a dependency-respecting order using
// Kahn's algorithm, seeded and expanded in input order for determinism.
func topoOrder(g *Graph) []string {
	indegree := make(map[string]int, g.Len())
	for _, name := range g.order {
		indegree[name] = len(g.byName[name].DependsOn)
	}

	queue := make([]string, 0, g.Len())
	for _, name := range g.order {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, g.Len())
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)

		for _, dependent := range g.dependents[name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return order
}
