package taskgraph

import "fmt"

// Validate checks the structural integrity of the graph: every dependency
// must name a task present in the graph, and the dependency relation must
// be acyclic. The existence pass runs to completion before cycle detection
// starts, so a dangling name always surfaces as ErrUnknownDependency rather
// than a lookup failure inside the traversal.
//
// Validate does not mutate the graph and may be called any number of times
// with the same verdict.
func Validate(g *Graph) error {
	for _, name := range g.order {
		for _, dep := range g.byName[name].DependsOn {
			if _, ok := g.byName[dep]; !ok {
				return &GraphError{
					Kind: ErrUnknownDependency,
					Msg:  fmt.Sprintf("task %q depends on unknown task %q", name, dep),
				}
			}
		}
	}
	return detectCycles(g)
}

// dfsFrame tracks one node on the explicit traversal stack: the task name
// and the index of the next dependency edge to follow.
type dfsFrame struct {
	name string
	next int
}

// detectCycles runs an iterative depth-first search over dependency edges
// with the classic two sets: visited holds fully explored nodes, onStack
// holds nodes on the current path. Reaching a node already on the stack is
// a cycle; a fully visited node is a safe skip. Every task is tried as a
// root so disconnected components are covered. Traversal state lives in
// this call, never in the graph.
func detectCycles(g *Graph) error {
	visited := make(map[string]bool, len(g.order))
	onStack := make(map[string]bool)

	for _, root := range g.order {
		if visited[root] {
			continue
		}

		stack := []dfsFrame{{name: root}}
		onStack[root] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g.byName[top.name].DependsOn

			if top.next < len(deps) {
				dep := deps[top.next]
				top.next++
				if onStack[dep] {
					return &GraphError{
						Kind: ErrCycle,
						Msg:  fmt.Sprintf("cycle involving task %q", dep),
					}
				}
				if !visited[dep] {
					stack = append(stack, dfsFrame{name: dep})
					onStack[dep] = true
				}
				continue
			}

			visited[top.name] = true
			delete(onStack, top.name)
			stack = stack[:len(stack)-1]
		}
	}

	return nil
}
