package taskgraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, tasks []Task) *Graph {
	t.Helper()
	g, err := New(tasks)
	require.NoError(t, err)
	return g
}

func TestValidateAcceptsValidDAG(t *testing.T) {
	g := mustGraph(t, []Task{
		{Name: "a", Duration: 1},
		{Name: "b", Duration: 1, DependsOn: []string{"a"}},
		{Name: "c", Duration: 1, DependsOn: []string{"a", "b"}},
	})
	assert.NoError(t, Validate(g))
}

func TestValidateAcceptsDisconnectedComponents(t *testing.T) {
	g := mustGraph(t, []Task{
		{Name: "a", Duration: 1},
		{Name: "b", Duration: 1, DependsOn: []string{"a"}},
		{Name: "x", Duration: 1},
		{Name: "y", Duration: 1, DependsOn: []string{"x"}},
	})
	assert.NoError(t, Validate(g))
}

func TestValidateUnknownDependency(t *testing.T) {
	g := mustGraph(t, []Task{
		{Name: "a", Duration: 1, DependsOn: []string{"ghost"}},
	})

	err := Validate(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDependency)
	assert.Contains(t, err.Error(), `"ghost"`)
	assert.Contains(t, err.Error(), `"a"`)
}

// An unknown name must always surface as the unknown-dependency error, even
// when the same graph also contains a cycle the traversal would hit first.
func TestValidateUnknownDependencyReportedBeforeCycle(t *testing.T) {
	g := mustGraph(t, []Task{
		{Name: "a", Duration: 1, DependsOn: []string{"b"}},
		{Name: "b", Duration: 1, DependsOn: []string{"a", "ghost"}},
	})

	err := Validate(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDependency)
}

func TestValidateCycles(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
	}{
		{
			name: "two node mutual dependency",
			tasks: []Task{
				{Name: "a", Duration: 1, DependsOn: []string{"b"}},
				{Name: "b", Duration: 1, DependsOn: []string{"a"}},
			},
		},
		{
			name: "self dependency",
			tasks: []Task{
				{Name: "a", Duration: 1, DependsOn: []string{"a"}},
			},
		},
		{
			name: "longer cycle behind a valid prefix",
			tasks: []Task{
				{Name: "root", Duration: 1},
				{Name: "a", Duration: 1, DependsOn: []string{"root", "c"}},
				{Name: "b", Duration: 1, DependsOn: []string{"a"}},
				{Name: "c", Duration: 1, DependsOn: []string{"b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.tasks)
			err := Validate(g)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCycle)
		})
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	valid := mustGraph(t, []Task{
		{Name: "a", Duration: 1},
		{Name: "b", Duration: 1, DependsOn: []string{"a"}},
	})
	assert.NoError(t, Validate(valid))
	assert.NoError(t, Validate(valid))

	cyclic := mustGraph(t, []Task{
		{Name: "a", Duration: 1, DependsOn: []string{"b"}},
		{Name: "b", Duration: 1, DependsOn: []string{"a"}},
	})
	first := Validate(cyclic)
	second := Validate(cyclic)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestValidateEmptyGraph(t *testing.T) {
	g := mustGraph(t, nil)
	assert.NoError(t, Validate(g))
}

func TestValidateDeepChain(t *testing.T) {
	// The explicit-stack traversal must not blow up on a long linear chain.
	const depth = 20000
	tasks := make([]Task, depth)
	tasks[0] = Task{Name: "t0", Duration: 1}
	for i := 1; i < depth; i++ {
		tasks[i] = Task{
			Name:      fmt.Sprintf("t%d", i),
			Duration:  1,
			DependsOn: []string{fmt.Sprintf("t%d", i-1)},
		}
	}

	g := mustGraph(t, tasks)
	assert.NoError(t, Validate(g))
}
