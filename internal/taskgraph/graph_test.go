package taskgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New([]Task{
		{Name: "a", Duration: 1},
		{Name: "b", Duration: 2, DependsOn: []string{"a"}},
		{Name: "c", Duration: 3, DependsOn: []string{"a", "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"a", "b", "c"}, g.Names())

	b, ok := g.Task("b")
	require.True(t, ok)
	assert.Equal(t, 2, b.Duration)
	assert.Equal(t, []string{"a"}, b.DependsOn)

	_, ok = g.Task("dne")
	assert.False(t, ok)
}

func TestNewRejectsBadNames(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := New([]Task{{Name: "", Duration: 1}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidGraph)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := New([]Task{
			{Name: "a", Duration: 1},
			{Name: "a", Duration: 2},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidGraph)
		assert.Contains(t, err.Error(), `"a"`)
	})
}

func TestNewEmptyGraph(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Names())
	assert.Empty(t, g.Tasks())
}

func TestDependents(t *testing.T) {
	g, err := New([]Task{
		{Name: "a", Duration: 1},
		{Name: "b", Duration: 1, DependsOn: []string{"a"}},
		{Name: "c", Duration: 1, DependsOn: []string{"a"}},
		{Name: "d", Duration: 1, DependsOn: []string{"b", "c"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c"}, g.Dependents("a"))
	assert.Equal(t, []string{"d"}, g.Dependents("b"))
	assert.Empty(t, g.Dependents("d"))
}

func TestNewDedupesDependencies(t *testing.T) {
	g, err := New([]Task{
		{Name: "a", Duration: 1},
		{Name: "b", Duration: 1, DependsOn: []string{"a", "a", "", "a"}},
	})
	require.NoError(t, err)

	b, ok := g.Task("b")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, b.DependsOn)
	assert.Equal(t, []string{"b"}, g.Dependents("a"))
}
