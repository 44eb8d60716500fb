package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csift/csift/internal/extract"
)

// Test Plan:
// - Callees and callers queries at depth 1
// - Depth-limited transitive traversal
// - Duplicate call sites show up once per query result
// - Depth clamping to the maximum
// - Cycle detection finds mutual recursion and self-recursion
// - Function count ignores duplicate edges

func chainEdges() []extract.CallEdge {
	return []extract.CallEdge{
		{Caller: "main", Callee: "setup"},
		{Caller: "main", Callee: "run"},
		{Caller: "run", Callee: "step"},
		{Caller: "step", Callee: "emit"},
	}
}

func TestSearcher_CalleesDepthOne(t *testing.T) {
	t.Parallel()

	s := NewSearcher(chainEdges())

	results, err := s.Query(OperationCallees, "main", 1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{Function: "setup", Depth: 1}, results[0])
	assert.Equal(t, Result{Function: "run", Depth: 1}, results[1])
}

func TestSearcher_CallersDepthOne(t *testing.T) {
	t.Parallel()

	s := NewSearcher(chainEdges())

	results, err := s.Query(OperationCallers, "step", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Result{Function: "run", Depth: 1}, results[0])
}

func TestSearcher_TransitiveDepth(t *testing.T) {
	t.Parallel()

	s := NewSearcher(chainEdges())

	results, err := s.Query(OperationCallees, "run", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{Function: "step", Depth: 1}, results[0])
	assert.Equal(t, Result{Function: "emit", Depth: 2}, results[1])
}

func TestSearcher_DuplicateCallSitesEmittedOnce(t *testing.T) {
	t.Parallel()

	s := NewSearcher([]extract.CallEdge{
		{Caller: "foo", Callee: "bar"},
		{Caller: "foo", Callee: "bar"},
	})

	results, err := s.Query(OperationCallees, "foo", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "bar", results[0].Function)
}

func TestSearcher_DepthClamped(t *testing.T) {
	t.Parallel()

	s := NewSearcher(chainEdges())

	results, err := s.Query(OperationCallees, "main", MaxDepth+5)
	require.NoError(t, err)
	// The whole chain is reachable well inside the clamp.
	assert.Len(t, results, 4)
}

func TestSearcher_UnsupportedOperation(t *testing.T) {
	t.Parallel()

	s := NewSearcher(chainEdges())

	_, err := s.Query(QueryOperation("siblings"), "main", 1)
	assert.Error(t, err)
}

func TestSearcher_UnknownTarget(t *testing.T) {
	t.Parallel()

	s := NewSearcher(chainEdges())

	results, err := s.Query(OperationCallees, "missing", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearcher_CyclesMutualRecursion(t *testing.T) {
	t.Parallel()

	s := NewSearcher([]extract.CallEdge{
		{Caller: "ping", Callee: "pong"},
		{Caller: "pong", Callee: "ping"},
		{Caller: "main", Callee: "ping"},
	})

	cycles, err := s.Cycles()
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"ping", "pong"}, cycles[0])
}

func TestSearcher_CyclesSelfRecursion(t *testing.T) {
	t.Parallel()

	s := NewSearcher([]extract.CallEdge{
		{Caller: "fact", Callee: "fact"},
		{Caller: "main", Callee: "fact"},
	})

	cycles, err := s.Cycles()
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"fact"}, cycles[0])
}

func TestSearcher_FunctionCount(t *testing.T) {
	t.Parallel()

	s := NewSearcher([]extract.CallEdge{
		{Caller: "a", Callee: "b"},
		{Caller: "a", Callee: "b"},
		{Caller: "b", Callee: "c"},
	})

	n, err := s.Functions()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
