// Package callgraph holds the in-memory function call graph built from
// extracted call edges, with reverse indexes for caller/callee queries and
// cycle detection.
package callgraph

import (
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/csift/csift/internal/extract"
)

// QueryOperation selects the direction of a graph query.
type QueryOperation string

const (
	OperationCallers QueryOperation = "callers"
	OperationCallees QueryOperation = "callees"
)

const (
	DefaultDepth = 1
	MaxDepth     = 10
)

// Result is one function reached by a query, with the depth at which the
// traversal first found it.
type Result struct {
	Function string
	Depth    int
}

// Searcher answers callers/callees queries over a fixed edge set.
type Searcher struct {
	graph graph.Graph[string, string]

	// Reverse indexes for O(1) lookups. Duplicate call sites are preserved
	// here even though the graph keeps a single edge per pair.
	callers map[string][]string
	callees map[string][]string
}

// NewSearcher builds the graph and its reverse indexes from call edges.
func NewSearcher(edges []extract.CallEdge) *Searcher {
	s := &Searcher{
		graph:   graph.New(graph.StringHash, graph.Directed()),
		callers: make(map[string][]string),
		callees: make(map[string][]string),
	}

	for _, e := range edges {
		// Vertices and edges may repeat across call sites.
		_ = s.graph.AddVertex(e.Caller)
		_ = s.graph.AddVertex(e.Callee)
		_ = s.graph.AddEdge(e.Caller, e.Callee)

		s.callees[e.Caller] = append(s.callees[e.Caller], e.Callee)
		s.callers[e.Callee] = append(s.callers[e.Callee], e.Caller)
	}

	return s
}

// Query walks the reverse indexes from target up to depth levels and returns
// every function reached, in traversal order, deduplicated at the shallowest
// depth it was seen.
func (s *Searcher) Query(op QueryOperation, target string, depth int) ([]Result, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}

	var index map[string][]string
	switch op {
	case OperationCallers:
		index = s.callers
	case OperationCallees:
		index = s.callees
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}

	var results []Result
	visited := make(map[string]int) // function -> depth at which it was first visited
	emitted := make(map[string]bool)

	var traverse func(id string, currentDepth int)
	traverse = func(id string, currentDepth int) {
		if currentDepth > depth {
			return
		}
		if prevDepth, seen := visited[id]; seen && prevDepth <= currentDepth {
			return
		}
		visited[id] = currentDepth

		for _, next := range index[id] {
			if !emitted[next] {
				emitted[next] = true
				results = append(results, Result{Function: next, Depth: currentDepth})
			}
			if currentDepth < depth {
				traverse(next, currentDepth+1)
			}
		}
	}

	traverse(target, 1)
	return results, nil
}

// Cycles returns the strongly connected components with more than one
// function, plus single functions that call themselves. These are the
// recursion groups of the code base.
func (s *Searcher) Cycles() ([][]string, error) {
	sccs, err := graph.StronglyConnectedComponents(s.graph)
	if err != nil {
		return nil, fmt.Errorf("failed to compute components: %w", err)
	}

	var cycles [][]string
	for _, comp := range sccs {
		if len(comp) > 1 {
			cycles = append(cycles, comp)
			continue
		}
		if len(comp) == 1 && s.callsSelf(comp[0]) {
			cycles = append(cycles, comp)
		}
	}
	return cycles, nil
}

func (s *Searcher) callsSelf(fn string) bool {
	for _, callee := range s.callees[fn] {
		if callee == fn {
			return true
		}
	}
	return false
}

// Functions returns the number of distinct functions in the graph.
func (s *Searcher) Functions() (int, error) {
	order, err := s.graph.Order()
	if err != nil {
		return 0, err
	}
	return order, nil
}
