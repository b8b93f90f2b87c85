// Package depgraph models the "depends on" relation of a task batch as a
// directed graph. Unlike a strict DAG it tolerates cycles: analysis is
// advisory, so a circular batch is reported rather than rejected, and
// scoring proceeds regardless.
package depgraph

import (
	"sort"
	"strconv"

	"github.com/papapumpkin/triage/internal/task"
)

// Graph is a dependency graph over task ids. Edges point from a task to
// its dependencies; reverse edges point from a task to its dependents.
type Graph struct {
	// order preserves the batch's task order for deterministic traversal.
	order []string
	// titles maps task id to title, for rendering cycles.
	titles map[string]string
	// adjacency maps id → set of dependency ids (forward edges).
	adjacency map[string]map[string]bool
	// reverse maps id → set of dependent ids (backward edges).
	reverse map[string]map[string]bool
}

// New builds a graph from a task batch. Dependency ids that do not appear
// in the batch are dropped silently; the caller's validation layer is the
// place to complain about them if it cares.
func New(tasks []task.Task) *Graph {
	g := &Graph{
		titles:    make(map[string]string, len(tasks)),
		adjacency: make(map[string]map[string]bool, len(tasks)),
		reverse:   make(map[string]map[string]bool, len(tasks)),
	}

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		id := t.Key()
		known[id] = true
		if _, seen := g.adjacency[id]; !seen {
			g.order = append(g.order, id)
		}
		g.titles[id] = t.Title
		if g.adjacency[id] == nil {
			g.adjacency[id] = make(map[string]bool)
		}
		if g.reverse[id] == nil {
			g.reverse[id] = make(map[string]bool)
		}
	}

	for _, t := range tasks {
		id := t.Key()
		for _, d := range t.Dependencies {
			dep := strconv.Itoa(d)
			if !known[dep] {
				continue
			}
			g.adjacency[id][dep] = true
			g.reverse[dep][id] = true
		}
	}
	return g
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Title returns the title recorded for a task id, falling back to the id
// itself when the task had no title.
func (g *Graph) Title(id string) string {
	if t, ok := g.titles[id]; ok && t != "" {
		return t
	}
	return id
}

// Dependents returns the set of distinct tasks that transitively depend on
// id: a breadth-first walk of reverse edges starting from the direct
// dependents, deduplicated by a visited set. Cyclic regions are walked like
// any other edges, so members of a cycle count each other as dependents.
func (g *Graph) Dependents(id string) []string {
	visited := make(map[string]bool)
	queue := make([]string, 0, len(g.reverse[id]))
	for dep := range g.reverse[id] {
		visited[dep] = true
		queue = append(queue, dep)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dep := range g.reverse[cur] {
			if dep == id || visited[dep] {
				continue
			}
			visited[dep] = true
			queue = append(queue, dep)
		}
	}

	result := make([]string, 0, len(visited))
	for v := range visited {
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

// BlockingCount returns the number of distinct tasks that transitively
// depend on id, i.e. the count of tasks its completion unblocks.
func (g *Graph) BlockingCount(id string) int {
	return len(g.Dependents(id))
}

// Cycles detects circular dependency chains with a depth-first search that
// keeps an explicit path alongside the recursion stack. Each cycle is
// returned as an ordered sequence of task titles closed by repeating the
// first. A branch stops exploring after recording one cycle, so a node's
// cycles are not exhaustively enumerated, but disjoint cycles across the
// batch are all reported.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var dfs func(node string) bool
	dfs = func(node string) bool {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, next := range g.sortedDeps(node) {
			if !visited[next] {
				if dfs(next) {
					return true
				}
			} else if onStack[next] {
				cycles = append(cycles, g.extractCycle(path, next))
				return true
			}
		}

		path = path[:len(path)-1]
		onStack[node] = false
		return false
	}

	for _, id := range g.order {
		if !visited[id] {
			dfs(id)
			// Reset traversal state between roots; a cut-short branch
			// leaves stale path entries behind.
			path = path[:0]
			for k := range onStack {
				delete(onStack, k)
			}
		}
	}
	return cycles
}

// extractCycle slices the current DFS path from the first occurrence of
// start to the end, maps ids to titles, and closes the loop.
func (g *Graph) extractCycle(path []string, start string) []string {
	from := 0
	for i, id := range path {
		if id == start {
			from = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-from+1)
	for _, id := range path[from:] {
		cycle = append(cycle, g.Title(id))
	}
	cycle = append(cycle, g.Title(start))
	return cycle
}

// sortedDeps returns a node's dependency ids in deterministic order so
// repeated runs report identical cycles.
func (g *Graph) sortedDeps(id string) []string {
	deps := make([]string, 0, len(g.adjacency[id]))
	for dep := range g.adjacency[id] {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}
