// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

// step is one traversed arc, remembering the vertex it left.
type step struct {
	from int
	arc  arc
}

// workItem is a pending vertex together with the path that reached it.
type workItem struct {
	at   int
	path []step
}

// FindPath finds a path of edges from one value to another.
//
// Description:
//
//	Walks the graph with an explicit work list; the graph's Strategy decides
//	whether the list is used as a queue (BFS) or a stack (DFS). A vertex is
//	expanded at most once, so the search terminates on cyclic graphs.
//
// Inputs:
//
//	from - Starting value.
//	to - Target value.
//
// Outputs:
//
//	[]Edge[T] - Edges in path order. Empty (non-nil) when from == to.
//	bool - False if either value is absent or the values are disconnected.
//
// Thread Safety:
//
//	Safe for concurrent use.
func (g *Graph[T]) FindPath(from, to T) ([]Edge[T], bool) {
	start, ok := g.index[from]
	if !ok {
		return nil, false
	}
	target, ok := g.index[to]
	if !ok {
		return nil, false
	}
	if start == target {
		return []Edge[T]{}, true
	}

	depthFirst := g.options.Strategy == DepthFirst
	visited := make([]bool, len(g.vertices))
	work := []workItem{{at: start}}
	if !depthFirst {
		visited[start] = true
	}

	for len(work) > 0 {
		var item workItem
		if depthFirst {
			item = work[len(work)-1]
			work = work[:len(work)-1]
			// DFS marks on pop so a deeper path may still reach a vertex
			// that sits lower on the stack.
			if visited[item.at] {
				continue
			}
			visited[item.at] = true
		} else {
			item = work[0]
			work = work[1:]
		}

		if item.at == target {
			return g.edgesOf(item.path), true
		}

		arcs := g.vertices[item.at].arcs
		for i := range arcs {
			// Stack pops in reverse, so push DFS neighbours last-to-first.
			a := arcs[i]
			if depthFirst {
				a = arcs[len(arcs)-1-i]
			}
			if visited[a.to] {
				continue
			}
			if !depthFirst {
				visited[a.to] = true
			}

			path := make([]step, len(item.path), len(item.path)+1)
			copy(path, item.path)
			path = append(path, step{from: item.at, arc: a})
			work = append(work, workItem{at: a.to, path: path})
		}
	}

	return nil, false
}

// FoldPath multiplies seed by every edge weight on the path from one value
// to another.
//
// Description:
//
//	Calls FindPath and left-folds seed over the edge weights in path order.
//	When no path exists the second return value is false and the first is 0.
//
// Example:
//
//	v, ok := g.FoldPath("sec", "hr", 3600) // 1.0, true
func (g *Graph[T]) FoldPath(from, to T, seed float64) (float64, bool) {
	path, ok := g.FindPath(from, to)
	if !ok {
		return 0, false
	}
	return Fold(path, seed), true
}

// Fold multiplies seed by each edge weight in order.
func Fold[T comparable](path []Edge[T], seed float64) float64 {
	acc := seed
	for _, e := range path {
		acc *= e.Weight
	}
	return acc
}

// Components groups vertex values into connected components.
//
// Components are ordered by the first appearance of any of their values,
// and values inside a component are in discovery order. Two values are
// convertible into each other exactly when they share a component.
func (g *Graph[T]) Components() [][]T {
	seen := make([]bool, len(g.vertices))
	var components [][]T

	for root := range g.vertices {
		if seen[root] {
			continue
		}
		seen[root] = true
		queue := []int{root}
		var members []T

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, g.vertices[cur].value)
			for _, a := range g.vertices[cur].arcs {
				if !seen[a.to] {
					seen[a.to] = true
					queue = append(queue, a.to)
				}
			}
		}
		components = append(components, members)
	}

	return components
}

func (g *Graph[T]) edgesOf(path []step) []Edge[T] {
	edges := make([]Edge[T], len(path))
	for i, s := range path {
		edges[i] = Edge[T]{
			From:   g.vertices[s.from].value,
			To:     g.vertices[s.arc.to].value,
			Weight: s.arc.weight,
		}
	}
	return edges
}
