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

// Connection is a single weighted fact used to build a Graph.
//
// Weight is the multiplier from From to To. The reverse direction is
// derived as 1/Weight. Zero and negative weights are accepted as-is.
type Connection[T comparable] struct {
	From   T
	To     T
	Weight float64
}

// NewConnection creates a Connection.
func NewConnection[T comparable](from, to T, weight float64) Connection[T] {
	return Connection[T]{From: from, To: to, Weight: weight}
}

// Edge is one hop of a path returned by FindPath.
type Edge[T comparable] struct {
	From   T       `json:"from"`
	To     T       `json:"to"`
	Weight float64 `json:"weight"`
}

// arc is the stored form of an edge: destination arena index and weight.
type arc struct {
	to     int
	weight float64
}

type vertex[T comparable] struct {
	value T
	arcs  []arc
}

// Graph is a weighted graph over comparable values.
//
// Description:
//
//	Vertices are stored in an arena slice and looked up by value through
//	an index map. Each connection adds a forward edge and an inverse edge,
//	so connectivity is always symmetric.
//
// Thread Safety:
//
//	Graph is built entirely inside New and is read-only afterwards. All
//	methods are safe for concurrent use.
type Graph[T comparable] struct {
	vertices []vertex[T]
	index    map[T]int
	edges    int
	options  Options
}

// New builds a Graph from the given connections.
//
// Description:
//
//	For every connection the vertices for From and To are created if they
//	do not exist yet, then the forward edge (Weight) and the reverse edge
//	(1/Weight) are appended. Duplicate connections produce parallel edges.
//
// Inputs:
//
//	connections - Facts to insert, in order. May be empty.
//	opts - Optional search configuration.
//
// Outputs:
//
//	*Graph[T] - The read-only graph.
//
// Example:
//
//	g := graph.New([]graph.Connection[string]{
//	    graph.NewConnection("m", "ft", 3.28),
//	    graph.NewConnection("ft", "in", 12.0),
//	})
//	v, ok := g.FoldPath("m", "in", 2.0) // 78.72, true
func New[T comparable](connections []Connection[T], opts ...Option) *Graph[T] {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	g := &Graph[T]{
		vertices: make([]vertex[T], 0, len(connections)),
		index:    make(map[T]int, len(connections)),
		options:  options,
	}

	for _, c := range connections {
		from := g.vertexFor(c.From)
		to := g.vertexFor(c.To)
		g.addEdge(from, to, c.Weight)
		g.addEdge(to, from, 1/c.Weight)
	}

	return g
}

// vertexFor returns the arena index of value, creating the vertex if needed.
func (g *Graph[T]) vertexFor(value T) int {
	if idx, ok := g.index[value]; ok {
		return idx
	}
	idx := len(g.vertices)
	g.vertices = append(g.vertices, vertex[T]{value: value})
	g.index[value] = idx
	return idx
}

func (g *Graph[T]) addEdge(from, to int, weight float64) {
	g.vertices[from].arcs = append(g.vertices[from].arcs, arc{to: to, weight: weight})
	g.edges++
}

// Len returns the number of vertices.
func (g *Graph[T]) Len() int {
	return len(g.vertices)
}

// EdgeCount returns the number of directed edges (two per connection).
func (g *Graph[T]) EdgeCount() int {
	return g.edges
}

// Contains reports whether value appeared in at least one connection.
func (g *Graph[T]) Contains(value T) bool {
	_, ok := g.index[value]
	return ok
}

// Values returns vertex values in insertion order.
func (g *Graph[T]) Values() []T {
	values := make([]T, len(g.vertices))
	for i, v := range g.vertices {
		values[i] = v.value
	}
	return values
}

// Strategy returns the search strategy the graph was built with.
func (g *Graph[T]) Strategy() Strategy {
	return g.options.Strategy
}
