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

import "fmt"

// Strategy selects the order in which FindPath explores the graph.
//
// Both strategies find a path whenever one exists. They differ only in
// which path is returned when several exist.
type Strategy int

const (
	// BreadthFirst returns a path with the fewest hops.
	BreadthFirst Strategy = iota

	// DepthFirst returns the first path reached following edges in
	// insertion order.
	DepthFirst
)

// String returns "bfs" or "dfs".
func (s Strategy) String() string {
	switch s {
	case BreadthFirst:
		return "bfs"
	case DepthFirst:
		return "dfs"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "bfs" or "dfs". The empty string selects BreadthFirst.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "bfs":
		return BreadthFirst, nil
	case "dfs":
		return DepthFirst, nil
	default:
		return BreadthFirst, fmt.Errorf("unknown search strategy %q (want bfs or dfs)", s)
	}
}

// Options configures a Graph.
type Options struct {
	// Strategy is the path search order. Default: BreadthFirst.
	Strategy Strategy
}

// DefaultOptions returns breadth-first search options.
func DefaultOptions() Options {
	return Options{Strategy: BreadthFirst}
}

// Option is a functional option for New.
type Option func(*Options)

// WithStrategy sets the path search order.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}
