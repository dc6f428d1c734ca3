// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph provides a weighted value graph with path search and
// weight folding.
//
// Every connection inserted into the graph produces a pair of edges: the
// forward edge carrying the given weight and the reverse edge carrying its
// multiplicative inverse. Path queries walk the graph iteratively (BFS by
// default, DFS on request) and return the ordered edges between two values.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────────────────┐
//	│                        Graph Build and Query                            │
//	├─────────────────────────────────────────────────────────────────────────┤
//	│                                                                         │
//	│  ┌─────────────┐    ┌─────────────┐    ┌─────────────┐                  │
//	│  │ Connections │───▶│   Vertex    │───▶│  Edge pairs │                  │
//	│  │ (from,to,w) │    │   arena     │    │  (w, 1/w)   │                  │
//	│  └─────────────┘    └─────────────┘    └─────────────┘                  │
//	│                                               │                         │
//	│                                               ▼                         │
//	│  ┌─────────────┐    ┌─────────────┐    ┌─────────────┐                  │
//	│  │  Folded     │◀───│  Edge path  │◀───│  BFS / DFS  │                  │
//	│  │  value      │    │             │    │  work list  │                  │
//	│  └─────────────┘    └─────────────┘    └─────────────┘                  │
//	│                                                                         │
//	└─────────────────────────────────────────────────────────────────────────┘
//
// Vertices live in a single slice owned by the graph; edges refer to their
// destination by index, so there are no pointer cycles to manage.
//
// # Thread Safety
//
// A Graph is fully built by New and never modified afterwards. Once New
// returns, the graph may be queried from any number of goroutines.
package graph
