// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package conversion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AleutianAI/convgraph/internal/graph"
	"github.com/AleutianAI/convgraph/pkg/logging"
)

// UnitConversion is a known fact or a query.
//
// As a fact it reads "1 From equals Value To". As a query it reads
// "convert Value From into To".
type UnitConversion struct {
	From  Unit
	To    Unit
	Value float64
}

// NewUnitConversion validates both tokens against vocab.
//
// Returns an error wrapping ErrInvalidUnit if either token is unknown.
func NewUnitConversion(vocab *Vocabulary, from, to string, value float64) (UnitConversion, error) {
	f, err := vocab.Parse(from)
	if err != nil {
		return UnitConversion{}, err
	}
	t, err := vocab.Parse(to)
	if err != nil {
		return UnitConversion{}, err
	}
	return UnitConversion{From: f, To: t, Value: value}, nil
}

// String renders "<value> <from> -> <to>".
func (c UnitConversion) String() string {
	return fmt.Sprintf("%s %s -> %s", FormatValue(c.Value), c.From, c.To)
}

// Fact is an unvalidated (from, to, rate) triple as read from input.
type Fact struct {
	From string  `json:"from" yaml:"from"`
	To   string  `json:"to" yaml:"to"`
	Rate float64 `json:"rate" yaml:"rate"`
}

// ParseFacts validates every fact against vocab.
//
// The first invalid token aborts parsing; the error names the fact index.
func ParseFacts(vocab *Vocabulary, facts []Fact) ([]UnitConversion, error) {
	out := make([]UnitConversion, 0, len(facts))
	for i, f := range facts {
		uc, err := NewUnitConversion(vocab, f.From, f.To, f.Rate)
		if err != nil {
			return nil, fmt.Errorf("fact %d (%s -> %s): %w", i, f.From, f.To, err)
		}
		out = append(out, uc)
	}
	return out, nil
}

// Hop is one fact applied while answering a query.
type Hop struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

// MarshalJSON encodes a non-finite Rate, the reverse of a zero-rate fact,
// as null.
func (h Hop) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From string   `json:"from"`
		To   string   `json:"to"`
		Rate *float64 `json:"rate"`
	}{From: h.From, To: h.To, Rate: finite(h.Rate, true)})
}

// PathResult describes how a query was answered.
type PathResult struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Input  float64          `json:"input"`
	Hops   []Hop            `json:"hops"`
	Result ConversionResult `json:"result"`
}

// Option configures a ConversionGraph.
type Option func(*options)

type options struct {
	strategy graph.Strategy
	logger   *logging.Logger
}

// WithStrategy sets the path search order used for queries.
func WithStrategy(s graph.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// ConversionGraph answers conversion queries from a fixed set of facts.
//
// # Thread Safety
//
// ConversionGraph is immutable after NewConversionGraph returns and is
// safe for concurrent use.
type ConversionGraph struct {
	graph *graph.Graph[Unit]
	vocab *Vocabulary
	facts int
}

// NewConversionGraph builds a ConversionGraph from validated facts.
//
// # Description
//
// Each fact becomes a graph connection (From, To, Value); the graph adds
// the inverse edge itself. Zero, negative, duplicate and conflicting rates
// are accepted without reconciliation.
//
// # Inputs
//
//   - vocab: Vocabulary used to parse query tokens in ConvertTokens.
//   - facts: Validated facts. May be empty.
//   - opts: Optional strategy and logger.
//
// # Outputs
//
//   - *ConversionGraph: Ready for queries.
func NewConversionGraph(vocab *Vocabulary, facts []UnitConversion, opts ...Option) *ConversionGraph {
	o := options{strategy: graph.BreadthFirst}
	for _, opt := range opts {
		opt(&o)
	}

	connections := make([]graph.Connection[Unit], len(facts))
	for i, f := range facts {
		connections[i] = graph.NewConnection(f.From, f.To, f.Value)
	}

	cg := &ConversionGraph{
		graph: graph.New(connections, graph.WithStrategy(o.strategy)),
		vocab: vocab,
		facts: len(facts),
	}

	if o.logger != nil {
		o.logger.Debug("conversion graph built",
			"facts", len(facts),
			"units", cg.graph.Len(),
			"edges", cg.graph.EdgeCount(),
			"strategy", o.strategy.String(),
		)
	}
	return cg
}

// Build parses raw facts against vocab and builds the graph.
//
// Returns an error wrapping ErrInvalidUnit if any token is unknown; no
// partial graph is returned.
func Build(vocab *Vocabulary, facts []Fact, opts ...Option) (*ConversionGraph, error) {
	parsed, err := ParseFacts(vocab, facts)
	if err != nil {
		return nil, err
	}
	return NewConversionGraph(vocab, parsed, opts...), nil
}

// Convert answers query by folding query.Value along a path between the
// two units.
//
// The result is empty when either unit has no facts or the units are in
// different components. ctx is used for tracing only.
func (cg *ConversionGraph) Convert(ctx context.Context, query UnitConversion) ConversionResult {
	ctx, span := startQuerySpan(ctx, "Convert", query)
	defer span.End()

	path, ok := cg.graph.FindPath(query.From, query.To)
	hops := -1
	result := NotConvertible()
	if ok {
		hops = len(path)
		result = Converted(graph.Fold(path, query.Value))
	}

	setQuerySpanResult(span, hops)
	recordQueryMetrics(ctx, "convert", hops)
	return result
}

// ConvertTokens parses from and to against the graph's vocabulary and
// calls Convert.
//
// An unknown token returns an error wrapping ErrInvalidUnit; it is never
// reported as "not convertible".
func (cg *ConversionGraph) ConvertTokens(ctx context.Context, from, to string, value float64) (ConversionResult, error) {
	query, err := cg.Query(from, to, value)
	if err != nil {
		return NotConvertible(), err
	}
	return cg.Convert(ctx, query), nil
}

// Query builds a query against the graph's vocabulary.
func (cg *ConversionGraph) Query(from, to string, value float64) (UnitConversion, error) {
	return NewUnitConversion(cg.vocab, from, to, value)
}

// Path answers query and reports the hops used.
//
// The bool is false when the units are not convertible; PathResult still
// carries the query fields and an empty Result in that case.
func (cg *ConversionGraph) Path(ctx context.Context, query UnitConversion) (PathResult, bool) {
	ctx, span := startQuerySpan(ctx, "Path", query)
	defer span.End()

	res := PathResult{
		From:   query.From.String(),
		To:     query.To.String(),
		Input:  query.Value,
		Hops:   []Hop{},
		Result: NotConvertible(),
	}

	path, ok := cg.graph.FindPath(query.From, query.To)
	if !ok {
		setQuerySpanResult(span, -1)
		recordQueryMetrics(ctx, "path", -1)
		return res, false
	}

	for _, e := range path {
		res.Hops = append(res.Hops, Hop{From: e.From.String(), To: e.To.String(), Rate: e.Weight})
	}
	res.Result = Converted(graph.Fold(path, query.Value))

	setQuerySpanResult(span, len(path))
	recordQueryMetrics(ctx, "path", len(path))
	return res, true
}

// Vocabulary returns the vocabulary used for token parsing.
func (cg *ConversionGraph) Vocabulary() *Vocabulary {
	return cg.vocab
}

// Stats summarises the graph.
type Stats struct {
	Facts      int        `json:"facts"`
	Units      int        `json:"units"`
	Edges      int        `json:"edges"`
	Strategy   string     `json:"strategy"`
	Components [][]string `json:"components"`
}

// Stats returns counts and the connected components of the graph.
//
// Vocabulary units that appear in no fact are not part of any component.
func (cg *ConversionGraph) Stats() Stats {
	comps := cg.graph.Components()
	out := make([][]string, len(comps))
	for i, c := range comps {
		out[i] = make([]string, len(c))
		for j, u := range c {
			out[i][j] = u.String()
		}
	}
	return Stats{
		Facts:      cg.facts,
		Units:      cg.graph.Len(),
		Edges:      cg.graph.EdgeCount(),
		Strategy:   cg.graph.Strategy().String(),
		Components: out,
	}
}
