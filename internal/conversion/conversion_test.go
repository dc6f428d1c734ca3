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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/AleutianAI/convgraph/internal/graph"
	"github.com/AleutianAI/convgraph/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceFacts are the length and time facts of the reference scenario.
var referenceFacts = []Fact{
	{From: "m", To: "ft", Rate: 3.28},
	{From: "ft", To: "in", Rate: 12.0},
	{From: "hr", To: "min", Rate: 60.0},
	{From: "min", To: "sec", Rate: 60.0},
}

// createTestGraph builds the reference graph explicitly for each test.
func createTestGraph(t *testing.T, opts ...Option) *ConversionGraph {
	t.Helper()
	cg, err := Build(DefaultVocabulary(), referenceFacts, opts...)
	require.NoError(t, err)
	return cg
}

func query(t *testing.T, from, to string, value float64) UnitConversion {
	t.Helper()
	q, err := NewUnitConversion(DefaultVocabulary(), from, to, value)
	require.NoError(t, err)
	return q
}

func TestConvert_ReferenceScenario(t *testing.T) {
	cg := createTestGraph(t)
	ctx := context.Background()

	t.Run("m to in", func(t *testing.T) {
		res := cg.Convert(ctx, query(t, "m", "in", 2.0))
		v, ok := res.Value()
		require.True(t, ok)
		assert.InDelta(t, 78.72, v, 1e-9)
		assert.Equal(t, "answer = 78.72", res.String())
	})

	t.Run("in to m", func(t *testing.T) {
		res := cg.Convert(ctx, query(t, "in", "m", 13.0))
		v, ok := res.Value()
		require.True(t, ok)
		assert.InDelta(t, 0.3302846, v, 1e-6)
	})

	t.Run("sec to hr", func(t *testing.T) {
		res := cg.Convert(ctx, query(t, "sec", "hr", 3600.0))
		v, ok := res.Value()
		require.True(t, ok)
		assert.InDelta(t, 1.0, v, 1e-9)
		assert.Equal(t, "answer = 1", res.String())
	})

	t.Run("in to hr is not convertible", func(t *testing.T) {
		res := cg.Convert(ctx, query(t, "in", "hr", 13.0))
		assert.False(t, res.Convertible())
		assert.Equal(t, NotConvertible(), res)
		assert.Equal(t, "not convertible!", res.String())
	})
}

func TestConvert_DirectAndInverseFacts(t *testing.T) {
	cg := createTestGraph(t)
	ctx := context.Background()

	for _, f := range referenceFacts {
		for _, v := range []float64{1, 2.5, -4, 0} {
			fwd, ok := cg.Convert(ctx, query(t, f.From, f.To, v)).Value()
			require.True(t, ok)
			assert.InDelta(t, v*f.Rate, fwd, 1e-9, "%s -> %s", f.From, f.To)

			inv, ok := cg.Convert(ctx, query(t, f.To, f.From, v)).Value()
			require.True(t, ok)
			assert.InDelta(t, v/f.Rate, inv, 1e-9, "%s -> %s", f.To, f.From)
		}
	}
}

func TestConvert_Identity(t *testing.T) {
	cg := createTestGraph(t)

	for _, u := range DefaultUnits {
		v, ok := cg.Convert(context.Background(), query(t, u, u, 42.5)).Value()
		require.True(t, ok, u)
		assert.Equal(t, 42.5, v)
	}
}

func TestConvert_UnitWithoutFacts(t *testing.T) {
	vocab, err := NewVocabulary("m", "ft", "km")
	require.NoError(t, err)
	cg, err := Build(vocab, []Fact{{From: "m", To: "ft", Rate: 3.28}})
	require.NoError(t, err)

	res, err := cg.ConvertTokens(context.Background(), "km", "km", 1)
	require.NoError(t, err, "a known unit without facts is not an input error")
	assert.False(t, res.Convertible())
}

func TestConvert_Linear(t *testing.T) {
	cg := createTestGraph(t)
	ctx := context.Background()

	base, ok := cg.Convert(ctx, query(t, "hr", "sec", 1)).Value()
	require.True(t, ok)

	for _, k := range []float64{0.25, 3, 1000} {
		scaled, ok := cg.Convert(ctx, query(t, "hr", "sec", k)).Value()
		require.True(t, ok)
		assert.InDelta(t, base*k, scaled, 1e-6)
	}
}

func TestConvert_StrategiesAgree(t *testing.T) {
	bfs := createTestGraph(t, WithStrategy(graph.BreadthFirst))
	dfs := createTestGraph(t, WithStrategy(graph.DepthFirst))
	ctx := context.Background()

	for _, from := range DefaultUnits {
		for _, to := range DefaultUnits {
			a := bfs.Convert(ctx, query(t, from, to, 3))
			b := dfs.Convert(ctx, query(t, from, to, 3))
			require.Equal(t, a.Convertible(), b.Convertible(), "%s -> %s", from, to)
			va, _ := a.Value()
			vb, _ := b.Value()
			assert.InDelta(t, va, vb, 1e-9)
		}
	}
}

func TestConvertTokens_InvalidUnit(t *testing.T) {
	cg := createTestGraph(t)

	_, err := cg.ConvertTokens(context.Background(), "km", "m", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUnit))

	var unitErr *InvalidUnitError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "km", unitErr.Token)
	assert.Equal(t, DefaultUnits, unitErr.Known)

	_, err = cg.ConvertTokens(context.Background(), "m", "furlong", 1)
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestBuild_RejectsUnknownUnit(t *testing.T) {
	facts := append([]Fact{}, referenceFacts...)
	facts = append(facts, Fact{From: "yd", To: "ft", Rate: 3})

	cg, err := Build(DefaultVocabulary(), facts)
	assert.Nil(t, cg)
	require.ErrorIs(t, err, ErrInvalidUnit)
	assert.Contains(t, err.Error(), "fact 4")
}

func TestPath(t *testing.T) {
	cg := createTestGraph(t)

	res, ok := cg.Path(context.Background(), query(t, "sec", "hr", 7200))
	require.True(t, ok)
	assert.Equal(t, "sec", res.From)
	assert.Equal(t, "hr", res.To)
	require.Len(t, res.Hops, 2)
	assert.Equal(t, "sec", res.Hops[0].From)
	assert.Equal(t, "min", res.Hops[0].To)
	assert.InDelta(t, 1.0/60, res.Hops[0].Rate, 1e-12)
	assert.Equal(t, "hr", res.Hops[1].To)

	v, ok := res.Result.Value()
	require.True(t, ok)
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestPath_NotConvertible(t *testing.T) {
	cg := createTestGraph(t)

	res, ok := cg.Path(context.Background(), query(t, "m", "min", 1))
	assert.False(t, ok)
	assert.Empty(t, res.Hops)
	assert.False(t, res.Result.Convertible())
}

func TestStats(t *testing.T) {
	cg := createTestGraph(t, WithStrategy(graph.DepthFirst))

	s := cg.Stats()
	assert.Equal(t, 4, s.Facts)
	assert.Equal(t, 6, s.Units)
	assert.Equal(t, 8, s.Edges)
	assert.Equal(t, "dfs", s.Strategy)
	assert.Equal(t, [][]string{{"m", "ft", "in"}, {"hr", "min", "sec"}}, s.Components)
}

func TestNewConversionGraph_LogsBuild(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, JSON: true, Output: &buf})
	defer logger.Close()

	createTestGraph(t, WithLogger(logger))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "conversion graph built", rec["msg"])
	assert.Equal(t, float64(6), rec["units"])
	assert.Equal(t, float64(8), rec["edges"])
}

func TestConvert_ConcurrentQueries(t *testing.T) {
	cg := createTestGraph(t)
	q := query(t, "m", "in", 2)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := cg.Convert(context.Background(), q).String(); got != "answer = 78.72" {
					t.Errorf("Convert = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestConversionResult_JSON(t *testing.T) {
	tests := []struct {
		name   string
		result ConversionResult
		want   string
	}{
		{"value", Converted(1.5), `{"convertible":true,"value":1.5,"answer":"answer = 1.5"}`},
		{"absent", NotConvertible(), `{"convertible":false,"value":null,"answer":"not convertible!"}`},
		{"overflow", Converted(math.Inf(1)), `{"convertible":true,"value":null,"answer":"answer = +Inf"}`},
		{"nan", Converted(math.NaN()), `{"convertible":true,"value":null,"answer":"answer = NaN"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestPath_NonFiniteEncodesAsJSON(t *testing.T) {
	vocab := DefaultVocabulary()
	cg, err := Build(vocab, []Fact{{From: "m", To: "ft", Rate: 0}})
	require.NoError(t, err)

	res, ok := cg.Path(context.Background(), query(t, "ft", "m", 1))
	require.True(t, ok)
	v, _ := res.Result.Value()
	assert.True(t, math.IsInf(v, 1))

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"from": "ft", "to": "m", "input": 1,
		"hops": [{"from": "ft", "to": "m", "rate": null}],
		"result": {"convertible": true, "value": null, "answer": "answer = +Inf"}
	}`, string(data))

	overflow := cg.Convert(context.Background(), query(t, "m", "m", 1e308))
	assert.Equal(t, "answer = 1e+308", overflow.String())
}

func TestUnitConversion_String(t *testing.T) {
	assert.Equal(t, "2 m -> in", query(t, "m", "in", 2).String())
}
