// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/AleutianAI/convgraph/internal/graph"
	"github.com/AleutianAI/convgraph/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, conversion.DefaultUnits, cfg.Units)
	assert.Len(t, cfg.Facts, 4)
	assert.Equal(t, "bfs", cfg.Strategy)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "none", cfg.Telemetry.Traces)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
}

func TestDefaultConfig_UnitsAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Units[0] = "changed"
	assert.Equal(t, "m", conversion.DefaultUnits[0])
}

func TestParse_EmptyDocumentUsesReferenceScenario(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParse_SettingsOnlyKeepsReferenceScenario(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  port: 9000\nstrategy: dfs\n"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "dfs", cfg.Strategy)
	assert.Len(t, cfg.Facts, 4)

	s, err := cfg.SearchStrategy()
	require.NoError(t, err)
	assert.Equal(t, graph.DepthFirst, s)
}

func TestParse_CustomVocabulary(t *testing.T) {
	doc := `
units: [km, m, cm]
facts:
  - {from: km, to: m, rate: 1000}
  - {from: m, to: cm, rate: 100}
logging:
  level: debug
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"km", "m", "cm"}, cfg.Units)
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel())

	cg, err := cfg.BuildGraph(logging.Nop())
	require.NoError(t, err)

	res, err := cg.ConvertTokens(context.Background(), "km", "cm", 2)
	require.NoError(t, err)
	v, ok := res.Value()
	require.True(t, ok)
	assert.InDelta(t, 200000.0, v, 1e-6)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantUnitErr bool
	}{
		{"unknown key", "unitz: [m]\n", false},
		{"malformed yaml", "units: [m\n", false},
		{"bad strategy", "strategy: astar\n", false},
		{"bad log level", "logging:\n  level: loud\n", false},
		{"bad port", "server:\n  port: 70000\n", false},
		{"bad traces exporter", "telemetry:\n  traces: jaeger\n", false},
		{"facts without units", "facts:\n  - {from: m, to: ft, rate: 3.28}\n", false},
		{"empty unit token", "units: [m, '']\nfacts: []\n", false},
		{"duplicate unit", "units: [m, m]\n", false},
		{"missing fact field", "units: [m, ft]\nfacts:\n  - {from: m, rate: 3.28}\n", false},
		{"fact with unknown unit", "units: [m, ft]\nfacts:\n  - {from: m, to: yd, rate: 1.09}\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.doc))
			assert.Nil(t, cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
			if tt.wantUnitErr {
				assert.ErrorIs(t, err, conversion.ErrInvalidUnit)
			}
		})
	}
}

func TestParse_ZeroRateAccepted(t *testing.T) {
	cfg, err := Parse([]byte("units: [a, b]\nfacts:\n  - {from: a, to: b, rate: 0}\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Facts[0].Rate)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units: [a, b]\nfacts:\n  - {from: a, to: b, rate: 2}\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Units)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "convgraph.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, conversion.DefaultUnits, cfg.Units)
	assert.Equal(t, "prometheus", cfg.Telemetry.Metrics)

	cg, err := cfg.BuildGraph(nil)
	require.NoError(t, err)
	res, err := cg.ConvertTokens(context.Background(), "m", "in", 2)
	require.NoError(t, err)
	assert.Equal(t, "answer = 78.72", res.String())
}

func TestLogLevel_FallsBackToInfo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "nonsense"
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
}
