// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/connectivity"
)

func TestSetup_None(t *testing.T) {
	p, err := Setup(context.Background(), Config{Traces: ExporterNone, Metrics: ExporterNone})
	require.NoError(t, err)

	assert.NotNil(t, p.TracerProvider())
	assert.NotNil(t, p.MeterProvider())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_UnknownExporters(t *testing.T) {
	_, err := Setup(context.Background(), Config{Traces: "jaeger"})
	assert.ErrorContains(t, err, "unknown trace exporter")

	_, err = Setup(context.Background(), Config{Metrics: "statsd"})
	assert.ErrorContains(t, err, "unknown metric exporter")
}

func TestSetup_StdoutTraces(t *testing.T) {
	var buf bytes.Buffer
	p, err := Setup(context.Background(), Config{
		Traces:      ExporterStdout,
		ServiceName: "convgraph-test",
		Writer:      &buf,
	})
	require.NoError(t, err)

	_, span := p.TracerProvider().Tracer("test").Start(context.Background(), "ConversionGraph.Convert")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "ConversionGraph.Convert")
	assert.Contains(t, buf.String(), "convgraph-test")
}

func TestSetup_PrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := Setup(context.Background(), Config{
		Metrics:     ExporterPrometheus,
		ServiceName: "convgraph-test",
		Registerer:  reg,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	counter, err := p.MeterProvider().Meter("test").Int64Counter("test_queries")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "test_queries") {
			found = true
			require.NotEmpty(t, mf.GetMetric())
			assert.Equal(t, 3.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found, "counter exported through the prometheus registry")
}

func TestSetup_StdoutMetrics(t *testing.T) {
	var buf bytes.Buffer
	p, err := Setup(context.Background(), Config{Metrics: ExporterStdout, Writer: &buf})
	require.NoError(t, err)

	counter, err := p.MeterProvider().Meter("test").Int64Counter("stdout_queries")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "stdout_queries")
}

func TestSetup_OTLPClosesConnection(t *testing.T) {
	p, err := Setup(context.Background(), Config{
		Traces:       ExporterOTLP,
		OTLPEndpoint: "127.0.0.1:1",
		ServiceName:  "convgraph-test",
	})
	require.NoError(t, err)
	require.NotNil(t, p.conn)
	conn := p.conn

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Nil(t, p.conn)
	assert.Equal(t, connectivity.Shutdown, conn.GetState())
}
