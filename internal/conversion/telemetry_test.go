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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConvert_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	cg := createTestGraph(t)
	cg.Convert(context.Background(), query(t, "m", "in", 2))
	cg.Convert(context.Background(), query(t, "in", "hr", 2))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "ConversionGraph.Convert", spans[0].Name())

	attrs := attributeMap(spans[0].Attributes())
	assert.Equal(t, "m", attrs["conversion.from"].AsString())
	assert.Equal(t, "in", attrs["conversion.to"].AsString())
	assert.True(t, attrs["conversion.convertible"].AsBool())
	assert.Equal(t, int64(2), attrs["conversion.hops"].AsInt64())

	attrs = attributeMap(spans[1].Attributes())
	assert.False(t, attrs["conversion.convertible"].AsBool())
}

func attributeMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}
