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
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "convgraph.conversion"

var meter = otel.Meter(instrumentationName)

var (
	conversionsTotal metric.Int64Counter
	conversionHops   metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		conversionsTotal, err = meter.Int64Counter(
			"convgraph_conversions_total",
			metric.WithDescription("Total number of conversion queries"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		conversionHops, err = meter.Int64Histogram(
			"convgraph_conversion_hops",
			metric.WithDescription("Number of facts chained to answer a query"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordQueryMetrics records one query. hops is -1 when not convertible.
func recordQueryMetrics(ctx context.Context, op string, hops int) {
	if err := initMetrics(); err != nil {
		return
	}

	convertible := hops >= 0
	conversionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Bool("convertible", convertible),
	))
	if convertible {
		conversionHops.Record(ctx, int64(hops))
	}
}

func startQuerySpan(ctx context.Context, op string, q UnitConversion) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "ConversionGraph."+op,
		trace.WithAttributes(
			attribute.String("conversion.from", q.From.String()),
			attribute.String("conversion.to", q.To.String()),
			attribute.Float64("conversion.input", q.Value),
		),
	)
}

func setQuerySpanResult(span trace.Span, hops int) {
	span.SetAttributes(
		attribute.Bool("conversion.convertible", hops >= 0),
		attribute.Int("conversion.hops", hops),
	)
}
