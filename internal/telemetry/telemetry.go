// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry configures OpenTelemetry tracing and metrics.
//
// Traces can be discarded, printed to a writer, or shipped over OTLP/gRPC.
// Metrics can be discarded, printed periodically to a writer, or exposed
// through a Prometheus registry. Setup installs the providers globally so
// instrumented packages pick them up through otel.Tracer and otel.Meter.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Exporter names.
const (
	ExporterNone       = "none"
	ExporterStdout     = "stdout"
	ExporterOTLP       = "otlp"
	ExporterPrometheus = "prometheus"
)

// Config selects exporters.
type Config struct {
	// Traces is none, stdout or otlp.
	Traces string

	// Metrics is none, stdout or prometheus.
	Metrics string

	// OTLPEndpoint is the collector host:port for otlp traces.
	OTLPEndpoint string

	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string

	// Writer receives stdout exporter output. Default: os.Stdout
	Writer io.Writer

	// Registerer receives the Prometheus collector. Default:
	// prometheus.DefaultRegisterer
	Registerer prometheus.Registerer

	// MetricInterval is the stdout metric export period. Default: 30s
	MetricInterval time.Duration
}

// Providers holds the installed SDK providers.
type Providers struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	// conn is the OTLP collector connection; the exporter does not own it.
	conn *grpc.ClientConn
}

// Setup creates providers for cfg and installs them as the global
// tracer and meter providers.
//
// # Description
//
// With both exporters set to none, no SDK providers are installed and the
// otel no-op defaults remain. Call Shutdown to flush pending telemetry.
//
// # Outputs
//
//   - *Providers: Never nil on success.
//   - error: Unknown exporter names or exporter construction failures.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.MetricInterval <= 0 {
		cfg.MetricInterval = 30 * time.Second
	}

	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))
	p := &Providers{}

	spanExporter, err := p.newSpanExporter(ctx, cfg)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if spanExporter != nil {
		p.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithResource(res),
			sdktrace.WithBatcher(spanExporter),
		)
		otel.SetTracerProvider(p.tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))
	}

	reader, err := newMetricReader(cfg)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if reader != nil {
		p.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(reader),
		)
		otel.SetMeterProvider(p.meterProvider)
	}

	return p, nil
}

func (p *Providers) newSpanExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Traces {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(cfg.Writer))
		if err != nil {
			return nil, fmt.Errorf("create stdout trace exporter: %w", err)
		}
		return exp, nil
	case ExporterOTLP:
		conn, err := grpc.NewClient(cfg.OTLPEndpoint,
			grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("create gRPC connection: %w", err)
		}
		p.conn = conn
		exp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("create OTLP trace exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Traces)
	}
}

func newMetricReader(cfg Config) (sdkmetric.Reader, error) {
	switch cfg.Metrics {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.Writer))
		if err != nil {
			return nil, fmt.Errorf("create stdout metric exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.MetricInterval)), nil
	case ExporterPrometheus:
		exp, err := otelprom.New(otelprom.WithRegisterer(cfg.Registerer))
		if err != nil {
			return nil, fmt.Errorf("create prometheus metric exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("unknown metric exporter %q", cfg.Metrics)
	}
}

// TracerProvider returns the installed provider, or the global one when
// tracing is disabled.
func (p *Providers) TracerProvider() trace.TracerProvider {
	if p.tracerProvider == nil {
		return otel.GetTracerProvider()
	}
	return p.tracerProvider
}

// MeterProvider returns the installed provider, or the global one when
// metrics are disabled.
func (p *Providers) MeterProvider() metric.MeterProvider {
	if p.meterProvider == nil {
		return otel.GetMeterProvider()
	}
	return p.meterProvider
}

// Shutdown flushes and stops the providers, waiting at most 5 seconds,
// then closes the OTLP connection.
func (p *Providers) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer provider: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown meter provider: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close OTLP connection: %w", err))
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}
