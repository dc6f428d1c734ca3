// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "convgraph"
	httpSubsystem    = "http"
)

// Metrics holds the Prometheus collectors for the HTTP surface.
type Metrics struct {
	// RequestsTotal counts requests.
	// Labels: route, method, status
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures handler latency.
	// Labels: route, method
	RequestDurationSeconds *prometheus.HistogramVec

	// RateLimitedTotal counts requests rejected with 429.
	RateLimitedTotal prometheus.Counter

	// InvalidUnitsTotal counts queries rejected for an unknown unit token.
	InvalidUnitsTotal prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
//
// Panics if reg already holds collectors with the same names.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "requests_total",
				Help:      "Total HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route", "method"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
		InvalidUnitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: httpSubsystem,
				Name:      "invalid_units_total",
				Help:      "Queries rejected because a unit token is not in the vocabulary",
			},
		),
	}
}
