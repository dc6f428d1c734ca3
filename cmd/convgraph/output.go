// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/AleutianAI/convgraph/internal/telemetry"
	"github.com/AleutianAI/convgraph/pkg/ux"
	"github.com/prometheus/client_golang/prometheus"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (e *env) printer() *ux.Printer {
	if e.plain {
		return ux.NewPlainPrinter(e.stdout)
	}
	return ux.NewPrinter(e.stdout)
}

// startTelemetry installs the configured exporters. Stdout exporters write
// to stderr so command output stays parseable. A nil registry gets a
// private one.
func (e *env) startTelemetry(ctx context.Context, registry *prometheus.Registry) (func(), error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Traces:       e.cfg.Telemetry.Traces,
		Metrics:      e.cfg.Telemetry.Metrics,
		OTLPEndpoint: e.cfg.Telemetry.OTLPEndpoint,
		ServiceName:  e.cfg.Telemetry.ServiceName,
		Writer:       e.stderr,
		Registerer:   registry,
	})
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	return func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			e.logger.Warn("telemetry shutdown failed", "error", err)
		}
	}, nil
}
