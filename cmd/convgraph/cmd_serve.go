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
	"os"
	"os/signal"
	"syscall"

	"github.com/AleutianAI/convgraph/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(global *globalFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversion queries over HTTP",
		Long: `Start the HTTP API.

Endpoints:
  GET  /health
  GET  /metrics
  GET  /v1/units
  POST /v1/convert   {"from":"m","to":"in","value":2}
  POST /v1/path      {"from":"m","to":"in","value":2}

Stops gracefully on SIGINT or SIGTERM.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := global.setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Close()

			if cmd.Flags().Changed("port") {
				if port < 0 || port > 65535 {
					return newUsageError("--port %d out of range", port)
				}
				e.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, e)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	return cmd
}

func runServe(ctx context.Context, e *env) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	shutdown, err := e.startTelemetry(ctx, registry)
	if err != nil {
		return err
	}
	defer shutdown()

	cg, err := e.buildGraph("")
	if err != nil {
		return err
	}

	if e.cfg.Server.GinMode != "" {
		gin.SetMode(e.cfg.Server.GinMode)
	}

	srv := server.New(cg, e.logger, server.Config{
		Port:        e.cfg.Server.Port,
		RateLimit:   e.cfg.Server.RateLimit,
		Burst:       e.cfg.Server.Burst,
		ServiceName: e.cfg.Telemetry.ServiceName,
		Registry:    registry,
	})
	return srv.Run(ctx)
}
