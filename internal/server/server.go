// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package server exposes a ConversionGraph over HTTP.
//
// # Routes
//
//	GET  /health      liveness plus graph size
//	GET  /metrics     Prometheus exposition
//	GET  /v1/units    vocabulary and connected components
//	POST /v1/convert  {"from","to","value"} -> answer
//	POST /v1/path     {"from","to","value"} -> hops and answer
//
// Every request gets an X-Request-ID (reused when the client sends one),
// is counted in the HTTP metrics, and is traced with otelgin. An optional
// token bucket limits the request rate across all clients.
//
// # Thread Safety
//
// The graph is read-only, so handlers run concurrently without locking.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/AleutianAI/convgraph/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// shutdownTimeout bounds graceful shutdown once the run context ends.
const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Port to listen on. 0 picks a free port.
	Port int

	// RateLimit is requests per second across all clients. 0 disables.
	RateLimit float64

	// Burst is the token bucket size. Defaults to 1 when RateLimit > 0.
	Burst int

	// ServiceName names the otelgin spans.
	ServiceName string

	// Registry receives the HTTP metrics and backs /metrics. A private
	// registry is created when nil.
	Registry *prometheus.Registry
}

// Server serves conversion queries over HTTP.
type Server struct {
	graph    *conversion.ConversionGraph
	logger   *logging.Logger
	cfg      Config
	registry *prometheus.Registry
	metrics  *Metrics
	router   *gin.Engine
}

// New creates a Server and registers its routes.
//
// # Description
//
// Gin's mode is left to the caller (gin.SetMode). logger may be nil, in
// which case request logs are discarded.
//
// # Outputs
//
//   - *Server: Ready to Run or to be driven through Router in tests.
func New(cg *conversion.ConversionGraph, logger *logging.Logger, cfg Config) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With("component", "http")
	if cfg.ServiceName == "" {
		cfg.ServiceName = "convgraph"
	}
	if cfg.RateLimit > 0 && cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		graph:    cg,
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		metrics:  NewMetrics(reg),
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(s.cfg.ServiceName))
	router.Use(RequestID())
	router.Use(Observe(s.metrics, s.logger))

	var limiter *rate.Limiter
	if s.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.Burst)
	}

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.Use(RateLimit(limiter, s.metrics))
	{
		v1.GET("/units", s.handleUnits)
		v1.POST("/convert", s.handleConvert)
		v1.POST("/path", s.handlePath)
	}
	return router
}

// Router returns the gin engine. Exposed for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
//
// # Outputs
//
//   - error: nil after a clean shutdown; listen and serve errors otherwise.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}
