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
	"net/http"
	"strconv"
	"time"

	"github.com/AleutianAI/convgraph/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key for the request ID.
const requestIDKey = "convgraph_request_id"

// RequestID assigns each request an ID, reusing the client's X-Request-ID
// when present, and echoes it in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the ID set by RequestID, or "" outside it.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RateLimit rejects requests with 429 when limiter has no tokens.
// A nil limiter allows everything.
func RateLimit(limiter *rate.Limiter, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limiter.Allow() {
			c.Next()
			return
		}
		m.RateLimitedTotal.Inc()
		abortWithError(c, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
	}
}

// Observe records request metrics and logs one line per request.
func Observe(m *Metrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		method := c.Request.Method

		m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		m.RequestDurationSeconds.WithLabelValues(route, method).Observe(elapsed.Seconds())

		args := []any{
			"request_id", GetRequestID(c),
			"method", method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", args...)
			return
		}
		logger.Debug("request", args...)
	}
}
