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
	"errors"
	"net/http"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	stats := s.graph.Stats()
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Units:  stats.Units,
		Edges:  stats.Edges,
	})
}

func (s *Server) handleUnits(c *gin.Context) {
	stats := s.graph.Stats()
	c.JSON(http.StatusOK, UnitsResponse{
		Units:      s.graph.Vocabulary().Tokens(),
		Components: stats.Components,
		Strategy:   stats.Strategy,
	})
}

func (s *Server) handleConvert(c *gin.Context) {
	query, ok := s.bindQuery(c)
	if !ok {
		return
	}

	result := s.graph.Convert(c.Request.Context(), query)
	c.JSON(http.StatusOK, ConvertResponse{
		RequestID:   GetRequestID(c),
		From:        query.From.String(),
		To:          query.To.String(),
		Value:       query.Value,
		Convertible: result.Convertible(),
		Result:      result.Number(),
		Answer:      result.String(),
	})
}

func (s *Server) handlePath(c *gin.Context) {
	query, ok := s.bindQuery(c)
	if !ok {
		return
	}

	res, found := s.graph.Path(c.Request.Context(), query)
	c.JSON(http.StatusOK, PathResponse{
		RequestID:   GetRequestID(c),
		From:        res.From,
		To:          res.To,
		Value:       res.Input,
		Convertible: found,
		Hops:        res.Hops,
		Result:      res.Result.Number(),
		Answer:      res.Result.String(),
	})
}

// bindQuery decodes and validates the request body and parses its unit
// tokens. On failure it writes a 400 response and returns false.
func (s *Server) bindQuery(c *gin.Context) (conversion.UnitConversion, bool) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
		return conversion.UnitConversion{}, false
	}
	if err := req.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return conversion.UnitConversion{}, false
	}

	query, err := conversion.NewUnitConversion(s.graph.Vocabulary(), req.From, req.To, *req.Value)
	if err != nil {
		var unitErr *conversion.InvalidUnitError
		if errors.As(err, &unitErr) {
			s.metrics.InvalidUnitsTotal.Inc()
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
				Code:      CodeInvalidUnit,
				Error:     unitErr.Error(),
				RequestID: GetRequestID(c),
				Known:     unitErr.Known,
			})
			return conversion.UnitConversion{}, false
		}
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return conversion.UnitConversion{}, false
	}
	return query, true
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:      code,
		Error:     msg,
		RequestID: GetRequestID(c),
	})
}
