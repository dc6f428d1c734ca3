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
	"fmt"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/go-playground/validator/v10"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidUnit    = "INVALID_UNIT"
	CodeRateLimited    = "RATE_LIMITED"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ConvertRequest is the body of POST /v1/convert and POST /v1/path.
//
// Value is a pointer so that an explicit 0 is distinguished from a
// missing field.
type ConvertRequest struct {
	From  string   `json:"from" validate:"required"`
	To    string   `json:"to" validate:"required"`
	Value *float64 `json:"value" validate:"required"`
}

// Validate checks required fields.
func (r *ConvertRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// ConvertResponse answers POST /v1/convert.
//
// Result is null when the units are not convertible or when the answer is
// not finite; Answer always carries the text form.
type ConvertResponse struct {
	RequestID   string   `json:"request_id"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Value       float64  `json:"value"`
	Convertible bool     `json:"convertible"`
	Result      *float64 `json:"result"`
	Answer      string   `json:"answer"`
}

// PathResponse answers POST /v1/path.
type PathResponse struct {
	RequestID   string           `json:"request_id"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Value       float64          `json:"value"`
	Convertible bool             `json:"convertible"`
	Hops        []conversion.Hop `json:"hops"`
	Result      *float64         `json:"result"`
	Answer      string           `json:"answer"`
}

// UnitsResponse answers GET /v1/units.
type UnitsResponse struct {
	Units      []string   `json:"units"`
	Components [][]string `json:"components"`
	Strategy   string     `json:"strategy"`
}

// HealthResponse answers GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Units  int    `json:"units"`
	Edges  int    `json:"edges"`
}

// ErrorResponse is the body of every 4xx response.
type ErrorResponse struct {
	Code      string   `json:"code"`
	Error     string   `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
	Known     []string `json:"known_units,omitempty"`
}
