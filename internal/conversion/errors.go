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
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conversion inputs.
var (
	// ErrInvalidUnit indicates a unit token outside the vocabulary.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrInvalidVocabulary indicates a malformed vocabulary definition.
	ErrInvalidVocabulary = errors.New("invalid vocabulary")
)

// InvalidUnitError provides details about a rejected unit token.
type InvalidUnitError struct {
	Token string
	Known []string
}

// Error implements the error interface.
func (e *InvalidUnitError) Error() string {
	if len(e.Known) > 0 {
		return fmt.Sprintf("invalid unit %q; known units: %s", e.Token, strings.Join(e.Known, ", "))
	}
	return fmt.Sprintf("invalid unit %q", e.Token)
}

// Unwrap returns the sentinel error.
func (e *InvalidUnitError) Unwrap() error {
	return ErrInvalidUnit
}
