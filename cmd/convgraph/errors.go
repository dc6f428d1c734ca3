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
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/AleutianAI/convgraph/pkg/ux"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitBadArgs = 2
)

// ErrNotConvertible is returned when --fail-if-not-convertible is set and
// the query has no answer.
var ErrNotConvertible = errors.New("not convertible")

// usageError marks bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// exitCode maps err to a process exit code. Unknown units and usage
// errors are bad arguments; everything else is a general failure.
func exitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage), errors.Is(err, conversion.ErrInvalidUnit):
		return ExitBadArgs
	default:
		return ExitError
	}
}

func reportError(w io.Writer, err error) {
	if errors.Is(err, ErrNotConvertible) {
		return
	}
	ux.NewPrinter(w).Error(err.Error())
}
