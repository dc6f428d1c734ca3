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
	"fmt"
	"strings"
)

// DefaultUnits is the reference vocabulary: lengths m, in, ft and
// durations hr, min, sec.
var DefaultUnits = []string{"m", "in", "ft", "hr", "min", "sec"}

// Unit is a token validated against a Vocabulary.
//
// Units compare equal when their tokens are equal. The zero Unit is not a
// member of any vocabulary; obtain Units through Vocabulary.Parse.
type Unit struct {
	token string
}

// String returns the unit token.
func (u Unit) String() string {
	return u.token
}

// IsZero reports whether u is the zero Unit.
func (u Unit) IsZero() bool {
	return u.token == ""
}

// Vocabulary is a closed set of recognised unit tokens.
//
// Vocabulary is immutable and safe for concurrent use.
type Vocabulary struct {
	tokens map[string]struct{}
	order  []string
}

// NewVocabulary creates a Vocabulary from the given tokens.
//
// Tokens are trimmed. Empty and duplicate tokens are rejected with an
// error wrapping ErrInvalidVocabulary.
func NewVocabulary(tokens ...string) (*Vocabulary, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no units", ErrInvalidVocabulary)
	}

	v := &Vocabulary{
		tokens: make(map[string]struct{}, len(tokens)),
		order:  make([]string, 0, len(tokens)),
	}
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty unit token", ErrInvalidVocabulary)
		}
		if _, dup := v.tokens[tok]; dup {
			return nil, fmt.Errorf("%w: duplicate unit %q", ErrInvalidVocabulary, tok)
		}
		v.tokens[tok] = struct{}{}
		v.order = append(v.order, tok)
	}
	return v, nil
}

// DefaultVocabulary returns a Vocabulary of DefaultUnits.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultUnits...)
	if err != nil {
		panic(err) // DefaultUnits is a valid constant list
	}
	return v
}

// Parse validates token and returns the matching Unit.
//
// Returns *InvalidUnitError (wrapping ErrInvalidUnit) if token is not in
// the vocabulary. Surrounding whitespace is ignored.
func (v *Vocabulary) Parse(token string) (Unit, error) {
	tok := strings.TrimSpace(token)
	if _, ok := v.tokens[tok]; !ok {
		return Unit{}, &InvalidUnitError{Token: token, Known: v.Tokens()}
	}
	return Unit{token: tok}, nil
}

// Contains reports whether token is a member of the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.tokens[strings.TrimSpace(token)]
	return ok
}

// Tokens returns the vocabulary in definition order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Len returns the number of units in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.order)
}
