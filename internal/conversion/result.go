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
	"encoding/json"
	"math"
	"strconv"
)

// NotConvertibleText is printed when no path joins the two units.
const NotConvertibleText = "not convertible!"

// ConversionResult is the outcome of a query: a value when the units are
// connected, nothing otherwise.
type ConversionResult struct {
	value float64
	ok    bool
}

// Converted returns a result holding v.
func Converted(v float64) ConversionResult {
	return ConversionResult{value: v, ok: true}
}

// NotConvertible returns the empty result.
func NotConvertible() ConversionResult {
	return ConversionResult{}
}

// Value returns the converted value and whether one is present.
func (r ConversionResult) Value() (float64, bool) {
	return r.value, r.ok
}

// Convertible reports whether a value is present.
func (r ConversionResult) Convertible() bool {
	return r.ok
}

// String renders "answer = <value>" or "not convertible!".
func (r ConversionResult) String() string {
	if !r.ok {
		return NotConvertibleText
	}
	return "answer = " + FormatValue(r.value)
}

// Number returns a pointer to the value for JSON output. It is nil when
// the result is absent or not finite (overflow, or a zero rate walked in
// reverse), since JSON has no encoding for Inf or NaN.
func (r ConversionResult) Number() *float64 {
	return finite(r.value, r.ok)
}

// MarshalJSON encodes {"convertible":bool,"value":number|null,"answer":string}.
// answer carries the text form, which still shows non-finite values.
func (r ConversionResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Convertible bool     `json:"convertible"`
		Value       *float64 `json:"value"`
		Answer      string   `json:"answer"`
	}{
		Convertible: r.ok,
		Value:       r.Number(),
		Answer:      r.String(),
	})
}

func finite(v float64, ok bool) *float64 {
	if !ok || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// significantDigits drops float64 noise such as 78.72000000000001 while
// keeping integers up to 12 digits exact.
const significantDigits = 12

// FormatValue renders v rounded to 12 significant digits. Magnitudes of
// 1e21 and above, or below 1e-6, use exponent form.
func FormatValue(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', significantDigits, 64), 64)
	if abs := math.Abs(rounded); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(rounded, 'g', -1, 64)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
