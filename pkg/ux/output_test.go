// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIcon_Render(t *testing.T) {
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconArrow, IconBullet} {
		assert.Contains(t, icon.Render(), string(icon))
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestNewPrinter_BufferIsPlain(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{})
	assert.False(t, p.styled)
}

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPrinter(&buf)

	p.Title("Units")
	p.Success("answer = 78.72")
	p.Warning("not convertible!")
	p.Error("invalid unit")
	p.Muted("hidden in plain mode")
	p.KeyValue("from", "m", 6)
	p.Bullet("m, ft, in")
	p.Box("Path", "m -> ft")

	want := "Units\n" +
		"answer = 78.72\n" +
		"not convertible!\n" +
		"Error: invalid unit\n" +
		"from:  m\n" +
		"  - m, ft, in\n" +
		"Path\nm -> ft\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_Chain(t *testing.T) {
	p := NewPlainPrinter(&bytes.Buffer{})
	assert.Equal(t, "m -> ft -> in", p.Chain([]string{"m", "ft", "in"}))
	assert.Equal(t, "m", p.Chain([]string{"m"}))
	assert.Equal(t, "", p.Chain(nil))
}

func TestStyledPrinter_KeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{out: &buf, styled: true}

	p.Success("answer = 1")
	p.Warning("not convertible!")
	p.Muted("units without facts")

	out := buf.String()
	assert.Contains(t, out, "answer = 1")
	assert.Contains(t, out, "not convertible!")
	assert.Contains(t, out, "units without facts")
}
