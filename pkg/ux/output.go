// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the convgraph CLI.
//
// A Printer renders with lipgloss when its destination is a terminal and
// falls back to plain, line-oriented text otherwise, so piped output stays
// easy to parse.
package ux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette
var (
	ColorBright  = lipgloss.Color("#2CD7C7") // highlights, success
	ColorPrimary = lipgloss.Color("#20B9B4") // main accent
	ColorDeep    = lipgloss.Color("#16858E") // borders
	ColorSlate   = lipgloss.Color("#2C4A54") // muted text

	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Box       lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorBright),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorBright),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDeep).
		Padding(0, 1),
}

// Icon is a status glyph.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
)

// Render returns the icon with its styling.
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// IsTerminal reports whether w is a terminal. Only *os.File can be.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes styled or plain output to a writer.
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter returns a Printer for out. Styling is enabled when out is a
// terminal and NO_COLOR is unset.
func NewPrinter(out io.Writer) *Printer {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Printer{out: out, styled: !noColor && IsTerminal(out)}
}

// NewPlainPrinter returns a Printer that never styles.
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Title prints a heading. Plain mode prints it unchanged.
func (p *Printer) Title(text string) {
	if !p.styled {
		fmt.Fprintln(p.out, text)
		return
	}
	fmt.Fprintln(p.out, Styles.Title.Render(text))
}

// Success prints a result line with a checkmark.
func (p *Printer) Success(text string) {
	if !p.styled {
		fmt.Fprintln(p.out, text)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
}

// Warning prints a negative result or caution.
func (p *Printer) Warning(text string) {
	if !p.styled {
		fmt.Fprintln(p.out, text)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
}

// Error prints an error message prefixed with "Error:".
func (p *Printer) Error(text string) {
	if !p.styled {
		fmt.Fprintf(p.out, "Error: %s\n", text)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", IconError.Render(), Styles.Error.Render("Error: "+text))
}

// Muted prints secondary text. Plain mode omits it.
func (p *Printer) Muted(text string) {
	if !p.styled {
		return
	}
	fmt.Fprintln(p.out, Styles.Muted.Render(text))
}

// KeyValue prints "key: value" with the key padded to width.
func (p *Printer) KeyValue(key, value string, width int) {
	label := fmt.Sprintf("%-*s", width, key+":")
	if p.styled {
		label = Styles.Bold.Render(label)
	}
	fmt.Fprintf(p.out, "%s %s\n", label, value)
}

// Bullet prints an indented list item.
func (p *Printer) Bullet(text string) {
	if !p.styled {
		fmt.Fprintf(p.out, "  - %s\n", text)
		return
	}
	fmt.Fprintf(p.out, "  %s %s\n", Styles.Muted.Render(string(IconBullet)), text)
}

// Chain joins steps with arrows, e.g. "m → ft → in".
func (p *Printer) Chain(steps []string) string {
	sep := " -> "
	if p.styled {
		sep = " " + Styles.Muted.Render(string(IconArrow)) + " "
	}
	return strings.Join(steps, sep)
}

// Box prints content under a title, inside a rounded border when styled.
func (p *Printer) Box(title, content string) {
	if !p.styled {
		fmt.Fprintf(p.out, "%s\n%s\n", title, content)
		return
	}
	fmt.Fprintln(p.out, Styles.Box.Render(Styles.Title.Render(title)+"\n"+content))
}
