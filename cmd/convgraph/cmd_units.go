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
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// unitsOutput is the --json shape of the units command.
type unitsOutput struct {
	Units      []string   `json:"units"`
	Components [][]string `json:"components"`
	Unlinked   []string   `json:"unlinked"`
	Facts      int        `json:"facts"`
	Strategy   string     `json:"strategy"`
}

func newUnitsCmd(global *globalFlags) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the unit vocabulary and which units convert to each other",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := global.setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Close()

			cg, err := e.buildGraph("")
			if err != nil {
				return err
			}

			stats := cg.Stats()
			out := unitsOutput{
				Units:      cg.Vocabulary().Tokens(),
				Components: stats.Components,
				Unlinked:   unlinkedUnits(cg.Vocabulary().Tokens(), stats.Components),
				Facts:      stats.Facts,
				Strategy:   stats.Strategy,
			}
			if jsonOutput {
				return writeJSON(e.stdout, out)
			}

			p := e.printer()
			p.Title("Units")
			p.KeyValue("vocabulary", strings.Join(out.Units, ", "), 11)
			p.KeyValue("facts", strconv.Itoa(out.Facts), 11)
			p.KeyValue("strategy", out.Strategy, 11)
			p.Title("Convertible groups")
			for _, c := range out.Components {
				p.Bullet(strings.Join(c, ", "))
			}
			if len(out.Unlinked) > 0 {
				p.Warning("no facts: " + strings.Join(out.Unlinked, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON for scripting")
	return cmd
}

// unlinkedUnits returns vocabulary tokens that appear in no component.
func unlinkedUnits(vocab []string, components [][]string) []string {
	linked := make(map[string]bool)
	for _, c := range components {
		for _, u := range c {
			linked[u] = true
		}
	}
	out := []string{}
	for _, u := range vocab {
		if !linked[u] {
			out = append(out, u)
		}
	}
	return out
}
