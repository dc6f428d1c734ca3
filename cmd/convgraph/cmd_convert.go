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
	"math"
	"strconv"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/AleutianAI/convgraph/pkg/ux"
	"github.com/spf13/cobra"
)

type convertFlags struct {
	json                 bool
	strategy             string
	failIfNotConvertible bool
}

// convertOutput is the --json shape of a convert answer. Result is null
// when the units are not convertible or the answer overflows.
type convertOutput struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Value       float64  `json:"value"`
	Convertible bool     `json:"convertible"`
	Result      *float64 `json:"result"`
	Answer      string   `json:"answer"`
}

func newConvertCmd(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert FROM TO VALUE",
		Short: "Convert VALUE from one unit to another",
		Long: `Convert VALUE units of FROM into units of TO.

Prints "answer = <value>" or "not convertible!" when no chain of facts
links the two units. Unknown unit tokens are rejected with exit code 2.

Examples:
  convgraph convert m in 2           # answer = 78.72
  convgraph convert sec hr 3600      # answer = 1
  convgraph convert in hr 13         # not convertible!`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, flags, args)
		},
	}
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as JSON for scripting")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "Path search strategy: bfs or dfs")
	cmd.Flags().BoolVar(&flags.failIfNotConvertible, "fail-if-not-convertible", false,
		"Exit with code 1 when the units are not convertible")
	return cmd
}

func runConvert(cmd *cobra.Command, global *globalFlags, flags *convertFlags, args []string) error {
	value, err := parseValue(args[2])
	if err != nil {
		return err
	}

	e, err := global.setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Close()

	shutdown, err := e.startTelemetry(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer shutdown()

	cg, err := e.buildGraph(flags.strategy)
	if err != nil {
		return err
	}

	result, err := cg.ConvertTokens(cmd.Context(), args[0], args[1], value)
	if err != nil {
		return err
	}
	e.logger.Debug("conversion answered",
		"from", args[0], "to", args[1], "value", value, "convertible", result.Convertible())

	if flags.json {
		out := convertOutput{
			From:        args[0],
			To:          args[1],
			Value:       value,
			Convertible: result.Convertible(),
			Result:      result.Number(),
			Answer:      result.String(),
		}
		if err := writeJSON(e.stdout, out); err != nil {
			return err
		}
	} else {
		printResult(e.printer(), result)
	}

	if flags.failIfNotConvertible && !result.Convertible() {
		return ErrNotConvertible
	}
	return nil
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newUsageError("invalid value %q: not a finite number", s)
	}
	return v, nil
}

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// rangeArgs is cobra.RangeArgs with the error marked as a usage error.
func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func printResult(p *ux.Printer, result conversion.ConversionResult) {
	if result.Convertible() {
		p.Success(result.String())
		return
	}
	p.Warning(result.String())
}
