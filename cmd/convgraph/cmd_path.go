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
	"fmt"
	"strings"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/spf13/cobra"
)

type pathFlags struct {
	json                 bool
	strategy             string
	failIfNotConvertible bool
}

func newPathCmd(global *globalFlags) *cobra.Command {
	flags := &pathFlags{}
	cmd := &cobra.Command{
		Use:   "path FROM TO [VALUE]",
		Short: "Show the chain of facts used for a conversion",
		Long: `Show each fact applied to convert VALUE (default 1) from FROM to TO,
followed by the answer.

Examples:
  convgraph path m in 2
  convgraph path sec hr 3600 --strategy dfs
  convgraph path in m --json`,
		Args: rangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd, global, flags, args)
		},
	}
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as JSON for scripting")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "Path search strategy: bfs or dfs")
	cmd.Flags().BoolVar(&flags.failIfNotConvertible, "fail-if-not-convertible", false,
		"Exit with code 1 when the units are not convertible")
	return cmd
}

func runPath(cmd *cobra.Command, global *globalFlags, flags *pathFlags, args []string) error {
	value := 1.0
	if len(args) == 3 {
		v, err := parseValue(args[2])
		if err != nil {
			return err
		}
		value = v
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

	query, err := cg.Query(args[0], args[1], value)
	if err != nil {
		return err
	}
	res, found := cg.Path(cmd.Context(), query)

	if flags.json {
		if err := writeJSON(e.stdout, res); err != nil {
			return err
		}
	} else {
		p := e.printer()
		if found {
			steps := []string{res.From}
			lines := make([]string, len(res.Hops))
			for i, h := range res.Hops {
				steps = append(steps, h.To)
				lines[i] = fmt.Sprintf("1 %s = %s %s", h.From, conversion.FormatValue(h.Rate), h.To)
			}
			p.Box(p.Chain(steps), strings.Join(lines, "\n"))
			p.Muted(fmt.Sprintf("%d hop(s), %s search", len(res.Hops), cg.Stats().Strategy))
		}
		printResult(p, res.Result)
	}

	if flags.failIfNotConvertible && !found {
		return ErrNotConvertible
	}
	return nil
}
