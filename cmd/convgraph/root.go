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
	"io"

	"github.com/AleutianAI/convgraph/internal/config"
	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/AleutianAI/convgraph/pkg/logging"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
	noColor    bool
}

// env is what commands need once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
	stdout io.Writer
	stderr io.Writer
	plain  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "convgraph",
		Short: "Convert values between units using known conversion facts",
		Long: `Answer "convert X of unit A to unit B" using a graph of known conversion
facts, including conversions that are only reachable through other units.

Facts and the unit vocabulary come from --config. Without it the built-in
reference set is used:
  1 m = 3.28 ft, 1 ft = 12 in, 1 hr = 60 min, 1 min = 60 sec

Examples:
  convgraph convert m in 2
  convgraph convert in hr 13 --fail-if-not-convertible
  convgraph path sec hr 3600 --json
  convgraph serve --config convgraph.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"Path to a YAML config file (default: built-in reference facts)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false,
		"Emit logs as JSON")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false,
		"Disable styled output even on a terminal")

	root.AddCommand(
		newConvertCmd(flags),
		newPathCmd(flags),
		newUnitsCmd(flags),
		newServeCmd(flags),
	)
	return root
}

// setup loads configuration and builds the logger for cmd.
//
// The caller must Close the returned logger.
func (f *globalFlags) setup(cmd *cobra.Command) (*env, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level := cfg.LogLevel()
	if f.logLevel != "" {
		parsed, err := logging.ParseLevel(f.logLevel)
		if err != nil {
			return nil, &usageError{err: err}
		}
		level = parsed
	}

	logger := logging.New(logging.Config{
		Level:   level,
		Service: cfg.Telemetry.ServiceName,
		JSON:    f.logJSON || cfg.Logging.JSON,
		LogDir:  cfg.Logging.Dir,
		Output:  cmd.ErrOrStderr(),
	})

	return &env{
		cfg:    cfg,
		logger: logger,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		plain:  f.noColor,
	}, nil
}

// buildGraph builds the conversion graph, overriding the configured search
// strategy when strategy is non-empty.
func (e *env) buildGraph(strategy string) (*conversion.ConversionGraph, error) {
	if strategy != "" {
		e.cfg.Strategy = strategy
		if _, err := e.cfg.SearchStrategy(); err != nil {
			return nil, newUsageError("--strategy: %w", err)
		}
	}
	cg, err := e.cfg.BuildGraph(e.logger)
	if err != nil {
		return nil, fmt.Errorf("build conversion graph: %w", err)
	}
	return cg, nil
}
