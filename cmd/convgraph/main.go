// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command convgraph answers unit conversion queries from a set of known
// conversion facts.
//
// Usage:
//
//	convgraph convert m in 2          # answer = 78.72
//	convgraph path in m 13            # hops and folded value
//	convgraph units                   # vocabulary and components
//	convgraph serve --port 12310      # HTTP API
//
// Without --config the built-in reference facts are used.
package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and maps the returned error to an exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		reportError(stderr, err)
	}
	return exitCode(err)
}
