// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package conversion answers unit conversion queries from a set of known
// conversion facts.
//
// Facts such as "1 m = 3.28 ft" are loaded into a graph.Graph keyed by Unit.
// A query is answered by finding any path between the two units and
// multiplying the input value by the rate of every hop on that path, so
// conversions that were never stated directly (m to in, sec to hr) are
// derived from chains of facts.
//
// Units are validated against a closed Vocabulary at the boundary. An
// unknown token is an input error (ErrInvalidUnit). Units that exist but
// live in different connected components (length vs time) are not an
// error: Convert returns a ConversionResult with no value.
//
// # Thread Safety
//
// A ConversionGraph is immutable after construction and safe for
// concurrent queries.
package conversion
