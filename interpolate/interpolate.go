// Copyright 2026 by Harald Albrecht
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package interpolate

// Variable is a single environment variable value as supplied by the
// caller's tooling. RawValue optionally keeps the verbatim text the value
// was loaded from, for diagnostics only; the engine works solely on Value.
type Variable struct {
	Value    string
	RawValue string
}

// Variables maps case-sensitive variable names to their values. The engine
// treats the map as read-only for the duration of an Interpolate call, so
// concurrent calls sharing the same map are safe as long as no caller
// mutates it while a call is in flight.
type Variables map[string]Variable

// maxExpansion is a hard ceiling on the size of the working string,
// protecting against pathologically self-inflating inputs that the iteration
// bound alone would let grow exponentially.
const maxExpansion = 1 << 20

// Interpolate expands shell-style variable references ("$NAME", "${NAME}"),
// default/alternate substitution operations ("${NAME:-d}" and friends), and
// command substitutions ("$(command)") in text, resolving names against the
// caller's variable map with the process environment as fallback.
//
// The whole string is re-scanned and re-resolved until it reaches a fixed
// point, so values whose substitution exposes further references get
// resolved too, up to the configured iteration bound. Cyclic references
// therefore terminate with a best-effort result instead of hanging.
//
// If the entire (trimmed) text is wrapped in single quotes, all substitution
// is suppressed and only the quotes are stripped and escape sequences
// decoded; double quotes are stripped with substitution applied as usual.
//
// Interpolate never returns an error for malformed or unresolvable input:
// unterminated "${" or "$(" regions stay exactly as written and undefined
// variables substitute empty text. The only error condition is a failing
// command substitution with the WithFailOnCommandError option in effect.
func Interpolate(text string, vars Variables, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	content, style := unquote(text)
	if style == singleQuoted {
		// single quotes suppress all substitution, but escape decoding still
		// applies.
		if cfg.Features.Escapes {
			content = decodeEscapes(content)
		}
		return content, nil
	}
	r := newResolver(cfg, vars)
	for iteration := 0; iteration < cfg.MaxIterations; iteration++ {
		resolved, err := parse(content, cfg.Features).Text(r)
		if err != nil {
			return "", err
		}
		if resolved == content {
			break // fixed point reached.
		}
		content = resolved
		if len(content) > maxExpansion {
			break
		}
	}
	if cfg.Features.Escapes {
		content = decodeEscapes(content)
	}
	return content, nil
}
