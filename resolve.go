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

package substenv

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/thediveo/substenv/interpolate"
)

// ResolveAll interpolates every value in the variable map against the map
// itself (and the process environment as fallback), returning plain resolved
// name/value pairs. The passed map is never modified. Values are resolved in
// lexical name order, so that any error is deterministic; the resolved
// results themselves don't depend on the order, as each value is resolved
// against the original raw map.
func ResolveAll(
	vars interpolate.Variables,
	opts ...interpolate.Option,
) (map[string]string, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)
	resolved := make(map[string]string, len(vars))
	for _, name := range names {
		value, err := interpolate.Interpolate(vars[name].Value, vars, opts...)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve variable %q, reason: %w", name, err)
		}
		resolved[name] = value
	}
	return resolved, nil
}
