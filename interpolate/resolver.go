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

import (
	"fmt"
	"os"
	"strings"
)

// resolver resolves variable names against the caller's variable map, falling
// back to the process environment snapshot taken when the Interpolate call
// started. It never mutates either of them.
type resolver struct {
	cfg  *Config
	vars Variables
	env  map[string]string
}

func newResolver(cfg *Config, vars Variables) *resolver {
	environ := cfg.Environ
	if environ == nil {
		environ = os.Environ()
	}
	env := make(map[string]string, len(environ))
	for _, keyvalue := range environ {
		name, value, ok := strings.Cut(keyvalue, "=")
		if !ok {
			continue
		}
		env[name] = value
	}
	return &resolver{
		cfg:  cfg,
		vars: vars,
		env:  env,
	}
}

// lookup returns the value of the named variable, consulting first the
// caller's variable map and then the environment snapshot.
func (r *resolver) lookup(name string) (string, bool) {
	if variable, ok := r.vars[name]; ok {
		return variable.Value, true
	}
	if value, ok := r.env[name]; ok {
		return value, true
	}
	return "", false
}

func (r *resolver) warnUndefined(name string) {
	if !r.cfg.WarnOnUndefined {
		return
	}
	r.cfg.Warnings.Notify(fmt.Sprintf("undefined variable %q", name), SeverityWarning)
}

// Text returns the plain text from the slice of segments, substituting
// variable values and command output as necessary.
func (segs Segments) Text(r *resolver) (string, error) {
	var text strings.Builder
	for _, seg := range segs {
		segtext, err := seg.Text(r)
		if err != nil {
			return "", err
		}
		text.WriteString(segtext)
	}
	return text.String(), nil
}

// Text returns plain text without any substitutions.
func (pt PlainText) Text(*resolver) (string, error) {
	return string(pt), nil
}

// Text returns the plain text of this segment, substituting variable values
// recursively as necessary.
func (subst Substitution) Text(r *resolver) (string, error) {
	switch subst.Operation {
	case "":
		value, ok := r.lookup(subst.VariableName)
		if !ok {
			r.warnUndefined(subst.VariableName)
			return "", nil
		}
		return value, nil
	case "-":
		return subst.defaultWhenUnset(r)
	case ":-":
		return subst.defaultWhenUnsetOrEmpty(r)
	case "+":
		return subst.replaceWhenSet(r)
	case ":+":
		return subst.replaceWhenSetAndNotEmpty(r)
	}
	return "", fmt.Errorf("internal error: unknown interpolation operation '%s'", subst.Operation)
}

func (subst Substitution) defaultWhenUnset(r *resolver) (string, error) {
	value, ok := r.lookup(subst.VariableName)
	if !ok {
		return subst.AltValue.Text(r)
	}
	return value, nil
}

func (subst Substitution) defaultWhenUnsetOrEmpty(r *resolver) (string, error) {
	value, ok := r.lookup(subst.VariableName)
	if !ok || value == "" {
		return subst.AltValue.Text(r)
	}
	return value, nil
}

func (subst Substitution) replaceWhenSet(r *resolver) (string, error) {
	if _, ok := r.lookup(subst.VariableName); !ok {
		return "", nil
	}
	return subst.AltValue.Text(r)
}

func (subst Substitution) replaceWhenSetAndNotEmpty(r *resolver) (string, error) {
	value, ok := r.lookup(subst.VariableName)
	if !ok || value == "" {
		return "", nil
	}
	return subst.AltValue.Text(r)
}
