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
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	log "github.com/sirupsen/logrus"

	"github.com/thediveo/substenv/interpolate"
)

// Env files with these extensions are flat YAML mappings instead of dotenv
// key=value lines.
var yamlExtensions = []string{".yaml", ".yml"}

// Load reads one or more env files into a variable map suitable for feeding
// into [interpolate.Interpolate]. Definitions from later files override those
// from earlier files. Files named "*.yaml" or "*.yml" must be flat YAML
// mappings of names to scalar values; anything else is read as dotenv
// "KEY=value" lines.
//
// Each [interpolate.Variable] carries the parsed value in Value and the
// value text verbatim as written in the file in RawValue, quotes and all, so
// diagnostics can quote definitions exactly as their author sees them.
//
// Load only gathers raw values; it does not interpolate them. Use
// [ResolveAll] for a fully resolved view of the loaded map.
func Load(paths ...string) (interpolate.Variables, error) {
	vars := interpolate.Variables{}
	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot load env file %q, reason: %w", path, err)
		}
		var keyvalues map[string]string
		sep := byte('=')
		if slices.Contains(yamlExtensions, filepath.Ext(path)) {
			keyvalues, err = parseYAMLEnv(text)
			sep = ':'
		} else {
			keyvalues, err = godotenv.Unmarshal(string(text))
		}
		if err != nil {
			return nil, fmt.Errorf("cannot load env file %q, reason: %w", path, err)
		}
		rawvalues := rawFileValues(string(text), sep)
		log.Info(fmt.Sprintf("🗁  loaded %d variable(s) from %q", len(keyvalues), path))
		for name, value := range keyvalues {
			rawvalue, ok := rawvalues[name]
			if !ok {
				rawvalue = value
			}
			vars[name] = interpolate.Variable{
				Value:    value,
				RawValue: rawvalue,
			}
		}
	}
	return vars, nil
}

// rawFileValues scans env file text for "name<sep>value" definition lines and
// returns the value texts verbatim as written, without any quote removal or
// escape processing. Definitions spanning multiple lines keep only their
// first line; names missing from the result fall back to the parsed value.
func rawFileValues(text string, sep byte) map[string]string {
	rawvalues := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		name, rawvalue, ok := strings.Cut(line, string(sep))
		if !ok {
			continue
		}
		rawvalues[strings.TrimSpace(name)] = strings.TrimSpace(rawvalue)
	}
	return rawvalues
}

// Environment returns the process environment as a variable map, for callers
// that want to interpolate against the environment under variable-map
// precedence rules or to merge it with file-loaded maps themselves.
func Environment() interpolate.Variables {
	environ := os.Environ()
	vars := make(interpolate.Variables, len(environ))
	for _, keyvalue := range environ {
		name, value, ok := strings.Cut(keyvalue, "=")
		if !ok {
			continue
		}
		vars[name] = interpolate.Variable{
			Value:    value,
			RawValue: keyvalue,
		}
	}
	return vars
}

// parseYAMLEnv parses a flat YAML mapping of variable names to scalar
// values. Scalars that YAML considers numbers, booleans, or null are rendered
// back into their textual form, as env values are always strings.
func parseYAMLEnv(yamltext []byte) (map[string]string, error) {
	var mapping map[string]any
	if err := yaml.Unmarshal(yamltext, &mapping); err != nil {
		return nil, fmt.Errorf("malformed YAML env file, reason: %w", err)
	}
	keyvalues := make(map[string]string, len(mapping))
	for name, value := range mapping {
		switch value := value.(type) {
		case string:
			keyvalues[name] = value
		case nil:
			keyvalues[name] = ""
		case bool, int, int64, uint64, float64:
			keyvalues[name] = fmt.Sprint(value)
		default:
			return nil, fmt.Errorf("value of %q is not a scalar", name)
		}
	}
	return keyvalues, nil
}
