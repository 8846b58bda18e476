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
	"strings"
)

type quoteStyle int

const (
	unquoted quoteStyle = iota
	singleQuoted
	doubleQuoted
)

// unquote detects whether the entire trimmed string is wrapped in a matching
// pair of outer quotes with no unescaped quote of the same kind inside. If
// so, it returns the text between the quotes together with the quoting
// style; otherwise it returns the string as-is, untrimmed.
func unquote(s string) (string, quoteStyle) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 {
		return s, unquoted
	}
	quote := trimmed[0]
	if (quote != '\'' && quote != '"') || trimmed[len(trimmed)-1] != quote {
		return s, unquoted
	}
	inner := trimmed[1 : len(trimmed)-1]
	escaped := false
	for idx := 0; idx < len(inner); idx++ {
		switch {
		case escaped:
			escaped = false
		case inner[idx] == '\\':
			escaped = true
		case inner[idx] == quote:
			// an unescaped quote of the outer kind, so the string isn't
			// simply wrapped after all.
			return s, unquoted
		}
	}
	if quote == '\'' {
		return inner, singleQuoted
	}
	return inner, doubleQuoted
}

// decodeEscapes rewrites the supported backslash escape sequences \n, \t,
// \", \', and \\ into the characters they stand for. Unknown escape
// sequences pass through untouched.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var text strings.Builder
	text.Grow(len(s))
	for idx := 0; idx < len(s); idx++ {
		ch := s[idx]
		if ch != '\\' || idx+1 >= len(s) {
			text.WriteByte(ch)
			continue
		}
		switch s[idx+1] {
		case 'n':
			text.WriteByte('\n')
		case 't':
			text.WriteByte('\t')
		case '"':
			text.WriteByte('"')
		case '\'':
			text.WriteByte('\'')
		case '\\':
			text.WriteByte('\\')
		default:
			text.WriteByte(ch)
			continue
		}
		idx++
	}
	return text.String()
}
