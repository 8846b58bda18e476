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

// Segment produces plain text upon request with all variable references
// replaced by their values or alternate substitution values, and all command
// substitutions replaced by their captured output.
type Segment interface {
	Text(r *resolver) (string, error)
}

// Segments is a slice of Segment-implementing objects that produce plain text
// upon request while doing variable and command substitutions.
type Segments []Segment

// PlainText is just what it says on the tin: plain text, no substitutes. In
// these days, we might call it organic, authentic, whatever.
type PlainText string

// Substitution represents a particular variable substitution.
type Substitution struct {
	VariableName string   // Name of the variable to substitute
	Operation    string   // either "" for a simple substitution, or one of "-", ":-", "+", ":+"
	AltValue     Segments // if non-zero, the alternative value to substitute the variable name with
}

// Command represents a "$(command)" substitution, to be replaced by the
// captured output of running the command line through an external shell.
type Command struct {
	CommandLine string   // the verbatim command line text between "$(" and ")"
	Template    Segments // the command line with its braced references carved out
}

// parser scans text left to right, carving out variable references and
// command substitutions according to the enabled feature set.
type parser struct {
	s     string
	feats Features
}

// parse splits s into a sequence of segments. Parsing never fails: any region
// that cannot be completed, such as an unterminated "${" or "$(", is committed
// as plain text from its opening "$" up to the end of the string, exactly as
// written. Braced expressions with unknown operation syntax stay plain text up
// to their closing brace.
func parse(s string, feats Features) Segments {
	p := &parser{s: s, feats: feats}
	segments, _, _ := p.run(0, false, false)
	return segments
}

// run parses segments starting at idx. In braced mode it stops at the first
// unmatched '}', returning the index of that brace; otherwise it consumes the
// rest of the string. In command mode only braced references are recognized,
// as everything else on a command line is the shell's business. The final
// return value is false if a closing '}' or ')' was needed but never found.
func (p *parser) run(idx int, braced, cmdmode bool) (Segments, int, bool) {
	segments := Segments{}
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			segments = append(segments, PlainText(text.String()))
			text.Reset()
		}
	}
	for idx < len(p.s) {
		ch := p.s[idx]
		if ch == '}' && braced {
			flush()
			return segments, idx, true
		}
		if ch != '$' {
			text.WriteByte(ch)
			idx++
			continue
		}
		segment, next, ok := p.token(idx, cmdmode)
		if !ok {
			if braced {
				return nil, 0, false
			}
			// Unterminated substitution: the scanner commits everything from
			// the '$' up to the end of the string as plain text.
			text.WriteString(p.s[idx:])
			idx = len(p.s)
			break
		}
		if segment == nil {
			// not the start of any recognized token, so the '$' is just text.
			text.WriteByte('$')
			idx++
			continue
		}
		if plain, isplain := segment.(PlainText); isplain {
			// tokens that boil down to plain text, such as "$$" or disabled
			// and malformed regions, merge into the surrounding text.
			text.WriteString(string(plain))
			idx = next
			continue
		}
		flush()
		segments = append(segments, segment)
		idx = next
	}
	if braced {
		return nil, 0, false
	}
	flush()
	return segments, idx, true
}

// token parses the token starting with the '$' at idx, returning the segment
// and the index just past it. A nil segment with true means the '$' is no
// token at all; false means the token cannot terminate before the end of the
// string.
func (p *parser) token(idx int, cmdmode bool) (Segment, int, bool) {
	idx++
	if idx >= len(p.s) {
		// a lonely '$' at the end of the string.
		return nil, 0, true
	}
	ch := p.s[idx]
	if cmdmode {
		// On a command line, "$VAR", "$$", and nested "$(...)" belong to the
		// shell; only braced references are ours to substitute.
		if ch != '{' {
			return nil, 0, true
		}
		return p.braced(idx - 1)
	}
	switch {
	case ch == '$':
		// "$$" collapses into a single literal dollar.
		return PlainText("$"), idx + 1, true
	case ch == '{':
		return p.braced(idx - 1)
	case ch == '(':
		return p.command(idx - 1)
	case isNameStart(ch):
		name := parseName(p.s[idx:])
		if !p.feats.Variables {
			return PlainText(p.s[idx-1 : idx+len(name)]), idx + len(name), true
		}
		return Substitution{VariableName: name}, idx + len(name), true
	}
	return nil, 0, true
}

// braced parses a braced substitution "${...}" with the opening '$' at idx.
func (p *parser) braced(idx int) (Segment, int, bool) {
	name := parseName(p.s[idx+2:])
	if name == "" {
		// No (valid) variable name follows, as in "${}" or "${1FOO}"; such a
		// region stays plain text.
		return p.literalBraced(idx)
	}
	i := idx + 2 + len(name)
	if i >= len(p.s) {
		return nil, 0, false
	}
	var op string
	switch p.s[i] {
	case '}':
		if !p.feats.Variables {
			return PlainText(p.s[idx : i+1]), i + 1, true
		}
		return Substitution{VariableName: name}, i + 1, true
	case '-', '+':
		op = string(p.s[i])
		i++
	case ':':
		if i+1 >= len(p.s) {
			return nil, 0, false
		}
		switch p.s[i+1] {
		case '-', '+':
			op = p.s[i : i+2]
			i += 2
		default:
			return p.literalBraced(idx)
		}
	default:
		return p.literalBraced(idx)
	}
	// Get the substitution text, which might in turn contain more
	// substitutions...
	altvalue, end, ok := p.run(i, true, false)
	if !ok {
		return nil, 0, false
	}
	next := end + 1
	if !p.operates(op) {
		return PlainText(p.s[idx:next]), next, true
	}
	return Substitution{
		VariableName: name,
		Operation:    op,
		AltValue:     altvalue,
	}, next, true
}

// literalBraced commits a braced region with missing name or unknown operation
// syntax, such as "${}", "${FOO:bar}", or the POSIX error forms "${FOO?msg}",
// as plain text up to and including its closing brace.
func (p *parser) literalBraced(idx int) (Segment, int, bool) {
	end := strings.IndexByte(p.s[idx:], '}')
	if end < 0 {
		return nil, 0, false
	}
	return PlainText(p.s[idx : idx+end+1]), idx + end + 1, true
}

// command parses a command substitution "$(...)" with the opening '$' at idx,
// consuming up to the parenthesis balancing the opening one.
func (p *parser) command(idx int) (Segment, int, bool) {
	depth := 1
	i := idx + 2
scan:
	for ; i < len(p.s); i++ {
		switch p.s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				break scan
			}
		}
	}
	if depth != 0 {
		return nil, 0, false
	}
	next := i + 1
	if !p.feats.Commands {
		return PlainText(p.s[idx:next]), next, true
	}
	commandline := p.s[idx+2 : i]
	template, _, _ := (&parser{s: commandline, feats: p.feats}).run(0, false, true)
	return Command{
		CommandLine: commandline,
		Template:    template,
	}, next, true
}

// operates reports whether the substitution operation op is covered by the
// enabled feature set: the colon forms are governed by the Defaults feature,
// the bare forms by the Alternates feature.
func (p *parser) operates(op string) bool {
	if !p.feats.Variables {
		return false
	}
	switch op {
	case ":-", ":+":
		return p.feats.Defaults
	case "-", "+":
		return p.feats.Alternates
	}
	return true
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// parseName returns the variable name; if the name is "" then no name could be
// found at the beginning of the specified string s.
func parseName(s string) string {
	for idx := 0; idx < len(s); idx++ {
		ch := s[idx]
		if ch == '_' {
			continue
		}
		if ch >= 'a' && ch <= 'z' {
			continue
		}
		if ch >= 'A' && ch <= 'Z' {
			continue
		}
		if idx > 0 && ch >= '0' && ch <= '9' {
			continue
		}
		return s[:idx]
	}
	return s
}
