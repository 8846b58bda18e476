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
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ShellRunner executes single command lines through an external shell on
// behalf of command substitutions. Implementations must run the command
// synchronously and capture its standard output.
type ShellRunner interface {
	// Run executes the command line, returning its captured stdout and exit
	// code. A non-nil error signals that the command could not be run at
	// all, as opposed to the command running and then failing.
	Run(commandLine string) (stdout string, exitCode int, err error)
	// Escape quotes a value so that the shell treats it as a single literal
	// word.
	Escape(value string) string
}

// Shell is the default ShellRunner, running command lines through
// "/bin/sh -c". Command substitution blocks the calling goroutine for the
// duration of the external process; the engine imposes no timeout of its
// own, so callers needing one must wrap their own ShellRunner.
type Shell struct{}

// Run the command line through "/bin/sh -c", capturing its stdout. Stderr is
// discarded.
func (Shell) Run(commandLine string) (string, int, error) {
	cmd := exec.Command("/bin/sh", "-c", commandLine)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		var exiterr *exec.ExitError
		if errors.As(err, &exiterr) {
			return stdout.String(), exiterr.ExitCode(), nil
		}
		return "", 0, err
	}
	return stdout.String(), 0, nil
}

// Escape single-quotes the value for POSIX shells, rendering embedded single
// quotes as '\''.
func (Shell) Escape(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// CommandError reports a command substitution whose command exited non-zero,
// returned from Interpolate only when the WithFailOnCommandError option is in
// effect.
type CommandError struct {
	Command  string // the command line as passed to the shell
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command '%s' failed with exit code %d", e.Command, e.ExitCode)
}

// Text substitutes the command's captured output: it first renders the
// command line with any braced variable references resolved (and their
// values shell-escaped, unless security is disabled), then runs the line
// through the configured ShellRunner and strips exactly one trailing newline
// from the captured stdout. A failing command substitutes empty text, unless
// failing on command errors was requested. Command failures always go to the
// WarningSink, in contrast to undefined-variable notices, which are opt-in.
func (cmd Command) Text(r *resolver) (string, error) {
	var line strings.Builder
	for _, seg := range cmd.Template {
		if plain, ok := seg.(PlainText); ok {
			line.WriteString(string(plain))
			continue
		}
		value, err := seg.Text(r)
		if err != nil {
			return "", err
		}
		if !r.cfg.DisableSecurity {
			value = r.cfg.Shell.Escape(value)
		}
		line.WriteString(value)
	}
	commandLine := line.String()
	stdout, exitCode, err := r.cfg.Shell.Run(commandLine)
	if err != nil {
		if r.cfg.FailOnCommandError {
			return "", fmt.Errorf("cannot run command '%s', reason: %w", commandLine, err)
		}
		r.cfg.Warnings.Notify(
			fmt.Sprintf("cannot run command '%s', reason: %s", commandLine, err.Error()),
			SeverityError)
		return "", nil
	}
	if exitCode != 0 {
		if r.cfg.FailOnCommandError {
			return "", &CommandError{Command: commandLine, ExitCode: exitCode}
		}
		r.cfg.Warnings.Notify(
			fmt.Sprintf("command '%s' exited with code %d", commandLine, exitCode),
			SeverityWarning)
		return "", nil
	}
	return strings.TrimSuffix(stdout, "\n"), nil
}
