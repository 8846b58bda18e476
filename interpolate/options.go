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
	log "github.com/sirupsen/logrus"
)

// DefaultMaxIterations is the default bound on the interpolation fixed-point
// loop, limiting how often the whole working string gets re-scanned for newly
// exposed substitutions.
const DefaultMaxIterations = 10

// Features switches the individual categories of interpolation syntax on and
// off. Disabled syntax is left in the text exactly as written.
type Features struct {
	Variables  bool // "$NAME" and "${NAME}" references
	Commands   bool // "$(command)" substitution
	Escapes    bool // backslash escape decoding
	Defaults   bool // the colon operation forms ":-" and ":+"
	Alternates bool // the bare operation forms "-" and "+"
}

// Config bundles all knobs of the interpolation engine. The zero value is
// not useful; configurations are assembled from the defaults by applying
// Option functions.
type Config struct {
	// MaxIterations bounds the pass-until-fixed-point loop; defaults to
	// DefaultMaxIterations.
	MaxIterations int
	// FailOnCommandError makes a failing command substitution fail the whole
	// Interpolate call instead of silently substituting empty text.
	FailOnCommandError bool
	// WarnOnUndefined notifies the WarningSink about references to variables
	// that are neither in the caller's variable map nor in the environment.
	WarnOnUndefined bool
	// DisableSecurity switches off shell-escaping of variable values that
	// get interpolated into command lines.
	DisableSecurity bool
	// Features enables the individual categories of interpolation syntax;
	// all of them default to enabled.
	Features Features
	// Shell runs command substitutions; defaults to the "/bin/sh -c" Shell.
	Shell ShellRunner
	// Warnings receives non-fatal notices; defaults to logging through
	// logrus.
	Warnings WarningSink
	// Environ is the process environment snapshot in "key=value" form used
	// as the lookup fallback; nil means snapshotting os.Environ at call
	// time.
	Environ []string
}

func newConfig(opts []Option) *Config {
	cfg := &Config{
		MaxIterations: DefaultMaxIterations,
		Features: Features{
			Variables:  true,
			Commands:   true,
			Escapes:    true,
			Defaults:   true,
			Alternates: true,
		},
		Shell:    Shell{},
		Warnings: logSink{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.MaxIterations < 1 {
		cfg.MaxIterations = 1
	}
	if cfg.Shell == nil {
		cfg.Shell = Shell{}
	}
	if cfg.Warnings == nil {
		cfg.Warnings = logSink{}
	}
	return cfg
}

// Option configures the interpolation engine for a single Interpolate call.
type Option func(*Config)

// WithMaxIterations sets the bound on the interpolation fixed-point loop.
// Values below 1 are raised to 1.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		cfg.MaxIterations = n
	}
}

// WithFailOnCommandError makes Interpolate return an error when a command
// substitution exits non-zero, instead of substituting empty text and
// carrying on.
func WithFailOnCommandError() Option {
	return func(cfg *Config) {
		cfg.FailOnCommandError = true
	}
}

// WithWarnOnUndefined notifies the WarningSink once per reference to a
// variable that is neither in the caller's variable map nor in the
// environment snapshot. Undefined variables still substitute empty text.
func WithWarnOnUndefined() Option {
	return func(cfg *Config) {
		cfg.WarnOnUndefined = true
	}
}

// WithoutSecurity disables shell-escaping of variable values interpolated
// into command substitution command lines.
//
// With escaping in place, a value like "; rm -rf /" interpolated into
// "$(echo ${MOTD})" stays a harmless single word. Only disable this for
// fully trusted variable maps.
func WithoutSecurity() Option {
	return func(cfg *Config) {
		cfg.DisableSecurity = true
	}
}

// WithoutVariables leaves "$NAME" and "${NAME}" references as literal text.
func WithoutVariables() Option {
	return func(cfg *Config) {
		cfg.Features.Variables = false
	}
}

// WithoutCommands leaves "$(command)" substitutions as literal text, so no
// external shell ever gets invoked.
func WithoutCommands() Option {
	return func(cfg *Config) {
		cfg.Features.Commands = false
	}
}

// WithoutEscapes leaves backslash escape sequences untouched.
func WithoutEscapes() Option {
	return func(cfg *Config) {
		cfg.Features.Escapes = false
	}
}

// WithoutDefaults leaves the colon operation forms "${NAME:-d}" and
// "${NAME:+r}" as literal text.
func WithoutDefaults() Option {
	return func(cfg *Config) {
		cfg.Features.Defaults = false
	}
}

// WithoutAlternates leaves the bare operation forms "${NAME-d}" and
// "${NAME+r}" as literal text.
func WithoutAlternates() Option {
	return func(cfg *Config) {
		cfg.Features.Alternates = false
	}
}

// WithShellRunner replaces the default "/bin/sh -c" runner for command
// substitutions, for instance to sandbox commands or to fake them in tests.
func WithShellRunner(runner ShellRunner) Option {
	return func(cfg *Config) {
		cfg.Shell = runner
	}
}

// WithWarningSink replaces the default logrus-backed sink for non-fatal
// notices.
func WithWarningSink(sink WarningSink) Option {
	return func(cfg *Config) {
		cfg.Warnings = sink
	}
}

// WithEnvironment replaces the process environment snapshot used as the
// variable lookup fallback with the specified "key=value" strings. Pass an
// empty (but non-nil) slice to cut lookups off from the process environment
// entirely.
func WithEnvironment(environ []string) Option {
	return func(cfg *Config) {
		cfg.Environ = environ
	}
}

// Severity classifies WarningSink notifications.
type Severity int

const (
	// SeverityWarning flags non-fatal conditions, such as references to
	// undefined variables.
	SeverityWarning Severity = iota
	// SeverityError flags conditions that would have been fatal under
	// stricter options, such as failing command substitutions.
	SeverityError
)

// WarningSink receives non-fatal notices from the interpolation engine, such
// as undefined variable references and failing command substitutions.
type WarningSink interface {
	Notify(message string, severity Severity)
}

// logSink is the default WarningSink, logging through logrus.
type logSink struct{}

func (logSink) Notify(message string, severity Severity) {
	switch severity {
	case SeverityError:
		log.Error(message)
	default:
		log.Warn(message)
	}
}
