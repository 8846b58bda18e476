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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// testRunner records the command lines it gets asked to run, faking their
// outcome.
type testRunner struct {
	lines  []string
	stdout string
	exit   int
	err    error
}

func (r *testRunner) Run(commandLine string) (string, int, error) {
	r.lines = append(r.lines, commandLine)
	return r.stdout, r.exit, r.err
}

func (r *testRunner) Escape(value string) string {
	return Shell{}.Escape(value)
}

// testSink records the notifications it receives.
type testSink struct {
	messages   []string
	severities []Severity
}

func (s *testSink) Notify(message string, severity Severity) {
	s.messages = append(s.messages, message)
	s.severities = append(s.severities, severity)
}

var _ = Describe("command substitution", func() {

	It("substitutes the captured output of a real shell", func() {
		Expect(Interpolate("$(echo test)", nil, noEnvironment)).To(Equal("test"))
	})

	It("strips exactly one trailing newline", func() {
		runner := &testRunner{stdout: "test\n\n"}
		Expect(Interpolate("$(whatever)", nil, noEnvironment,
			WithShellRunner(runner))).To(Equal("test\n"))
		runner = &testRunner{stdout: "no newline"}
		Expect(Interpolate("$(whatever)", nil, noEnvironment,
			WithShellRunner(runner))).To(Equal("no newline"))
	})

	It("shell-escapes interpolated values", func() {
		runner := &testRunner{stdout: "done"}
		Expect(Interpolate("$(echo ${MOTD})", Variables{
			"MOTD": value("; rm -rf /"),
		}, noEnvironment, WithShellRunner(runner))).To(Equal("done"))
		Expect(runner.lines).To(ConsistOf(`echo '; rm -rf /'`))
	})

	It("interpolates values unescaped with security disabled", func() {
		runner := &testRunner{stdout: "done"}
		Expect(Interpolate("$(echo ${GREETING})", Variables{
			"GREETING": value("hellorld"),
		}, noEnvironment, WithShellRunner(runner), WithoutSecurity())).To(
			Equal("done"))
		Expect(runner.lines).To(ConsistOf("echo hellorld"))
	})

	When("the command fails", func() {

		It("substitutes empty text and notifies the sink", func() {
			runner := &testRunner{exit: 42}
			sink := &testSink{}
			Expect(Interpolate("<$(false)>", nil, noEnvironment,
				WithShellRunner(runner), WithWarningSink(sink))).To(Equal("<>"))
			Expect(sink.messages).To(ConsistOf(
				"command 'false' exited with code 42"))
			Expect(sink.severities).To(ConsistOf(SeverityWarning))
		})

		It("fails the interpolation when asked to", func() {
			runner := &testRunner{exit: 42}
			_, err := Interpolate("$(false)", nil, noEnvironment,
				WithShellRunner(runner), WithFailOnCommandError())
			var cmderr *CommandError
			Expect(errors.As(err, &cmderr)).To(BeTrue())
			Expect(cmderr.Command).To(Equal("false"))
			Expect(cmderr.ExitCode).To(Equal(42))
			Expect(err).To(MatchError("command 'false' failed with exit code 42"))
		})

		It("handles commands that cannot be run at all", func() {
			runner := &testRunner{err: errors.New("no shell today")}
			sink := &testSink{}
			Expect(Interpolate("$(whatever)", nil, noEnvironment,
				WithShellRunner(runner), WithWarningSink(sink))).To(Equal(""))
			Expect(sink.messages).To(ConsistOf(
				"cannot run command 'whatever', reason: no shell today"))
			Expect(sink.severities).To(ConsistOf(SeverityError))

			Expect(Interpolate("$(whatever)", nil, noEnvironment,
				WithShellRunner(runner), WithFailOnCommandError())).Error().To(
				MatchError("cannot run command 'whatever', reason: no shell today"))
		})

	})

	Context("the default shell", func() {

		It("captures stdout and exit code", func() {
			stdout, exitCode, err := Shell{}.Run("printf x; exit 3")
			Expect(err).NotTo(HaveOccurred())
			Expect(stdout).To(Equal("x"))
			Expect(exitCode).To(Equal(3))
		})

		It("escapes values into single shell words", func() {
			Expect(Shell{}.Escape("don't")).To(Equal(`'don'\''t'`))
			Expect(Shell{}.Escape("plain")).To(Equal("'plain'"))
		})

	})

})
