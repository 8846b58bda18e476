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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

// noEnvironment cuts interpolation off from the process environment, keeping
// the specs deterministic regardless of the environment they run in.
var noEnvironment = WithEnvironment([]string{})

func value(s string) Variable { return Variable{Value: s} }

var _ = Describe("interpolating", func() {

	It("returns substitution-free text unmodified", func() {
		for _, text := range []string{
			"",
			"hellorld",
			"no dollars here, _just_ {braces} and (parens)",
			"not a variable: 5$ or $§",
		} {
			Expect(Interpolate(text, nil, noEnvironment)).To(Equal(text))
		}
	})

	It("substitutes a braced reference", func() {
		Expect(Interpolate("${N}", Variables{
			"N": value("x"),
		}, noEnvironment)).To(Equal("x"))
	})

	It("substitutes an unbraced reference", func() {
		Expect(Interpolate("$N!", Variables{
			"N": value("x"),
		}, noEnvironment)).To(Equal("x!"))
	})

	It("substitutes empty text for undefined variables", func() {
		Expect(Interpolate("<${N}>", nil, noEnvironment)).To(Equal("<>"))
	})

	It("falls back to the environment snapshot", func() {
		Expect(Interpolate("${HOME}", nil,
			WithEnvironment([]string{"HOME=/home/foo"}))).To(Equal("/home/foo"))
		// ...with the variable map taking precedence.
		Expect(Interpolate("${HOME}", Variables{
			"HOME": value("/home/bar"),
		}, WithEnvironment([]string{"HOME=/home/foo"}))).To(Equal("/home/bar"))
	})

	DescribeTable("default operation ${N:-D}",
		func(vars Variables, expected string) {
			Expect(Interpolate("${N:-D}", vars, noEnvironment)).To(Equal(expected))
		},
		Entry("unset", nil, "D"),
		Entry("empty", Variables{"N": value("")}, "D"),
		Entry("non-empty", Variables{"N": value("x")}, "x"),
	)

	DescribeTable("alternate operation ${N-D}",
		func(vars Variables, expected string) {
			Expect(Interpolate("${N-D}", vars, noEnvironment)).To(Equal(expected))
		},
		Entry("unset", nil, "D"),
		Entry("empty", Variables{"N": value("")}, ""),
		Entry("non-empty", Variables{"N": value("x")}, "x"),
	)

	DescribeTable("replacement operation ${N:+V}",
		func(vars Variables, expected string) {
			Expect(Interpolate("${N:+V}", vars, noEnvironment)).To(Equal(expected))
		},
		Entry("unset", nil, ""),
		Entry("empty", Variables{"N": value("")}, ""),
		Entry("non-empty", Variables{"N": value("x")}, "V"),
	)

	DescribeTable("replacement operation ${N+V}",
		func(vars Variables, expected string) {
			Expect(Interpolate("${N+V}", vars, noEnvironment)).To(Equal(expected))
		},
		Entry("unset", nil, ""),
		Entry("empty", Variables{"N": value("")}, "V"),
		Entry("non-empty", Variables{"N": value("x")}, "V"),
	)

	It("resolves nested alternate values in a single pass", func() {
		Expect(Interpolate("${FOO:-${BAR:-fallback}}", nil, noEnvironment,
			WithMaxIterations(1))).To(Equal("fallback"))
	})

	It("resolves chained references across passes", func() {
		Expect(Interpolate("${A}", Variables{
			"A": value("${B}"),
			"B": value("${C}"),
			"C": value("final"),
		}, noEnvironment)).To(Equal("final"))
	})

	It("keeps malformed substitutions verbatim", func() {
		Expect(Interpolate("${incomplete", nil, noEnvironment)).To(
			Equal("${incomplete"))
		Expect(Interpolate("$(incomplete", nil, noEnvironment)).To(
			Equal("$(incomplete"))
	})

	It("survives cyclic references", func() {
		Expect(Interpolate("${A}", Variables{
			"A": value("${B}"),
			"B": value("${A}"),
		}, noEnvironment, WithMaxIterations(5))).To(
			Or(Equal("${A}"), Equal("${B}")))
	})

	It("stops when the iteration budget is exhausted", func() {
		Expect(Interpolate("${A}", Variables{
			"A": value("${B}"),
			"B": value("${C}"),
			"C": value("final"),
		}, noEnvironment, WithMaxIterations(2))).To(Equal("${C}"))
	})

	It("stops inflating runaway expansions at the size ceiling", func() {
		// each pass roughly doubles the working string, so without the
		// ceiling a generous iteration allowance would blow the string up
		// to gigabytes.
		result := Successful(Interpolate("${A}", Variables{
			"A": value("${A}${A}x"),
		}, noEnvironment, WithMaxIterations(100)))
		Expect(len(result)).To(And(
			BeNumerically(">", maxExpansion),
			BeNumerically("<=", 2*maxExpansion)))
	})

	It("notifies the warning sink about undefined variables", func() {
		sink := &testSink{}
		Expect(Interpolate("${GONE}", nil, noEnvironment,
			WithWarnOnUndefined(), WithWarningSink(sink))).To(Equal(""))
		Expect(sink.messages).To(ConsistOf(`undefined variable "GONE"`))
		Expect(sink.severities).To(ConsistOf(SeverityWarning))
	})

	It("keeps quiet about undefined variables by default", func() {
		sink := &testSink{}
		Expect(Interpolate("${GONE}", nil, noEnvironment,
			WithWarningSink(sink))).To(Equal(""))
		Expect(sink.messages).To(BeEmpty())
	})

	Context("quoting", func() {

		It("suppresses substitution inside single quotes", func() {
			Expect(Interpolate("'raw ${NAME}'", Variables{
				"NAME": value("x"),
			}, noEnvironment)).To(Equal("raw ${NAME}"))
		})

		It("still decodes escapes inside single quotes", func() {
			Expect(Interpolate(`'a\tb'`, nil, noEnvironment)).To(Equal("a\tb"))
		})

		It("substitutes inside double quotes", func() {
			Expect(Interpolate(`"raw ${NAME}"`, Variables{
				"NAME": value("x"),
			}, noEnvironment)).To(Equal("raw x"))
		})

		It("leaves inner quotes alone", func() {
			Expect(Interpolate("it's 5 o'clock", nil, noEnvironment)).To(
				Equal("it's 5 o'clock"))
		})

	})

	Context("escapes", func() {

		It("decodes escape sequences", func() {
			Expect(Interpolate(`a\nb`, nil, noEnvironment)).To(Equal("a\nb"))
			Expect(Interpolate(`a\tb\\c\'d\"e`, nil, noEnvironment)).To(
				Equal("a\tb\\c'd\"e"))
		})

		It("passes unknown escape sequences through", func() {
			Expect(Interpolate(`a\xb`, nil, noEnvironment)).To(Equal(`a\xb`))
		})

		It("leaves escape sequences untouched when disabled", func() {
			Expect(Interpolate(`a\nb`, nil, noEnvironment,
				WithoutEscapes())).To(Equal(`a\nb`))
		})

	})

	Context("feature toggles", func() {

		It("leaves variable references literal", func() {
			Expect(Interpolate("${NAME}", Variables{
				"NAME": value("x"),
			}, noEnvironment, WithoutVariables())).To(Equal("${NAME}"))
		})

		It("leaves command substitutions literal", func() {
			runner := &testRunner{}
			Expect(Interpolate("$(echo test)", nil, noEnvironment,
				WithoutCommands(), WithShellRunner(runner))).To(
				Equal("$(echo test)"))
			Expect(runner.lines).To(BeEmpty())
		})

	})

	Context("scenarios", func() {

		It("fills in service defaults", func() {
			Expect(Interpolate("${HOST:-localhost}:${PORT:-8080}/api", nil,
				noEnvironment)).To(Equal("localhost:8080/api"))
		})

		It("assembles an URL from variables", func() {
			Expect(Interpolate("${BASE_URL}/${VERSION}", Variables{
				"BASE_URL": value("https://api.example.com"),
				"VERSION":  value("v1"),
			}, noEnvironment)).To(Equal("https://api.example.com/v1"))
		})

	})

})
