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
	"github.com/sirupsen/logrus"

	"github.com/thediveo/substenv/interpolate"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("resolving whole variable maps", func() {

	BeforeEach(func() {
		GrabLog(logrus.InfoLevel)
	})

	It("resolves values against the map itself", func() {
		vars := Successful(Load("testdata/base.env"))
		resolved := Successful(ResolveAll(vars,
			interpolate.WithEnvironment([]string{})))
		Expect(resolved).To(HaveKeyWithValue("DATABASE_URL",
			"postgres://db.example.com:5432/app"))
		Expect(resolved).To(HaveKeyWithValue("DB_PORT", "5432"))
	})

	It("doesn't modify the passed variable map", func() {
		vars := interpolate.Variables{
			"GREETING": {Value: "${SALUTATION:-hello}", RawValue: "${SALUTATION:-hello}"},
		}
		Expect(ResolveAll(vars, interpolate.WithEnvironment([]string{}))).To(
			HaveKeyWithValue("GREETING", "hello"))
		Expect(vars["GREETING"].Value).To(Equal("${SALUTATION:-hello}"))
	})

	It("reports which variable failed to resolve", func() {
		vars := interpolate.Variables{
			"BROKEN": {Value: "$(exit 3)"},
			"FINE":   {Value: "42"},
		}
		Expect(ResolveAll(vars,
			interpolate.WithEnvironment([]string{}),
			interpolate.WithFailOnCommandError())).Error().To(
			MatchError(ContainSubstring(`cannot resolve variable "BROKEN"`)))
	})

})
