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

package main

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/thediveo/substenv"
	"github.com/thediveo/substenv/interpolate"
)

const (
	envFileFlag       = "env-file"
	allFlag           = "all"
	maxIterationsFlag = "max-iterations"
	failCommandsFlag  = "fail-on-command-error"
	warnUndefinedFlag = "warn-undefined"
	noVariablesFlag   = "no-variables"
	noCommandsFlag    = "no-commands"
	noEscapesFlag     = "no-escapes"
	insecureFlag      = "insecure"
)

func buildInfo(info *debug.BuildInfo, key string) string {
	idx := slices.IndexFunc(info.Settings,
		func(setting debug.BuildSetting) bool {
			return setting.Key == key
		})
	if idx < 0 {
		return ""
	}
	return info.Settings[idx].Value
}

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:   "substenv [flags] [text...]",
		Short: "substenv isn't a shell, but expands ${FOO} and $(command) in env values anyway",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info("🐚  substenv ... isn't a shell")

			envFiles, _ := rootCmd.Flags().GetStringSlice(envFileFlag)
			vars := interpolate.Variables{}
			if len(envFiles) > 0 {
				var err error
				vars, err = substenv.Load(envFiles...)
				if err != nil {
					return err
				}
			}
			opts := engineOptions(rootCmd)

			if all, _ := rootCmd.Flags().GetBool(allFlag); all {
				resolved, err := substenv.ResolveAll(vars, opts...)
				if err != nil {
					return err
				}
				names := make([]string, 0, len(resolved))
				for name := range resolved {
					names = append(names, name)
				}
				slices.Sort(names)
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, resolved[name])
				}
				return nil
			}

			texts := args
			if len(texts) == 0 {
				stdin, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("cannot read text from stdin, reason: %w", err)
				}
				texts = []string{strings.TrimSuffix(string(stdin), "\n")}
			}
			for _, text := range texts {
				expanded, err := interpolate.Interpolate(text, vars, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), expanded)
			}
			return nil
		},
	}
	rootCmd.Flags().StringSliceP(envFileFlag, "e", nil,
		"env file to load variables from; repeatable, later files override earlier ones")
	rootCmd.Flags().BoolP(allFlag, "a", false,
		"print all resolved KEY=value pairs from the loaded env files")
	rootCmd.Flags().Uint(maxIterationsFlag, interpolate.DefaultMaxIterations,
		"bound on the passes re-scanning for newly exposed substitutions")
	rootCmd.Flags().Bool(failCommandsFlag, false,
		"fail when a command substitution exits non-zero")
	rootCmd.Flags().Bool(warnUndefinedFlag, false,
		"warn about references to undefined variables")
	rootCmd.Flags().Bool(noVariablesFlag, false,
		"leave $FOO and ${FOO} references literal")
	rootCmd.Flags().Bool(noCommandsFlag, false,
		"leave $(command) substitutions literal, never invoking a shell")
	rootCmd.Flags().Bool(noEscapesFlag, false,
		"leave backslash escape sequences untouched")
	rootCmd.Flags().Bool(insecureFlag, false,
		"don't shell-escape variable values interpolated into command lines")

	if info, biok := debug.ReadBuildInfo(); biok {
		commit := buildInfo(info, "vcs.revision")
		if commit != "" {
			modified := ""
			if buildInfo(info, "vcs.modified") == "true" {
				modified = " (modified)"
			}
			rootCmd.Version = fmt.Sprintf("commit %s%s", commit[:8], modified)
		} else if modver := info.Main.Version; modver != "" {
			rootCmd.Version = modver
		}
	}

	return rootCmd
}

// engineOptions maps the CLI flags onto interpolation engine options.
func engineOptions(rootCmd *cobra.Command) []interpolate.Option {
	opts := []interpolate.Option{}
	if n, _ := rootCmd.Flags().GetUint(maxIterationsFlag); n != interpolate.DefaultMaxIterations {
		opts = append(opts, interpolate.WithMaxIterations(int(n)))
	}
	if failing, _ := rootCmd.Flags().GetBool(failCommandsFlag); failing {
		opts = append(opts, interpolate.WithFailOnCommandError())
	}
	if warn, _ := rootCmd.Flags().GetBool(warnUndefinedFlag); warn {
		opts = append(opts, interpolate.WithWarnOnUndefined())
	}
	if novars, _ := rootCmd.Flags().GetBool(noVariablesFlag); novars {
		opts = append(opts, interpolate.WithoutVariables())
	}
	if nocmds, _ := rootCmd.Flags().GetBool(noCommandsFlag); nocmds {
		opts = append(opts, interpolate.WithoutCommands())
	}
	if noesc, _ := rootCmd.Flags().GetBool(noEscapesFlag); noesc {
		opts = append(opts, interpolate.WithoutEscapes())
	}
	if insecure, _ := rootCmd.Flags().GetBool(insecureFlag); insecure {
		opts = append(opts, interpolate.WithoutSecurity())
	}
	return opts
}
