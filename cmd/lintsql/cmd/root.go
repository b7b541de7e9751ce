// Copyright 2024 The lintsql Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd implements the lintsql CLI: lint, fix, and rules
// subcommands over cobra/pflag, the teacher's own CLI stack.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ErrPrintedError is returned by a subcommand that has already written its
// own error message to stderr, so Main should not print err again — the
// same convention the teacher's own cmd/cue/cmd package uses.
var ErrPrintedError = errors.New("lintsql: command failed")

type runFunction func(cmd *Command, args []string) error

// mkRunE adapts a runFunction to cobra's RunE signature, threading the
// wrapping *Command through so a subcommand can read shared flag state and
// set Command.exitCode.
func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cc *cobra.Command, args []string) error {
		c.Command = cc
		return f(c, args)
	}
}

// Command wraps the root cobra.Command with state subcommands share: the
// exit code a lint/fix run wants to report (spec's 0/65 convention),
// distinct from the 1 Main reports for a genuine CLI error.
type Command struct {
	*cobra.Command
	exitCode int
}

// New builds the top-level "lintsql" command.
func New(args []string) (*Command, error) {
	root := &cobra.Command{
		Use:   "lintsql",
		Short: "lint and fix SQL-like files against a dialect-agnostic rule set",

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	c := &Command{Command: root}
	addGlobalFlags(root.PersistentFlags())

	for _, sub := range []*cobra.Command{
		newLintCmd(c),
		newFixCmd(c),
		newRulesCmd(c),
	} {
		root.AddCommand(sub)
	}

	root.SetArgs(args)
	return c, nil
}

// Main runs the CLI and returns the process exit code: 1 for a CLI-level
// error, otherwise the lint/fix run's own exit code (0 clean, 65 any
// violations — spec §7).
func Main() int {
	c, _ := New(os.Args[1:])
	if err := c.Command.Execute(); err != nil {
		if !errors.Is(err, ErrPrintedError) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return c.exitCode
}
