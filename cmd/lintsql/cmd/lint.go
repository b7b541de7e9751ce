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

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lintsql/lintsql/internal/iox"
	"github.com/lintsql/lintsql/linter"
)

func newLintCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "lint files read-only and print a result record per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: mkRunE(c, func(cmd *Command, args []string) error {
			return runLint(cmd, args)
		}),
	}
	return cmd
}

func runLint(c *Command, paths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tctx, err := parseTemplaterContext()
	if err != nil {
		return err
	}
	lt, err := pipeline(cfg)
	if err != nil {
		return err
	}

	files, err := readFiles(paths)
	if err != nil {
		return err
	}

	outs, _ := lt.LintBatch(context.Background(), files, false, tctx)
	reportBatchErrors(c.ErrOrStderr(), outs, files)

	report := newRunReport(outs, files)
	if err := writeReport(c.OutOrStdout(), report, flagPretty); err != nil {
		return err
	}
	c.exitCode = report.Stats.ExitCode
	return nil
}

// readFiles reads each path with the lossy-UTF-8 policy, returning an
// error immediately on the first unreadable file — unlike a bad
// lint/parse, a file that cannot even be opened is a genuine CLI error.
func readFiles(paths []string) ([]linter.BatchInput, error) {
	files := make([]linter.BatchInput, 0, len(paths))
	for _, p := range paths {
		src, err := iox.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, linter.BatchInput{Filename: p, Source: src})
	}
	return files, nil
}
