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

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/lintsql/lintsql/internal/iox"
)

func newFixCmd(c *Command) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "fix <file>...",
		Short: "fix files in place and print a result record per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: mkRunE(c, func(cmd *Command, args []string) error {
			return runFix(cmd, args, showDiff)
		}),
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff instead of writing the fixed file")
	return cmd
}

func runFix(c *Command, paths []string, showDiff bool) error {
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

	outs, _ := lt.LintBatch(context.Background(), files, true, tctx)
	reportBatchErrors(c.ErrOrStderr(), outs, files)

	for i, o := range outs {
		if o.Err != nil {
			continue
		}
		if o.Fixed == files[i].Source {
			continue
		}
		if showDiff {
			printDiff(c, files[i].Filename, files[i].Source, o.Fixed)
			continue
		}
		if err := iox.WriteFile(files[i].Filename, o.Fixed); err != nil {
			return fmt.Errorf("writing %s: %w", files[i].Filename, err)
		}
	}

	report := newRunReport(outs, files)
	if err := writeReport(c.OutOrStdout(), report, flagPretty); err != nil {
		return err
	}
	c.exitCode = report.Stats.ExitCode
	return nil
}

func printDiff(c *Command, filename, before, after string) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: filename,
		ToFile:   filename + " (fixed)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		fmt.Fprintf(c.ErrOrStderr(), "lintsql: diffing %s: %v\n", filename, err)
		return
	}
	fmt.Fprint(c.OutOrStdout(), text)
}
