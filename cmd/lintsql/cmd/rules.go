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
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/lintsql/lintsql/rules"
)

func newRulesCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [code]",
		Short: "list registered rule codes, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: mkRunE(c, func(cmd *Command, args []string) error {
			return runRules(cmd, args)
		}),
	}
	return cmd
}

func runRules(c *Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// rules is read-only over the registry pipeline() builds; no file is
	// read or linted, so the cache/templater it also wires are unused here.
	lt, err := pipeline(cfg)
	if err != nil {
		return err
	}
	reg := lt.Registry

	if len(args) == 0 {
		all := reg.All()
		if len(all) == 0 {
			fmt.Fprintln(c.OutOrStdout(), "no rules registered")
			return nil
		}
		for _, r := range all {
			fmt.Fprintf(c.OutOrStdout(), "%s\t%s\n", r.Code(), r.Description())
		}
		return nil
	}

	code := args[0]
	if r, ok := reg.Lookup(code); ok {
		fmt.Fprintf(c.OutOrStdout(), "%s\t%s\n", r.Code(), r.Description())
		return nil
	}

	if suggestion := suggestRuleCode(reg, code); suggestion != "" {
		return fmt.Errorf("unknown rule code %q; did you mean %q?", code, suggestion)
	}
	return fmt.Errorf("unknown rule code %q", code)
}

// suggestRuleCode finds the registered code with the smallest Levenshtein
// distance to typo, returning "" if none is close enough to be a useful
// guess (more than half the length of the longer string apart).
func suggestRuleCode(reg *rules.Registry, typo string) string {
	best := ""
	bestDist := -1
	for _, r := range reg.All() {
		code := r.Code()
		dist := levenshtein.ComputeDistance(typo, code)
		if bestDist == -1 || dist < bestDist {
			best, bestDist = code, dist
		}
	}
	if best == "" {
		return ""
	}
	longest := len(typo)
	if len(best) > longest {
		longest = len(best)
	}
	if bestDist*2 > longest {
		return ""
	}
	return best
}
