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

package rules

import (
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// Runner drives a single rule across a tree (spec §4.4).
type Runner struct {
	Dialect string
	Fix     bool
}

// Run invokes rule's crawl contract against root and tags the resulting
// violations with the rule's code (a rule is trusted to set Fixable and
// position correctly, but the code itself is the runner's job, keeping
// that bookkeeping out of every rule implementation).
func (r Runner) Run(rule Rule, root *tree.Segment) (violation.List, tree.EditSet) {
	violations, edits := rule.Crawl(root, r.Dialect, r.Fix)
	for i := range violations {
		if violations[i].Code == "" {
			violations[i].Code = rule.Code()
		}
	}
	return violations, edits
}

// RunAll drives every rule in rs across root in order, concatenating
// violations. It does not apply edits — that is the Fix Loop's job,
// which must observe each rule's effect before running the next rule
// (spec §5).
func RunAll(rs []Rule, root *tree.Segment, dialect string, fix bool) (violation.List, []RuleEdits) {
	runner := Runner{Dialect: dialect, Fix: fix}
	var all violation.List
	var edits []RuleEdits
	for _, rule := range rs {
		v, e := runner.Run(rule, root)
		all = append(all, v...)
		if fix && !e.IsEmpty() {
			edits = append(edits, RuleEdits{Rule: rule, Edits: e})
		}
	}
	return all, edits
}

// RuleEdits pairs a rule with the edits it proposed, so a caller of
// RunAll can tell which rule each edit set came from.
type RuleEdits struct {
	Rule  Rule
	Edits tree.EditSet
}
