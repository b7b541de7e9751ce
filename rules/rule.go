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

// Package rules defines the Rule contract (spec §6) and the Rule Runner
// (spec §4.4) that drives one rule across a tree.
//
// Individual rule implementations and any particular SQL dialect are
// explicitly out of scope (spec §1 Non-goals); this package only defines
// the contract and the driver. A registry is provided since "rule
// registries... are process-wide configuration loaded once at startup"
// (spec §9) and the CLI/linter need somewhere to look rules up by code.
package rules

import (
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// Rule is the external contract a rule implementation satisfies (spec
// §6): crawl(tree, dialect, fix) -> (violations, _, edits, _). The two
// blank return slots in the spec's Python-flavored tuple (reserved for a
// rule's internal memo and ignore-mask, which this module's Fix Loop
// handles itself) are dropped from the Go shape; everything the core
// needs is the violation list and the proposed edit set.
type Rule interface {
	// Code returns the rule's stable identifier, e.g. "L001".
	Code() string
	// Description is a short human-readable summary, printed next to the
	// code by the `rules` command.
	Description() string
	// Crawl inspects root (never mutating it) and reports violations and,
	// when fix is true, an edit set proposing how to resolve them.
	Crawl(root *tree.Segment, dialect string, fix bool) (violation.List, tree.EditSet)
}

// Registry is a read-only (once NewRegistry has built it), process-wide
// lookup of rules by code — spec §9: "Rule registries... are process-wide
// configuration loaded once at startup; they must be treated as read-only
// after construction."
type Registry struct {
	byCode map[string]Rule
	order  []string
}

// NewRegistry builds a Registry from rs, in the given order.
func NewRegistry(rs ...Rule) *Registry {
	reg := &Registry{byCode: make(map[string]Rule, len(rs))}
	for _, r := range rs {
		reg.byCode[r.Code()] = r
		reg.order = append(reg.order, r.Code())
	}
	return reg
}

// Lookup returns the rule for code, if registered.
func (r *Registry) Lookup(code string) (Rule, bool) {
	rule, ok := r.byCode[code]
	return rule, ok
}

// All returns the registered rules in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

// Select returns the rules whose codes are in codes, in registration
// order. An empty codes set selects every registered rule.
func (r *Registry) Select(codes map[string]bool) []Rule {
	if len(codes) == 0 {
		return r.All()
	}
	var out []Rule
	for _, code := range r.order {
		if codes[code] {
			out = append(out, r.byCode[code])
		}
	}
	return out
}
