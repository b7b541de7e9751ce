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

// Package fixloop implements the fix-iteration loop (spec §4.5): repeatedly
// run every rule, apply its edits, and detect non-progress or oscillation
// so the loop is guaranteed to terminate.
package fixloop

import (
	"github.com/go-logr/logr"

	"github.com/cespare/xxhash/v2"

	"github.com/lintsql/lintsql/fixapply"
	"github.com/lintsql/lintsql/rules"
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// DefaultRunawayLimit is the runaway limit L used when Config.RunawayLimit
// is zero.
const DefaultRunawayLimit = 10

// Config controls one run of the loop.
type Config struct {
	Rules        []rules.Rule
	Dialect      string
	Fix          bool
	RunawayLimit int
	Logger       logr.Logger
}

// Result is the loop's output (spec §4.5): the final tree and the
// violations captured on the first iteration only — "Fix-induced
// violations beyond iteration 1 are discarded to avoid reporting noise
// introduced by intermediate tree states."
type Result struct {
	Tree             *tree.Segment
	InitialViolations violation.List
	Iterations       int
	RunawayHit       bool
}

// Run executes the fix loop against initial.
func Run(initial *tree.Segment, cfg Config) Result {
	limit := cfg.RunawayLimit
	if limit <= 0 {
		limit = DefaultRunawayLimit
	}
	log := cfg.Logger

	working := initial
	previousVersions := map[uint64]bool{fingerprint(working.Raw()): true}
	var lastFixes tree.EditSet
	haveLastFixes := false

	var initialViolations violation.List
	loopIdx := 0

	for {
		loopIdx++
		changed := false
		var iterationViolations violation.List

		for _, rule := range cfg.Rules {
			runner := rules.Runner{Dialect: cfg.Dialect, Fix: cfg.Fix}
			v, edits := runner.Run(rule, working)
			iterationViolations = append(iterationViolations, v...)

			if !cfg.Fix || edits.IsEmpty() {
				continue
			}

			if haveLastFixes && edits.Equal(lastFixes) {
				log.V(1).Info("skipping fix: would oscillate with the previous fix", "rule", rule.Code())
				continue
			}

			newWorking, residual := fixapply.Apply(working, edits)
			for _, r := range residual {
				log.V(1).Info("discarding residual edit: anchor not found", "rule", rule.Code(), "kind", r.Kind)
			}

			fp := fingerprint(newWorking.Raw())
			if previousVersions[fp] {
				log.V(1).Info("skipping fix: would revisit a previously seen tree", "rule", rule.Code())
				continue
			}

			working = newWorking
			previousVersions[fp] = true
			lastFixes = edits
			haveLastFixes = true
			changed = true
		}

		if loopIdx == 1 {
			initialViolations = iterationViolations
		}
		if !cfg.Fix {
			break
		}
		if !changed {
			break
		}
		if loopIdx >= limit {
			log.Info("fix loop reached the runaway limit", "limit", limit)
			return Result{Tree: working, InitialViolations: initialViolations, Iterations: loopIdx, RunawayHit: true}
		}
	}

	return Result{Tree: working, InitialViolations: initialViolations, Iterations: loopIdx}
}

// fingerprint hashes raw text for the previous_versions set. xxhash is
// used rather than storing whole strings: the set is consulted on every
// rule application and whole-file string comparisons dominate runtime on
// large inputs.
func fingerprint(raw string) uint64 {
	return xxhash.Sum64String(raw)
}
