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

package linter

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/lintsql/lintsql/fixloop"
	"github.com/lintsql/lintsql/internal/cache"
	"github.com/lintsql/lintsql/noqa"
	"github.com/lintsql/lintsql/patch"
	"github.com/lintsql/lintsql/reconstruct"
	"github.com/lintsql/lintsql/rules"
	"github.com/lintsql/lintsql/slicemap"
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// Config controls a Linter's behavior across every file it processes.
type Config struct {
	Dialect string

	// RuleCodes selects which registered rules run; empty selects every
	// rule (rules.Registry.Select's own convention).
	RuleCodes map[string]bool

	// RespectLiteralOnly wraps every selected rule in
	// rules.RespectLiteralOnly before it runs (see that package's doc
	// comment): on by default in practice, exposed here so a caller
	// testing a rule's raw behavior can turn it off.
	RespectLiteralOnly bool

	// RunawayLimit overrides fixloop.DefaultRunawayLimit when positive.
	RunawayLimit int

	Logger logr.Logger
}

// Linter wires the Templater/Lexer/Parser contracts together with the
// Rule Runner, Fix Loop, Patch Deriver, Source Reconstructor, and Ignore
// Mask into the single per-file pipeline spec §2 describes.
type Linter struct {
	Templater Templater
	Lexer     Lexer
	Parser    Parser
	Registry  *rules.Registry
	Config    Config

	// Cache, when non-nil, memoizes the templater/lexer/parser stages by
	// file content so a batch re-run over an unchanged tree skips
	// re-parsing every file. Optional: a nil Cache just always misses.
	Cache *cache.Cache
}

// New builds a Linter from cfg as given. cfg.RespectLiteralOnly takes
// effect only when the caller sets it: a zero Config leaves it off, so a
// rule's raw, template-unaware edits reach the tree.
func New(t Templater, l Lexer, p Parser, reg *rules.Registry, cfg Config) *Linter {
	return &Linter{Templater: t, Lexer: l, Parser: p, Registry: reg, Config: cfg}
}

func (lt *Linter) selectedRules() []rules.Rule {
	base := lt.Registry.Select(lt.Config.RuleCodes)
	if !lt.Config.RespectLiteralOnly {
		return base
	}
	out := make([]rules.Rule, len(base))
	for i, r := range base {
		out[i] = rules.RespectLiteralOnly(r)
	}
	return out
}

// parse runs the Templater/Lexer/Parser stages, consulting lt.Cache first
// when set. ok is false when the pipeline cannot produce a tree to fix —
// either the templater skipped the file or lexing/parsing failed — in
// which case the caller should finalize and return early.
func (lt *Linter) parse(filename, source string, templaterContext map[string]string) (*slicemap.File, *tree.Segment, violation.List, bool) {
	log := lt.Config.Logger

	var key string
	if lt.Cache != nil {
		key = cache.Key(filename, source)
		if entry, hit := lt.Cache.Get(key); hit {
			return entry.File, entry.Root, append(violation.List(nil), entry.Violations...), true
		}
	}

	var all violation.List

	tf, tviol := lt.Templater.Process(source, filename, templaterContext)
	all = append(all, tviol...)
	if tf == nil {
		log.Info("templater produced no output; file skipped", "file", filename)
		return nil, nil, all, false
	}

	tokens, lviol, lerr := lt.Lexer.Lex(tf)
	all = append(all, lviol...)
	if lerr != nil {
		all = append(all, violation.New("TMP", 1, 1, false, "lexing failed: %v", lerr))
		return nil, nil, all, false
	}

	root, pviol, perr := lt.Parser.Parse(tokens, true)
	all = append(all, pviol...)
	if perr != nil {
		all = append(all, violation.New("TMP", 1, 1, false, "parsing failed: %v", perr))
		return nil, nil, all, false
	}
	for _, up := range root.IterUnparsables() {
		all = append(all, violation.New("PRS", up.Marker.Line, up.Marker.Column, false,
			"unparsable section: %q", up.Preview(40)))
	}

	if lt.Cache != nil {
		lt.Cache.Put(key, cache.Entry{File: tf, Root: root, Violations: all})
	}
	return tf, root, all, true
}

// LintFile runs the full pipeline against one file and, when fix is true,
// returns the reconstructed source alongside the (lint-time) violations.
// A non-nil error is reserved for a true reconstruction fault (spec §7's
// slice-map overflow, "a bug in an upstream component"); every other
// failure kind named in spec §7 — templating, lexing, parsing, malformed
// noqa — is recorded as a violation on the returned FileResult instead of
// surfacing as a Go error, so a batch run never aborts on one bad file.
func (lt *Linter) LintFile(filename, source string, fix bool, templaterContext map[string]string) (FileResult, string, error) {
	log := lt.Config.Logger

	tf, root, all, ok := lt.parse(filename, source, templaterContext)
	if !ok {
		return lt.finalize(filename, source, all), source, nil
	}

	result := fixloop.Run(root, fixloop.Config{
		Rules:        lt.selectedRules(),
		Dialect:      lt.Config.Dialect,
		Fix:          fix,
		RunawayLimit: lt.Config.RunawayLimit,
		Logger:       log,
	})
	all = append(all, result.InitialViolations...)
	if result.RunawayHit {
		all = append(all, violation.New("FIX", 1, 1, false,
			"fix loop hit its runaway limit after %d iterations", result.Iterations))
	}

	if !fix {
		return lt.finalize(filename, source, all), source, nil
	}

	patches := patch.Derive(result.Tree, tf.Templated)
	fixed, err := reconstruct.Reconstruct(patches, tf, log)
	if err != nil {
		return FileResult{}, "", fmt.Errorf("linter: reconstructing %s: %w", filename, err)
	}
	return lt.finalize(filename, source, all), fixed, nil
}

// finalize sorts, noqa-filters, and wraps violations into a FileResult.
func (lt *Linter) finalize(filename, source string, all violation.List) FileResult {
	entries, parseViol := scanNoqa(source)
	all = append(all, parseViol...)
	mask := noqa.NewMask(entries)
	all = mask.Apply(all)
	all.SortByPosition()
	return newFileResult(filename, all)
}

// scanNoqa extracts "-- noqa[: codes]" directives from source by looking
// for a "--" comment marker on each line, independent of how (or whether)
// the dialect's own lexer models comments — the ignore mask is an ambient
// cross-cutting concern, not a rule, so it is applied here rather than
// threaded through the Templater/Lexer/Parser contracts.
func scanNoqa(source string) ([]noqa.Entry, violation.List) {
	var entries []noqa.Entry
	var viol violation.List
	for i, line := range strings.Split(source, "\n") {
		idx := strings.Index(line, "--")
		if idx < 0 {
			continue
		}
		e, v, ok, bad := noqa.ParseComment(i+1, line[idx+2:])
		switch {
		case bad:
			viol = append(viol, v)
		case ok:
			entries = append(entries, e)
		}
	}
	return entries, viol
}
