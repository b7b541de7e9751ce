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

// RespectLiteralOnly wraps r so that any edit anchored on a non-literal
// (template-generated) segment is dropped before it reaches the Fix
// Applier. Violations are passed through unchanged — only fixes are
// filtered.
//
// This closes a gap the Patch Deriver and Source Reconstructor cannot
// close on their own: a patch lifted from a non-literal templated slice
// snaps to that slice's whole source span (spec §4.1's "snap to the
// slice's full source range" rule), so a fix touching template-generated
// content would silently clobber the template expression itself rather
// than leaving it untouched. The system this was distilled from avoids
// ever proposing such a fix by filtering violations in templated regions
// upstream (an "ignore templated areas" policy); see DESIGN.md.
func RespectLiteralOnly(r Rule) Rule {
	return literalOnlyRule{inner: r}
}

type literalOnlyRule struct{ inner Rule }

func (w literalOnlyRule) Code() string        { return w.inner.Code() }
func (w literalOnlyRule) Description() string { return w.inner.Description() }

func (w literalOnlyRule) Crawl(root *tree.Segment, dialect string, fix bool) (violation.List, tree.EditSet) {
	vs, edits := w.inner.Crawl(root, dialect, fix)
	if edits.IsEmpty() {
		return vs, edits
	}

	filtered := tree.NewEditSet()
	for _, s := range edits.Delete {
		if isLiteralAnchor(s) {
			filtered.Delete = append(filtered.Delete, s)
		}
	}
	for anchor, repl := range edits.Edit {
		if isLiteralAnchor(anchor) {
			filtered.Edit[anchor] = repl
		}
	}
	for anchor, seg := range edits.Create {
		if isLiteralAnchor(anchor) {
			filtered.Create[anchor] = seg
		}
	}
	return vs, filtered
}

// isLiteralAnchor reports whether s is safe to anchor a fix on: it must
// carry an Enriched marker (an anchor with a Bare marker is itself
// fix-synthesized, from an earlier iteration, and has no templated
// coordinates to check) whose is_literal flag is true.
func isLiteralAnchor(s *tree.Segment) bool {
	return s.Marker.IsEnriched() && s.Marker.IsLiteral
}
