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

// Package patch implements the Patch Deriver (spec §4.6): a single
// recursive descent over the fixed tree, keyed on position markers, that
// emits an ordered list of templated-space patches by diffing the tree
// against the original templated string.
//
// Operating in templated coordinates before the source lift is essential
// because loops in the template may duplicate source regions — templated
// order is total, source order is not (spec §4.6 rationale).
package patch

import (
	"strings"

	"github.com/lintsql/lintsql/token"
	"github.com/lintsql/lintsql/tree"
)

// Patch is a proposed (templated_range, replacement_text, placeholder_hint)
// edit in templated space.
type Patch struct {
	Templated       token.Range
	Replacement     string
	PlaceholderHint int
}

// Derive walks root (the fixed tree) against templated (the original
// templated string) and returns the ordered patch list. root must be an
// Enriched segment — it always is, since the Fix Applier never replaces
// the root itself, only its descendants (spec §4.3 only ever rewrites
// children).
func Derive(root *tree.Segment, templated string) []Patch {
	if !root.Marker.IsEnriched() {
		panic("patch: Derive requires an Enriched root segment")
	}
	return deriveSegment(root, templated)
}

func deriveSegment(seg *tree.Segment, templated string) []Patch {
	m := seg.Marker
	tr := m.Templated

	if matchesTemplated(templated, tr, seg.Raw()) {
		// Subtree is unchanged: emit nothing (step 1).
		return nil
	}

	if m.IsLiteral {
		// Pure literal region that changed: one whole-segment patch, no
		// recursion into its children (step 2).
		return []Patch{{Templated: tr, Replacement: seg.Raw()}}
	}

	// Structural diff: walk children with a cursor (step 3).
	var patches []Patch
	cursor := tr.Start
	var insertBuff strings.Builder
	postPlaceholder := 0

	flush := func(stop int) {
		patches = append(patches, Patch{
			Templated:       token.Range{Start: cursor, Stop: stop},
			Replacement:     insertBuff.String(),
			PlaceholderHint: postPlaceholder,
		})
		insertBuff.Reset()
		postPlaceholder = 0
	}

	for _, child := range seg.Children {
		if child.Marker.Kind == token.Bare {
			// Synthesized by a fix: buffer its raw text for the next
			// flush rather than recursing (it has no templated range).
			insertBuff.WriteString(child.Raw())
			if child.Kind == tree.KindPlaceholder {
				postPlaceholder++
			}
			continue
		}

		childStart := child.Marker.Templated.Start
		if childStart > cursor || insertBuff.Len() > 0 {
			flush(childStart)
		}
		cursor = childStart

		patches = append(patches, deriveSegment(child, templated)...)
		cursor = child.Marker.Templated.Stop
	}

	if tr.Stop > cursor || insertBuff.Len() > 0 {
		flush(tr.Stop)
	}

	return patches
}

// matchesTemplated reports whether raw equals templated[tr.Start:tr.Stop],
// bounds-checked so a malformed marker degrades to "changed" rather than
// panicking.
func matchesTemplated(templated string, tr token.Range, raw string) bool {
	if tr.Start < 0 || tr.Stop > len(templated) || tr.Start > tr.Stop {
		return false
	}
	return templated[tr.Start:tr.Stop] == raw
}
