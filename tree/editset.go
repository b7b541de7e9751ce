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

package tree

// EditSet is a rule's output (spec §3): segments to delete, anchor→
// replacement edits, and anchor→insert-before creations. Anchor identity
// is by pointer within the tree the rule was run against; once that tree
// is replaced by a new one (see fixapply), old anchors are stale.
type EditSet struct {
	Delete []*Segment
	Edit   map[*Segment]*Segment
	Create map[*Segment]*Segment
}

// NewEditSet returns an empty, ready-to-use EditSet.
func NewEditSet() EditSet {
	return EditSet{
		Edit:   map[*Segment]*Segment{},
		Create: map[*Segment]*Segment{},
	}
}

// IsEmpty reports whether the edit set proposes no changes at all.
func (e EditSet) IsEmpty() bool {
	return len(e.Delete) == 0 && len(e.Edit) == 0 && len(e.Create) == 0
}

// Equal reports whether e and o propose the same fix: the same anchors
// (by pointer identity — an anchor a rule did not touch keeps its
// pointer across a fixapply.Apply call, since Apply shares untouched
// subtrees) carrying replacement/insertion segments of the same
// structural content. Content, not identity, because a rule allocates
// fresh replacement segments on every Crawl even when proposing the
// exact same fix again — comparing those by pointer would never match.
// The Fix Loop uses this to detect a rule proposing the same fix twice
// in a row (spec §4.5, the last_fixes equality guard).
func (e EditSet) Equal(o EditSet) bool {
	if len(e.Delete) != len(o.Delete) || len(e.Edit) != len(o.Edit) || len(e.Create) != len(o.Create) {
		return false
	}
	delSet := make(map[*Segment]bool, len(e.Delete))
	for _, s := range e.Delete {
		delSet[s] = true
	}
	for _, s := range o.Delete {
		if !delSet[s] {
			return false
		}
	}
	for anchor, repl := range e.Edit {
		if !sameContent(o.Edit[anchor], repl) {
			return false
		}
	}
	for anchor, ins := range e.Create {
		if !sameContent(o.Create[anchor], ins) {
			return false
		}
	}
	return true
}

// sameContent reports whether a and b have the same Name, Kind, and raw
// text, recursing into children rather than comparing pointers.
func sameContent(a, b *Segment) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.Kind != b.Kind {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	if len(a.Children) == 0 {
		return a.Raw() == b.Raw()
	}
	for i := range a.Children {
		if !sameContent(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
